package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	fansCmd := &cobra.Command{Use: "fans", Short: "Fan record operations"}

	// create
	var fanID, displayName string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a fan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if creatorFlag == "" || displayName == "" {
				return fmt.Errorf("--creator and --name required")
			}
			payload := map[string]interface{}{"displayName": displayName}
			if fanID != "" {
				payload["fanId"] = fanID
			}
			data, err := doPostJSON(fmt.Sprintf("/api/creators/%s/fans", creatorFlag), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	createCmd.Flags().StringVarP(&fanID, "fan", "f", "", "Fan ID (server-assigned when omitted)")
	createCmd.Flags().StringVarP(&displayName, "name", "n", "", "Display name (required)")
	_ = createCmd.MarkFlagRequired("name")
	fansCmd.AddCommand(createCmd)

	// list
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List fans for a creator",
		RunE: func(cmd *cobra.Command, args []string) error {
			if creatorFlag == "" {
				return fmt.Errorf("--creator required")
			}
			data, err := doGet(fmt.Sprintf("/api/creators/%s/fans", creatorFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	fansCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get FAN_ID",
		Short: "Get a fan by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if creatorFlag == "" {
				return fmt.Errorf("--creator required")
			}
			data, err := doGet(fmt.Sprintf("/api/creators/%s/fans/%s", creatorFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	fansCmd.AddCommand(getCmd)

	// note
	var noteContent string
	noteCmd := &cobra.Command{
		Use:   "note FAN_ID",
		Short: "Set the creator note for a fan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if creatorFlag == "" || noteContent == "" {
				return fmt.Errorf("--creator and --content required")
			}
			data, err := doPutJSON(
				fmt.Sprintf("/api/creators/%s/fans/%s/note", creatorFlag, args[0]),
				map[string]interface{}{"content": noteContent})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	noteCmd.Flags().StringVarP(&noteContent, "content", "t", "", "Note content (required)")
	_ = noteCmd.MarkFlagRequired("content")
	fansCmd.AddCommand(noteCmd)

	rootCmd.AddCommand(fansCmd)
}
