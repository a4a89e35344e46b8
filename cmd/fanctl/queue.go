package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Print the creator's priority queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if creatorFlag == "" {
				return fmt.Errorf("--creator required")
			}
			data, err := doGet(fmt.Sprintf("/api/creators/%s/queue", creatorFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(queueCmd)

	summaryCmd := &cobra.Command{
		Use:   "summary FAN_ID",
		Short: "Print the relationship summary for a fan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if creatorFlag == "" {
				return fmt.Errorf("--creator required")
			}
			data, err := doGet(fmt.Sprintf("/api/creators/%s/fans/%s/summary", creatorFlag, args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(summaryCmd)
}
