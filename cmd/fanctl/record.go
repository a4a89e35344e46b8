package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	recordCmd := &cobra.Command{Use: "record", Short: "Record grants, purchases and messages"}

	// grant
	var grantType string
	var grantPrice float64
	var grantDays int
	grantCmd := &cobra.Command{
		Use:   "grant FAN_ID",
		Short: "Record an access grant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if creatorFlag == "" {
				return fmt.Errorf("--creator required")
			}
			payload := map[string]interface{}{
				"type":      grantType,
				"price":     grantPrice,
				"expiresAt": time.Now().UTC().AddDate(0, 0, grantDays).Format(time.RFC3339),
			}
			data, err := doPostJSON(fmt.Sprintf("/api/creators/%s/fans/%s/grants", creatorFlag, args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	grantCmd.Flags().StringVarP(&grantType, "type", "t", "monthly", "Grant type (trial|welcome|monthly|special|single)")
	grantCmd.Flags().Float64VarP(&grantPrice, "price", "p", 0, "Price paid")
	grantCmd.Flags().IntVarP(&grantDays, "days", "d", 30, "Days until expiry")
	recordCmd.AddCommand(grantCmd)

	// purchase
	var purchaseKind, purchaseTier string
	var purchaseAmount float64
	purchaseCmd := &cobra.Command{
		Use:   "purchase FAN_ID",
		Short: "Record a purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if creatorFlag == "" {
				return fmt.Errorf("--creator required")
			}
			payload := map[string]interface{}{
				"amount": purchaseAmount,
				"kind":   purchaseKind,
			}
			if purchaseTier != "" {
				payload["tier"] = purchaseTier
			}
			data, err := doPostJSON(fmt.Sprintf("/api/creators/%s/fans/%s/purchases", creatorFlag, args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	purchaseCmd.Flags().Float64VarP(&purchaseAmount, "amount", "m", 0, "Amount paid (required)")
	purchaseCmd.Flags().StringVarP(&purchaseKind, "kind", "k", "extra", "Purchase kind (extra|tip|gift)")
	purchaseCmd.Flags().StringVarP(&purchaseTier, "tier", "r", "", "Optional tier label")
	_ = purchaseCmd.MarkFlagRequired("amount")
	recordCmd.AddCommand(purchaseCmd)

	// message
	var msgSender, msgAudience string
	messageCmd := &cobra.Command{
		Use:   "message FAN_ID",
		Short: "Record a message event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if creatorFlag == "" {
				return fmt.Errorf("--creator required")
			}
			payload := map[string]interface{}{
				"sender":   msgSender,
				"audience": msgAudience,
			}
			data, err := doPostJSON(fmt.Sprintf("/api/creators/%s/fans/%s/messages", creatorFlag, args[0]), payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	messageCmd.Flags().StringVarP(&msgSender, "sender", "s", "fan", "Sender (fan|creator|other)")
	messageCmd.Flags().StringVarP(&msgAudience, "audience", "u", "FAN", "Audience (FAN|CREATOR|INTERNAL)")
	recordCmd.AddCommand(messageCmd)

	rootCmd.AddCommand(recordCmd)
}
