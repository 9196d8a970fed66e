package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "feedback <response-id>",
		Short: "Rate an answer",
		Args:  cobra.ExactArgs(1),
		Run:   runFeedback,
	}
	cmd.Flags().IntP("rating", "r", 5, "Rating from 1 to 5")
	cmd.Flags().StringP("comment", "c", "", "Optional comment")

	RootCmd.AddCommand(cmd)
}

func runFeedback(cmd *cobra.Command, args []string) {
	rating, _ := cmd.Flags().GetInt("rating")
	comment, _ := cmd.Flags().GetString("comment")

	receipt, err := newClient().Feedback(cmd.Context(), args[0], rating, comment)
	if err != nil {
		exitErr("feedback", err)
	}
	if formatFlag == "json" {
		printJSON(receipt)
		return
	}
	fmt.Printf("%s (%s)\n", receipt.Message, receipt.FeedbackID)
}
