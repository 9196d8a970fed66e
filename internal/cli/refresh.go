package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the knowledge index from the database",
		Run:   runRefresh,
	}
	cmd.Flags().Bool("async", false, "Queue the rebuild instead of waiting for it")

	RootCmd.AddCommand(cmd)
}

func runRefresh(cmd *cobra.Command, args []string) {
	async, _ := cmd.Flags().GetBool("async")

	ack, err := newClient().Refresh(cmd.Context(), async)
	if err != nil {
		exitErr("refresh", err)
	}
	if formatFlag == "json" {
		printJSON(ack)
		return
	}
	if async {
		fmt.Printf("%s (request %s)\n", ack.Message, ack.RequestID)
		return
	}
	fmt.Printf("%s: %d chunks, %d records skipped, built %s\n", ack.Message, ack.ChunkCount, ack.SkippedRecords, ack.BuiltAt)
}
