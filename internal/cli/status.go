package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show the active index snapshot",
		Run:   runStats,
	}
	health := &cobra.Command{
		Use:   "health",
		Short: "Check the server and its dependencies",
		Run:   runHealth,
	}

	RootCmd.AddCommand(stats, health)
}

func runStats(cmd *cobra.Command, args []string) {
	stats, err := newClient().Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}
	if formatFlag == "json" {
		printJSON(stats)
		return
	}
	built := "never"
	if stats.BuiltAt != nil {
		built = stats.BuiltAt.Format("2006-01-02 15:04:05")
	}
	fmt.Printf("chunks: %d\ndimension: %d\nbuilt: %s\n", stats.Chunks, stats.Dimension, built)
}

func runHealth(cmd *cobra.Command, args []string) {
	body, status, err := newClient().Health(cmd.Context())
	if err != nil {
		exitErr("health", err)
	}
	printJSON(body)
	if status != http.StatusOK {
		os.Exit(1)
	}
}
