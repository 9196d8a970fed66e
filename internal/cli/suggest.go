package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "suggest [grades|students|courses]",
		Short: "Show example questions",
		Args:  cobra.MaximumNArgs(1),
		Run:   runSuggest,
	}

	RootCmd.AddCommand(cmd)
}

func runSuggest(cmd *cobra.Command, args []string) {
	topic := ""
	if len(args) == 1 {
		topic = args[0]
	}
	suggestions, err := newClient().SuggestQueries(cmd.Context(), topic)
	if err != nil {
		exitErr("suggest", err)
	}
	if formatFlag == "json" {
		printJSON(suggestions)
		return
	}
	for _, s := range suggestions {
		fmt.Println("- " + s)
	}
}
