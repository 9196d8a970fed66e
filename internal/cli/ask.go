package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"edubot/internal/client"
	"edubot/internal/rag"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about students, grades or courses",
		Args:  cobra.MinimumNArgs(1),
		Run:   runAsk,
	}
	cmd.Flags().String("role", "", "Asker role: teacher, student or admin")
	cmd.Flags().String("user", "", "Asker user id")

	RootCmd.AddCommand(cmd)
}

func runAsk(cmd *cobra.Command, args []string) {
	role, _ := cmd.Flags().GetString("role")
	user, _ := cmd.Flags().GetString("user")

	req := client.QueryRequest{Query: strings.Join(args, " "), UserID: user}
	if role != "" {
		req.Context = &client.QueryContext{UserRole: role}
	}

	env, err := newClient().Query(cmd.Context(), req)
	if err != nil {
		exitErr("ask", err)
	}
	if formatFlag == "json" {
		printJSON(env)
		return
	}
	writeAnswer(os.Stdout, env)
}

func writeAnswer(w io.Writer, env *rag.AnswerEnvelope) {
	fmt.Fprintln(w, env.Answer)
	if len(env.Sources) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Sources:")
		for _, s := range env.Sources {
			fmt.Fprintf(w, "  [%s] %s (%.2f)\n", s.Type, s.DisplayName, s.RelevanceScore)
		}
	}
	fmt.Fprintf(w, "\nquery type: %v, confidence: %.2f", env.Metadata["query_type"], env.Confidence)
	if id, ok := env.Metadata["response_id"]; ok {
		fmt.Fprintf(w, ", response id: %v", id)
	}
	fmt.Fprintln(w)
}
