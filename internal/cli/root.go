// Package cli implements the edubotctl commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"edubot/internal/client"
)

const defaultServer = "http://127.0.0.1:8000"

var (
	serverURL  string
	formatFlag string
	timeout    time.Duration
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "edubotctl",
	Short: "Ask the EduBot academic assistant from the terminal",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "Server base URL (default: $EDUBOT_URL or "+defaultServer+")")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	RootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "HTTP timeout")
}

func getServerURL() string {
	if serverURL != "" {
		return serverURL
	}
	if env := os.Getenv("EDUBOT_URL"); env != "" {
		return env
	}
	return defaultServer
}

func newClient() *client.Client {
	return client.New(getServerURL(), timeout)
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
