package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	port     string
	seedFile string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	if envPort == "" {
		envPort = "8080"
	}

	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Conversational skills coach backend",
	}

	cmd.PersistentFlags().StringVar(&port, "port", envPort, "port to listen on")
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRotateCmd())
	cmd.AddCommand(newSeedCmd())
	return cmd
}
