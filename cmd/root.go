package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the meeting-mcp application
var rootCmd = &cobra.Command{
	Use:   "meeting-mcp",
	Short: "MCP server for Meeting BaaS meeting bots",
	Long: `meeting-mcp exposes the Meeting BaaS platform to AI assistants through the
Model Context Protocol. Assistants can send recording and speaking bots to
video meetings, fetch recordings and transcripts, and manage calendar-driven
recording schedules.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "meeting-mcp version %s\n" .Version}}`)

	// Without a subcommand the server starts on stdio
	if len(os.Args) == 1 {
		rootCmd.SetArgs([]string{"serve"})
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
	rootCmd.AddCommand(newPersonasCmd())
	rootCmd.AddCommand(newVersionCmd())
}
