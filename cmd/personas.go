package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meetingbaas/meeting-mcp/internal/speaking"
)

func newPersonasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "personas",
		Short: "List the personas available to speaking bots",
		Long: `List the persona names accepted by the joinSpeakingMeeting tool, one per
line, in the order the speaking API documents them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range speaking.Personas() {
				if _, err := fmt.Fprintln(out, p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
