// Command slotmesh runs the event assistant in a terminal and inspects
// persisted sessions.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "slotmesh",
		Short:        "Conversational event assistant",
		Long:         "slotmesh walks users through planning and discovering events by filling the required information one agent at a time.",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a slotmesh.yaml file")

	rootCmd.AddCommand(newChatCommand())
	rootCmd.AddCommand(newSessionsCommand())
	rootCmd.AddCommand(newConfigCommand())
	return rootCmd
}
