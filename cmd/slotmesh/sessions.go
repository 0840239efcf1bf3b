package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/hupe1980/slotmesh"
	"github.com/hupe1980/slotmesh/core"
	"github.com/spf13/cobra"
)

func newSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect persisted sessions",
	}
	cmd.AddCommand(newSessionsListCommand())
	cmd.AddCommand(newSessionsShowCommand())
	return cmd
}

func newSessionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known users and their current workflow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(cfg, slotmesh.SessionFactory())
			if err != nil {
				return err
			}
			defer closeStore()

			users, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "USER\tWORKFLOW\tCONFIRMED\tUPDATED")
			for _, u := range users {
				state, err := store.GetOrCreate(cmd.Context(), u)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u, currentKey(state), confirmedAgents(state), humanize.Time(state.Updated))
			}
			return w.Flush()
		},
	}
}

func newSessionsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <user>",
		Short: "Print a user's session state as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(cfg, slotmesh.SessionFactory())
			if err != nil {
				return err
			}
			defer closeStore()

			state, err := store.GetOrCreate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(state, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func currentKey(state *core.SessionState) string {
	if rec := state.Current(); rec != nil {
		return string(rec.Key)
	}
	return "-"
}

func confirmedAgents(state *core.SessionState) string {
	rec := state.Current()
	if rec == nil || len(rec.Confirmed) == 0 {
		return "-"
	}
	return strings.Join(rec.Confirmed, ",")
}
