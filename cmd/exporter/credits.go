package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"randoexport.ai/internal/persistence/indexdb"
)

var (
	creditsIndex   string
	creditsSession string
	creditsPlayer  int
)

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Print the credits of a recorded export",
	Args:  cobra.NoArgs,
	RunE:  runCredits,
}

func init() {
	creditsCmd.Flags().StringVar(&creditsIndex, "index", "", "SQLite index written by export --index")
	creditsCmd.Flags().StringVar(&creditsSession, "session-id", "", "session id (empty for solo sessions)")
	creditsCmd.Flags().IntVar(&creditsPlayer, "player", 0, "player index")
	_ = creditsCmd.MarkFlagRequired("index")
}

func runCredits(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	idx, err := indexdb.OpenSQLite(creditsIndex)
	if err != nil {
		return err
	}
	defer idx.Close()

	credits, err := idx.Credits(ctx, creditsSession, creditsPlayer)
	if err != nil {
		return err
	}
	if len(credits) == 0 {
		return fmt.Errorf("no credits recorded for session %q player %d", creditsSession, creditsPlayer)
	}
	out := cmd.OutOrStdout()
	for _, c := range credits {
		fmt.Fprintln(out, c.Pickup)
		for _, line := range strings.Split(c.Locations, "\n") {
			fmt.Fprintln(out, "  "+line)
		}
	}
	return nil
}
