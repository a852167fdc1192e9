package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ght-core/internal/config"
	"github.com/custodia-labs/ght-core/internal/core/domain"
)

func (c *cli) newBooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List the supported books and their aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ORDINAL\tTITLE\tALIASES")
			for _, b := range domain.Books() {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", b.Ordinal, b.Title, strings.Join(b.Aliases, ", "))
			}
			return tw.Flush()
		},
	}
}

// newCommandsCmd prints slash command definitions for registration with
// the chat platform.
func (c *cli) newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "Print slash command definitions as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tracks, err := config.LoadTracks(c.tracksFile)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(tracks.Commands())
		},
	}
}
