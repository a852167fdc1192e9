package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ght-core/internal/config"
	"github.com/custodia-labs/ght-core/internal/core/services"
)

func (c *cli) newLookupCmd() *cobra.Command {
	var (
		track  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "lookup <reference>",
		Short: "Render a verse range from the concordance",
		Example: `  ght lookup Matt 1:1-3
  ght lookup --track ghtg "1 Cor 13:4"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := c.logger(cmd)
			if err != nil {
				return err
			}
			tracks, err := config.LoadTracks(c.tracksFile)
			if err != nil {
				return err
			}

			store, closer, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer closer.Close()

			svc := services.NewLookupService(tracks, store, logger)
			result, err := svc.Lookup(cmd.Context(), track, strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(out, result.Text)
			}

			if result.IsError() {
				return fmt.Errorf("lookup %s: %s", result.Input, result.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&track, "track", "t", "ght", "track to read (see 'ght commands')")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full lookup result as JSON")
	return cmd
}
