package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ght-core/internal/adapters/driven/postgres"
	"github.com/custodia-labs/ght-core/internal/adapters/driven/sqlite"
	"github.com/custodia-labs/ght-core/internal/config"
	"github.com/custodia-labs/ght-core/internal/core/ports/driven"
	"github.com/custodia-labs/ght-core/internal/logging"
)

var version = "dev"

// cli carries state shared by every subcommand
type cli struct {
	getenv func(string) string

	store       string
	dbPath      string
	databaseURL string
	tracksFile  string
	logLevel    string
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	c := &cli{getenv: getenv}

	root := &cobra.Command{
		Use:          "ght",
		Short:        "GHT Core operator CLI",
		SilenceUsage: true,
		Long: `ght looks up Bible verse ranges straight from the concordance store and
manages the pieces around the ght-core API: slash command definitions,
client credentials and the PostgreSQL import.`,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.store, "store", c.env("STORE_DRIVER", config.StoreSQLite), "concordance backend: sqlite or postgres")
	pf.StringVar(&c.dbPath, "db", c.env("CONCORDANCE_PATH", "concordance.db"), "SQLite concordance file")
	pf.StringVar(&c.databaseURL, "database-url", c.env("DATABASE_URL", ""), "PostgreSQL connection string")
	pf.StringVar(&c.tracksFile, "tracks", c.env("TRACKS_FILE", ""), "YAML tracks file (default: built-in ght and ghtg)")
	pf.StringVar(&c.logLevel, "log-level", c.env("LOG_LEVEL", "warn"), "log level: debug, info, warn, error")

	root.AddCommand(
		c.newLookupCmd(),
		c.newBooksCmd(),
		c.newCommandsCmd(),
		c.newHashSecretCmd(),
		c.newTokenCmd(),
		c.newImportCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) env(key, defaultValue string) string {
	if c.getenv == nil {
		return defaultValue
	}
	if value := c.getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// logger writes text logs to the command's stderr
func (c *cli) logger(cmd *cobra.Command) (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.logLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(cmd.ErrOrStderr(), level, logging.FormatText), nil
}

// openStore opens the backend selected by --store
func (c *cli) openStore(ctx context.Context) (driven.WordStore, io.Closer, error) {
	switch c.store {
	case config.StoreSQLite:
		store, err := sqlite.Open(ctx, c.dbPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case config.StorePostgres:
		if c.databaseURL == "" {
			return nil, nil, fmt.Errorf("--database-url is required for the postgres store")
		}
		db, err := postgres.Connect(ctx, postgres.DefaultConfig(c.databaseURL))
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewWordStore(db), db, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q (use sqlite or postgres)", c.store)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the ght version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ght %s\n", version)
			return nil
		},
	}
}
