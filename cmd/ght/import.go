package main

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ght-core/internal/adapters/driven/postgres"
	redisadapter "github.com/custodia-labs/ght-core/internal/adapters/driven/redis"
	"github.com/custodia-labs/ght-core/internal/adapters/driven/sqlite"
	"github.com/custodia-labs/ght-core/internal/config"
)

func (c *cli) newImportCmd() *cobra.Command {
	var (
		replace    bool
		initSchema bool
		redisURL   string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the SQLite concordance into PostgreSQL",
		Long: `import streams every row of the SQLite concordance (--db) into the
PostgreSQL entries table (--database-url) with COPY, in one transaction.
When --redis-url is set the cached ranges are dropped afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.databaseURL == "" {
				return errors.New("--database-url is required")
			}
			ctx := cmd.Context()

			logger, err := c.logger(cmd)
			if err != nil {
				return err
			}
			tracks, err := config.LoadTracks(c.tracksFile)
			if err != nil {
				return err
			}
			columns := postgres.ColumnsFor(tracks.List())

			src, err := sqlite.Open(ctx, c.dbPath)
			if err != nil {
				return err
			}
			defer src.Close()

			db, err := postgres.Connect(ctx, postgres.DefaultConfig(c.databaseURL))
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := postgres.NewImporter(db).Import(ctx, postgres.ImportOptions{
				Columns:    columns,
				Replace:    replace,
				InitSchema: initSchema,
			}, func(emit func(values []any) error) error {
				return src.Export(ctx, columns, emit)
			})
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows (%v)\n", n, columns)

			if redisURL == "" {
				return nil
			}
			opts, err := redis.ParseURL(redisURL)
			if err != nil {
				return fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			client := redis.NewClient(opts)
			defer client.Close()

			cache := redisadapter.NewCachingWordStore(client, postgres.NewWordStore(db), 0, logger)
			dropped, err := cache.Invalidate(ctx)
			if err != nil {
				return fmt.Errorf("cache invalidation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dropped %d cached ranges\n", dropped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "truncate entries before loading")
	cmd.Flags().BoolVar(&initSchema, "init-schema", false, "create the entries table if missing")
	cmd.Flags().StringVar(&redisURL, "redis-url", c.env("REDIS_URL", ""), "Redis cache to invalidate after the import")
	return cmd
}
