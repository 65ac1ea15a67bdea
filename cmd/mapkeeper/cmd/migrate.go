package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/solatis/mapkeeper/internal/core/config"
	"github.com/solatis/mapkeeper/internal/core/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending document store migrations",
	RunE:  runMigrate,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show document store migration status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statusCmd)
}

// open loads config, applies the --db-url override, and connects.
func open() (*db.Pool, string, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if cfg.DatabaseURL == "" {
		return nil, "", fmt.Errorf("--db-url or MK_DATABASE_URL required")
	}
	pool := db.Pool{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	return &pool, cfg.DatabaseURL, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	pool, url, err := open()
	if err != nil {
		return err
	}

	conn, err := db.Open(url, *pool)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer conn.Close()

	start := time.Now()
	if err := db.MigrateUp(conn); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Printf("migrations applied in %v", time.Since(start).Round(time.Millisecond))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	pool, url, err := open()
	if err != nil {
		return err
	}

	conn, err := db.Open(url, *pool)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer conn.Close()

	statuses, err := db.MigrateStatus(conn)
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}

	for _, s := range statuses {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Printf("%-40s %s\n", s.ID, state)
	}
	return nil
}
