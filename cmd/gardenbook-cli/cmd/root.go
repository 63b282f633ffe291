package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"gardenbook/internal/adapters/sqlite"
	"gardenbook/internal/config"
	"gardenbook/internal/domain"
	"gardenbook/internal/ports"
)

var (
	cfgFile string
	dbPath  string
	store   ports.GardenStore
	logger  *slog.Logger
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gardenbook-cli",
		Short: "CLI for gardening business records",
		Long: `gardenbook-cli manages the clients of a gardening business, the plants
they own and the recurring maintenance jobs those plants need.

Every command works on one database file, chosen with --db, the
GARDENBOOK_DB environment variable or the db key of gardenbook.yaml.`,
		SilenceUsage:      true,
		PersistentPreRunE: openStore,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./gardenbook.yaml)")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (default "+config.DefaultDBPath+")")

	cmd.AddCommand(newRecordCmd(domain.KindClient))
	cmd.AddCommand(newRecordCmd(domain.KindPlant))
	cmd.AddCommand(newRecordCmd(domain.KindJob))
	cmd.AddCommand(newLinkCmd())
	cmd.AddCommand(newUnlinkCmd())
	cmd.AddCommand(newMonthsCmd())
	return cmd
}

func openStore(cmd *cobra.Command, args []string) error {
	// Skip initialization for help commands
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	logger = cfg.Logger()

	st, err := sqlite.NewStore(cfg.DBPath, sqlite.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.DBPath, err)
	}
	store = st
	logger.Debug("opened database", "path", cfg.DBPath)
	return nil
}

func closeStore() {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil && logger != nil {
		logger.Warn("failed to close database", "error", err)
	}
	store = nil
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	closeStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetStore returns the opened store
func GetStore() ports.GardenStore {
	return store
}
