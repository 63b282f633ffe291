package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"gardenbook/internal/adapters/sqlite"
	"gardenbook/internal/adapters/tui"
	"gardenbook/internal/config"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default is ./gardenbook.yaml)")
	dbFlag := flag.String("db", "", "database file (default "+config.DefaultDBPath+")")
	flag.Parse()

	cfg, err := config.Load(*cfgFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *dbFlag != "" {
		cfg.DBPath = *dbFlag
	}

	store, err := sqlite.NewStore(cfg.DBPath, sqlite.WithLogger(cfg.Logger()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Create and run TUI app
	app := tui.NewApp(store)

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
