package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gardenbook/internal/adapters/sqlite"
	"gardenbook/internal/adapters/web"
	"gardenbook/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gardenbook-web: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgFlag := flag.String("config", "", "config file (default is ./gardenbook.yaml)")
	dbFlag := flag.String("db", "", "database file (default "+config.DefaultDBPath+")")
	addrFlag := flag.String("addr", "", "listen address (default "+config.DefaultAddr+")")
	flag.Parse()

	cfg, err := config.Load(*cfgFlag)
	if err != nil {
		return err
	}
	if *dbFlag != "" {
		cfg.DBPath = *dbFlag
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	logger := cfg.Logger()

	store, err := sqlite.NewStore(cfg.DBPath, sqlite.WithLogger(logger))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.TLS() {
		logger.Warn("no certificate configured, serving plain HTTP")
	}

	return web.New(store, logger).Run(ctx, web.Config{
		Addr:     cfg.Addr,
		CertFile: cfg.CertFile,
		KeyFile:  cfg.KeyFile,
	})
}
