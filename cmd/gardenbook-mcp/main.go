package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "gardenbook/internal/adapters/mcp"
	"gardenbook/internal/adapters/sqlite"
	"gardenbook/internal/config"
)

func main() {
	cfgFlag := flag.String("config", "", "config file (default is ./gardenbook.yaml)")
	dbFlag := flag.String("db", "", "database file (default "+config.DefaultDBPath+")")
	flag.Parse()

	cfg, err := config.Load(*cfgFlag)
	if err != nil {
		log.Fatalf("gardenbook-mcp: %v", err)
	}
	if *dbFlag != "" {
		cfg.DBPath = *dbFlag
	}

	store, err := sqlite.NewStore(cfg.DBPath, sqlite.WithLogger(cfg.Logger()))
	if err != nil {
		log.Fatalf("gardenbook-mcp: %v", err)
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"gardenbook-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store)

	if err := server.ServeStdio(mcpServer); err != nil {
		store.Close()
		log.Fatalf("gardenbook-mcp: %v", err)
	}
}
