package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbormodels "github.com/ternarybob/arbor/models"

	"github.com/serkanbykl/yargi-mcp/internal/app"
	"github.com/serkanbykl/yargi-mcp/internal/common"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("YARGI_CONFIG")
	if configPath == "" {
		if _, err := os.Stat("yargi-mcp.toml"); err == nil {
			configPath = "yargi-mcp.toml"
		}
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Minimal logging to avoid cluttering MCP stdio
	logger := arbor.NewLogger().WithConsoleWriter(arbormodels.WriterConfiguration{
		Type:             arbormodels.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	// A pipe-bound server has no status route, so upstream probes would
	// only burn court-site requests.
	config.Health.Enabled = false

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer application.Close()

	// Start server (blocks on stdio)
	if err := server.ServeStdio(application.MCPServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
