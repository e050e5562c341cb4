package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/prithvianilk/my-besto-friendo/internal/mcpserver"
)

func main() {
	_ = godotenv.Load()

	adminURL := os.Getenv("ADMIN_API_URL")
	if adminURL == "" {
		adminURL = "http://127.0.0.1:9877"
	}

	srv := mcpserver.NewServer(adminURL)
	if err := srv.Run(context.Background()); err != nil {
		log.Fatalf("MCP server failed: %v", err)
	}
}
