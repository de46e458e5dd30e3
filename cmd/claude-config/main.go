package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/jander99/claude-config/internal/cmd"
)

func main() {
	// Optional .env for CLAUDE_CONFIG_* overrides; absence is fine.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
