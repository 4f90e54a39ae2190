package main

import (
	"github.com/joho/godotenv"

	"github.com/pfrederiksen/cinema-times/internal/cli"
)

func main() {
	// Load a local .env if present so OMDB_API_KEY can live outside the shell
	_ = godotenv.Load()

	cli.Execute()
}
