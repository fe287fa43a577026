package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"toggldash/internal/cli"
	"toggldash/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for TOGGL_API_TOKEN / TOGGLDASH_CONFIG_DIR overrides.
	godotenv.Load()

	dir, err := store.Dir()
	if err != nil {
		return err
	}

	return cli.NewRootCmd(dir).Execute()
}
