package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"reconpipe/internal/cli"
)

func main() {
	// .env is optional; keys may come from the environment or the config file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cli.Execute()
}
