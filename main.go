package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		if err := godotenv.Overload(".env"); err == nil {
			fmt.Fprintln(os.Stderr, "Loaded environment variables from .env")
		}
	}

	Execute()
}
