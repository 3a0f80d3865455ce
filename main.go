package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/tarun-khatri/profitpath-smart-swap/cmd"
)

func main() {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
