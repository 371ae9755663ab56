package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/piyush168713/parcel/internal/cli"
)

var version = "dev"

func main() {
	// Optional .env for PARCEL_CONFIG and friends.
	_ = godotenv.Load()

	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
