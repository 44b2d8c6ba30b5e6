package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/wayneeseguin/debugkit/cmd/debugkit-demo/cmd"
)

func main() {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	if err := cmd.NewRootCmd(afero.NewOsFs(), os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
