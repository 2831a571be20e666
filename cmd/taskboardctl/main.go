package main

import (
	"context"
	"fmt"
	"os"

	"taskboard/internal/cli"
	"taskboard/internal/pkg/logger"
)

func main() {
	err := cli.RootCmd().ExecuteContext(context.Background())
	_ = logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
