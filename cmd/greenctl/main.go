package main

import (
	"context"
	"fmt"
	"os"

	"backend-greentransit/internal/cli"
	"backend-greentransit/internal/config"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(config.Load(), nil)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
