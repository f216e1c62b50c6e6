package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Estoque-api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
