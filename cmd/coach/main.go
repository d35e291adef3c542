package main

import (
	"os"

	"github.com/convocoach/coach-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
