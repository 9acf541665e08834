package main

import (
	"os"

	"github.com/lzhgus/VibeVoice/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
