package main

import (
	"os"

	"github.com/SkillFence/skillfence/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
