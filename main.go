package main

import (
	"os"

	"github.com/decker502/crowdflow/internal/cli"
	"github.com/decker502/crowdflow/pkg/embedded"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	cli.SetVersion(version, commit, date)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
