package main

import (
	"os"

	"hostctl/cmd/root"
	"hostctl/internal/logger"

	_ "hostctl/cmd/call"
	_ "hostctl/cmd/serve"
	_ "hostctl/cmd/version"
)

func main() {
	if err := root.RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
	os.Exit(0)
}
