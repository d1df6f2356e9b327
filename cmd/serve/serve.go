// Package serve defines the hostctl serve command, the long-running
// process that binds the dispatcher to a transport and serves requests
// until signalled to stop, mirroring cmd/server/server.go's serverCmd.
package serve

import (
	"context"
	"os"

	"hostctl/cmd/root"
	"hostctl/internal/hostruntime"
	"hostctl/internal/logger"

	"github.com/spf13/cobra"
)

var opts hostruntime.Options

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the process-interface host",
	Long:  `serve loads a Host Profile, brings up the action runner and dispatcher, and serves status/config/action requests over the configured transport.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := hostruntime.Run(context.Background(), opts); err != nil {
			logger.Errorf("hostctl: serve exited: %v", err)
			os.Exit(2)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&opts.RepoRoot, "repo", "", "repository root the {repoRoot} path token resolves to (required)")
	serveCmd.Flags().StringVar(&opts.HostConfigPath, "host-config", "", "path to the Host Profile JSON file (required)")
	serveCmd.Flags().StringVar(&opts.IPCEndpoint, "ipc-endpoint", "", "override the Host Profile's ipc.endpoint")
	serveCmd.Flags().StringVar(&opts.LogLevel, "log-level", "info", "debug, info, warn, or error")
	serveCmd.Flags().StringVar(&opts.LogDir, "log-dir", "", "directory for rotated log files; empty logs to stdout only")
	serveCmd.MarkFlagRequired("repo")
	serveCmd.MarkFlagRequired("host-config")

	root.RootCmd.AddCommand(serveCmd)
}
