package root

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "hostctl",
	Short: "Process-interface host for registered applications",
	Long:  `hostctl serves status, config, and action requests against per-app status specs and action catalogs over a local socket or HTTP transport.`,
}
