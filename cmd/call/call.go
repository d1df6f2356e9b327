// Package call defines the hostctl call command, a thin CLI wrapper
// around pkg/client for ad-hoc requests against a running host, one
// cobra command per wire method mirroring cmd/client's layout.
package call

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"hostctl/cmd/root"
	"hostctl/pkg/client"

	"github.com/spf13/cobra"
)

var (
	backend string
	address string
	timeout time.Duration
	appID   string
)

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Send one request to a running hostctl instance",
	Long:  `call issues a single wire-protocol request against a hostctl instance and prints its JSON response.`,
}

func init() {
	callCmd.PersistentFlags().StringVar(&backend, "backend", "socket", "socket or http")
	callCmd.PersistentFlags().StringVar(&address, "address", "/tmp/hostctl.sock", "socket path, host:port, or base URL")
	callCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")
	callCmd.PersistentFlags().StringVar(&appID, "app-id", "", "target application id")

	callCmd.AddCommand(pingCmd, statusGetCmd, configGetCmd, configSetCmd, actionListCmd, actionInvokeCmd, actionJobGetCmd)
	root.RootCmd.AddCommand(callCmd)
}

func newClient() *client.Client {
	return client.New(client.Config{Backend: backend, Address: address, Timeout: timeout})
}

func printResult(resp json.RawMessage, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "call failed: %v\n", err)
		os.Exit(1)
	}
	var pretty map[string]interface{}
	if json.Unmarshal(resp, &pretty) == nil {
		out, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(out))
		return
	}
	fmt.Println(string(resp))
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the host is alive",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := newClient().Ping(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "call failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(`{"ok":true}`)
	},
}

var statusGetCmd = &cobra.Command{
	Use:   "status-get",
	Short: "Fetch an app's live status",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		printResult(newClient().StatusGet(ctx, appID))
	},
}

var configGetCmd = &cobra.Command{
	Use:   "config-get",
	Short: "Fetch an app's effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		printResult(newClient().ConfigGet(ctx, appID))
	},
}

var (
	configSetKey       string
	configSetValueJSON string
)

var configSetCmd = &cobra.Command{
	Use:   "config-set",
	Short: "Write one configuration key",
	Run: func(cmd *cobra.Command, args []string) {
		var value interface{}
		if err := json.Unmarshal([]byte(configSetValueJSON), &value); err != nil {
			fmt.Fprintf(os.Stderr, "--value must be valid JSON: %v\n", err)
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		printResult(newClient().ConfigSet(ctx, appID, configSetKey, value))
	},
}

var actionListCmd = &cobra.Command{
	Use:   "action-list",
	Short: "List an app's action catalog",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		printResult(newClient().ActionList(ctx, appID))
	},
}

var (
	actionInvokeName    string
	actionInvokeArgJSON string
)

var actionInvokeCmd = &cobra.Command{
	Use:   "action-invoke",
	Short: "Invoke a named action",
	Run: func(cmd *cobra.Command, args []string) {
		actionArgs := map[string]interface{}{}
		if actionInvokeArgJSON != "" {
			if err := json.Unmarshal([]byte(actionInvokeArgJSON), &actionArgs); err != nil {
				fmt.Fprintf(os.Stderr, "--args must be a JSON object: %v\n", err)
				os.Exit(1)
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		printResult(newClient().ActionInvoke(ctx, appID, actionInvokeName, actionArgs))
	},
}

var actionJobGetJobID string

var actionJobGetCmd = &cobra.Command{
	Use:   "action-job-get",
	Short: "Fetch a previously invoked action's job record",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		printResult(newClient().ActionJobGet(ctx, appID, actionJobGetJobID))
	},
}

func init() {
	configSetCmd.Flags().StringVar(&configSetKey, "key", "", "configuration key")
	configSetCmd.Flags().StringVar(&configSetValueJSON, "value", "null", "new value, as JSON")

	actionInvokeCmd.Flags().StringVar(&actionInvokeName, "action-name", "", "action name from the app's catalog")
	actionInvokeCmd.Flags().StringVar(&actionInvokeArgJSON, "args", "", "action arguments, as a JSON object")

	actionJobGetCmd.Flags().StringVar(&actionJobGetJobID, "job-id", "", "job id returned by action-invoke")
}
