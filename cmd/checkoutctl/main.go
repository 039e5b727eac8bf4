package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmehra2102/paypal-checkout/internal/app"
	"github.com/dmehra2102/paypal-checkout/internal/config"
	"github.com/dmehra2102/paypal-checkout/pkg/logging"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "checkoutctl",
		Short:         "Operate the PayPal checkout backend from the command line",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(tokenCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(orderCmd())
	root.AddCommand(eventsCmd())
	return root
}

// bootstrap wires the same components the HTTP service runs with. Logs go to
// stderr so stdout stays machine readable.
func bootstrap(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level)
	return app.New(cmd.Context(), cfg, log)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
