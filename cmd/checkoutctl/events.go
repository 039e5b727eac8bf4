package main

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dmehra2102/paypal-checkout/internal/config"
	orderkafka "github.com/dmehra2102/paypal-checkout/internal/order/infrastructure/kafka"
	"github.com/dmehra2102/paypal-checkout/pkg/events"
	"github.com/dmehra2102/paypal-checkout/pkg/logging"
	"github.com/dmehra2102/paypal-checkout/pkg/shutdown"
	"github.com/spf13/cobra"
)

var errNoBrokers = errors.New("KAFKA_ADDR is not set")

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect published checkout events",
	}
	cmd.AddCommand(eventsTailCmd())
	return cmd
}

func eventsTailCmd() *cobra.Command {
	var (
		group     string
		fromStart bool
	)
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print checkout events as JSON lines until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(cfg.Events.Brokers) == 0 {
				return errNoBrokers
			}
			log := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Log.Level)

			ctx, cancel := shutdown.WithSignals(cmd.Context(), log)
			defer cancel()

			reader := orderkafka.NewReader(cfg.Events.Brokers, cfg.Events.Topic, group, fromStart)
			enc := json.NewEncoder(cmd.OutOrStdout())
			return orderkafka.NewConsumer(log, reader).Run(ctx, func(_ context.Context, ev events.Received) error {
				return enc.Encode(ev)
			})
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "checkoutctl-tail", "Consumer group id")
	cmd.Flags().BoolVar(&fromStart, "from-start", false, "Start at the oldest retained event when the group is new")
	return cmd
}
