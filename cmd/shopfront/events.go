package main

import (
	"fmt"
	"sync"

	"github.com/niksmo/shopfront/internal/adapter/kafka"
	"github.com/niksmo/shopfront/internal/app"
	"github.com/niksmo/shopfront/internal/core/domain"
	"github.com/niksmo/shopfront/pkg/sigctx"
	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Work with the cart events stream",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Print cart events as they are produced",
	RunE:  runEventsTail,
}

func init() {
	eventsCmd.AddCommand(eventsTailCmd)
}

func runEventsTail(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireBroker(); err != nil {
		return err
	}

	sigCtx, stop := sigctx.NotifyContext()
	defer stop()

	tlsConfig, err := app.BrokerTLS(cfg)
	if err != nil {
		return err
	}

	serde, err := app.NewCartEventSerde(sigCtx, cfg, tlsConfig)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var mu sync.Mutex
	printEvent := func(evt domain.CartEvent) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "%s  %-8s cart=%s product=%s variant=%s qty=%d total=%d\n",
			evt.OccurredAt.Format("15:04:05.000"),
			evt.Kind, evt.CartID, evt.ProductID, evt.Variant,
			evt.Quantity, evt.TotalItems,
		)
	}

	consumer, err := kafka.NewCartEventsConsumer(
		kafka.ConsumerClientOpt(
			cfg.Broker.SeedBrokers,
			cfg.Broker.Topics.CartEvents,
			cfg.Broker.Consumers.TailGroup,
			tlsConfig,
		),
		kafka.ConsumerDecoderOpt(serde),
		kafka.CartEventsHandlerOpt(printEvent),
	)
	if err != nil {
		return err
	}
	defer consumer.Close()

	fmt.Fprintf(out, "tailing %q, press ctrl+c to stop\n", cfg.Broker.Topics.CartEvents)
	consumer.Run(sigCtx)
	return nil
}
