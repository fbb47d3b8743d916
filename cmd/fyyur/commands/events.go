package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/logger"
	"github.com/iliyamo/fyyur/internal/queue"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tail the domain event queue",
	Long: `Consume events from AMQP_QUEUE and write each one to the log.

Useful to check that a deployment publishes show.listed, venue.deleted and
the other events.  Runs until interrupted and reconnects when the broker
goes away.`,
	RunE: runEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}

func runEvents(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logger.GetLogger()

	c := &queue.Consumer{
		URL:   cfg.AMQP.URL,
		Queue: cfg.AMQP.Queue,
		Log:   log,
		Handle: func(_ context.Context, ev queue.Event) error {
			log.Info("event",
				zap.String("type", ev.Type),
				zap.String("occurred_at", ev.OccurredAt),
				zap.ByteString("payload", ev.Payload),
			)
			return nil
		},
	}
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
