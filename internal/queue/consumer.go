package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"
)

// Handler processes one decoded event.  Returning an error rejects the
// message without requeueing it.
type Handler func(ctx context.Context, ev Event) error

// Consumer reads events from a durable queue with a reconnect loop.  The
// `fyyur events` command uses it to tail the event stream.
type Consumer struct {
    URL    string
    Queue  string
    Log    *zap.Logger
    Handle Handler
}

// Run consumes until ctx is cancelled.  Broker failures are logged and
// retried with exponential backoff capped at 30s.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            c.Log.Warn("event consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        c.Log.Warn("event consumer: consume loop ended, reconnecting", zap.Error(err))
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        c.Log.Warn("event consumer: set QoS failed", zap.Error(err))
    }
    if err := declareQueue(ch, c.Queue); err != nil {
        return err
    }
    msgs, err := ch.Consume(c.Queue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.dispatch(ctx, d.Body); err != nil {
                c.Log.Error("event consumer: handle message failed", zap.Error(err))
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

func (c *Consumer) dispatch(ctx context.Context, body []byte) error {
    ev, err := DecodeEvent(body)
    if err != nil {
        return err
    }
    return c.Handle(ctx, ev)
}

// DecodeEvent parses a message body into an Event.
func DecodeEvent(body []byte) (Event, error) {
    var ev Event
    if err := json.Unmarshal(body, &ev); err != nil {
        return Event{}, fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" {
        return Event{}, errors.New("event without type")
    }
    return ev, nil
}

// sleep waits for d or until ctx is done, reporting whether d elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}
