package queue

import (
    "context"
    "encoding/json"
    "fmt"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher hands events to the broker.  Callers treat failures as
// non-fatal; the event is lost but the committed write stands.
type Publisher interface {
    Publish(ctx context.Context, ev Event) error
}

// NopPublisher drops every event.  It is used when AMQP is disabled.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// AMQPPublisher publishes events to a durable RabbitMQ queue.  It dials
// per publish, which keeps it free of connection state at the cost of a
// handshake per event; write volume in the directory is low.
type AMQPPublisher struct {
    URL   string
    Queue string
}

// NewAMQPPublisher returns a publisher for url and queue.
func NewAMQPPublisher(url, queue string) *AMQPPublisher {
    return &AMQPPublisher{URL: url, Queue: queue}
}

// Publish implements Publisher.  Messages are marked as persistent and
// routed through the default exchange to the queue.
func (p *AMQPPublisher) Publish(ctx context.Context, ev Event) error {
    conn, err := amqp.Dial(p.URL)
    if err != nil {
        return fmt.Errorf("rabbitmq: dial: %w", err)
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("rabbitmq: channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if err := declareQueue(ch, p.Queue); err != nil {
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return fmt.Errorf("rabbitmq: marshal event: %w", err)
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent, // store on disk
        Timestamp:    time.Now().UTC(),
        Type:         ev.Type,
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx,
        "",      // default exchange
        p.Queue, // routing key = queue name
        false,   // mandatory
        false,   // immediate
        pub,
    ); err != nil {
        return fmt.Errorf("rabbitmq: publish: %w", err)
    }
    return nil
}

func declareQueue(ch *amqp.Channel, name string) error {
    if _, err := ch.QueueDeclare(
        name,  // name
        true,  // durable
        false, // autoDelete
        false, // exclusive
        false, // noWait
        nil,   // args
    ); err != nil {
        return fmt.Errorf("rabbitmq: queue declare: %w", err)
    }
    return nil
}
