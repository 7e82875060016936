// Package service publishes domain events to RabbitMQ.  Errors are logged and
// returned so callers can ignore failures without interrupting the main
// request flow.
package service

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/blood-donor-network/internal/queue"
)

// EventPublisher sends donor events somewhere other processes can see them.
type EventPublisher interface {
	PublishDonorEvent(ctx context.Context, ev queue.DonorEvent) error
}

// NoopPublisher drops every event.  It is used when EVENTS_ENABLED is off.
type NoopPublisher struct{}

func (NoopPublisher) PublishDonorEvent(context.Context, queue.DonorEvent) error { return nil }

// AMQPPublisher publishes to the durable donor.events queue.  Each call dials
// its own connection; donor writes are rare enough that a pooled channel is
// not worth the reconnect bookkeeping.
type AMQPPublisher struct {
	URL   string
	Queue string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Queue: queue.DonorEventsQueue}
}

// defaultPublishTimeout bounds a publish whose context carries no deadline.
const defaultPublishTimeout = 5 * time.Second

// boundedConn pins every deadline to a fixed instant.  The amqp client clears
// the socket deadline once the handshake is done; a short-lived publishing
// connection must stay bounded by the caller's context instead.
type boundedConn struct {
	net.Conn
	deadline time.Time
}

func (c boundedConn) SetDeadline(time.Time) error { return c.Conn.SetDeadline(c.deadline) }

// dialWithin returns an amqp dialer that connects, handshakes and publishes
// within ctx's deadline.
func dialWithin(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		deadline, ok := ctx.Deadline()
		if !ok {
			deadline = time.Now().Add(defaultPublishTimeout)
		}
		d := net.Dialer{Deadline: deadline}
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return boundedConn{Conn: conn, deadline: deadline}, nil
	}
}

// PublishDonorEvent marshals ev and publishes it as a persistent message.
func (p *AMQPPublisher) PublishDonorEvent(ctx context.Context, ev queue.DonorEvent) error {
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      dialWithin(ctx),
	})
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// idempotent; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
