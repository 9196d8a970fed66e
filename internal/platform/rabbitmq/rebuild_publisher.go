package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RebuildRequest asks the worker for a fresh index snapshot.
type RebuildRequest struct {
	ID          string    `json:"id"`
	RequestedAt time.Time `json:"requested_at"`
	Reason      string    `json:"reason"`
}

func NewRebuildRequest(reason string) RebuildRequest {
	return RebuildRequest{
		ID:          uuid.NewString(),
		RequestedAt: time.Now(),
		Reason:      reason,
	}
}

type RebuildPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewRebuildPublisher(conn *amqp.Connection, queueName string) *RebuildPublisher {
	return &RebuildPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *RebuildPublisher) Publish(ctx context.Context, req RebuildRequest) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := DeclareRebuildQueue(ch, p.queueName); err != nil {
		return err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal rebuild request failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    req.ID,
			Timestamp:    req.RequestedAt,
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish rebuild request failed: %w", err)
	}
	return nil
}
