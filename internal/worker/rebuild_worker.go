package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"edubot/internal/platform/rabbitmq"
	"edubot/internal/rag"
)

// Rebuilder is the slice of *rag.Index the worker drives.
type Rebuilder interface {
	Snapshot() *rag.Snapshot
	Rebuild(ctx context.Context) (*rag.Snapshot, rag.BuildReport, error)
}

// RebuildWorker consumes rebuild requests one at a time. Requests issued
// before the active snapshot's records were read are acknowledged without
// rebuilding.
type RebuildWorker struct {
	conn      *amqp.Connection
	index     Rebuilder
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRebuildWorker(conn *amqp.Connection, index Rebuilder, queueName string) *RebuildWorker {
	return &RebuildWorker{
		conn:      conn,
		index:     index,
		queueName: queueName,
	}
}

func (w *RebuildWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}
	if err := rabbitmq.DeclareRebuildQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}
	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("set worker qos failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(workerCtx, d.Body); err != nil {
					log.Printf("worker rebuild failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *RebuildWorker) handle(ctx context.Context, body []byte) error {
	var req rabbitmq.RebuildRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("decode rebuild request failed: %w", err)
	}

	if alreadySatisfied(req, w.index.Snapshot().DataAsOf()) {
		log.Printf("worker skip rebuild %s: snapshot data is newer than request", req.ID)
		return nil
	}

	_, report, err := w.index.Rebuild(ctx)
	if err != nil {
		return err
	}
	log.Printf("worker rebuild %s done: reason=%s chunks=%d", req.ID, req.Reason, report.IndexedChunks)
	return nil
}

func (w *RebuildWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func alreadySatisfied(req rabbitmq.RebuildRequest, dataAsOf time.Time) bool {
	if dataAsOf.IsZero() || req.RequestedAt.IsZero() {
		return false
	}
	return req.RequestedAt.Before(dataAsOf)
}
