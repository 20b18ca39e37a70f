package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher writes CSVImportJob messages to the parts.csv-import queue.
// A connection is dialed per publish; upload traffic is low enough that
// holding a long-lived channel in the API process is not worth the
// reconnect bookkeeping.
type Publisher struct {
	URL string // AMQP connection string
}

func NewPublisher(url string) *Publisher {
	return &Publisher{URL: url}
}

// PublishCSVImport publishes one job. The function attempts to be
// robust and to never panic; any error is logged and returned so the
// caller can decide whether the upload request should fail. Messages
// are marked as persistent and the queue is declared durable, so an
// enqueued job survives a broker restart (at-least-once delivery is
// assumed downstream).
func (p *Publisher) PublishCSVImport(job CSVImportJob) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := amqp.Dial(p.URL)
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

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		importQueueName, // name
		true,            // durable
		false,           // autoDelete
		false,           // exclusive
		false,           // noWait
		nil,             // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(job)
	if err != nil {
		log.Printf("rabbitmq: marshal job failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",              // default exchange
		importQueueName, // routing key = queue name
		false,           // mandatory
		false,           // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
