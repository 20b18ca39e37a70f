package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartImportConsumer connects to RabbitMQ, declares the durable
// parts.csv-import queue and starts consuming jobs. Each job references
// a staged CSV file which is imported row by row. The function runs a
// reconnect loop with exponential backoff and keeps running across
// broker restarts; jobs whose payload cannot even be decoded are
// rejected without requeue so a poison message cannot wedge the worker.
func StartImportConsumer(amqpURL string, parts PartCreator) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(amqpURL)
		if err != nil {
			log.Printf("import-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, parts); err != nil {
			log.Printf("import-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection, parts PartCreator) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// One job at a time: imports are IO-bound on the database anyway.
	if err := ch.Qos(1, 0, false); err != nil {
		log.Printf("import-consumer: set QoS failed: %v", err)
	}

	_, err = ch.QueueDeclare(importQueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(importQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleJob(d.Body, parts); err != nil {
			log.Printf("import-consumer: handle job failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleJob(body []byte, parts PartCreator) error {
	var job CSVImportJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	log.Printf("import-consumer: importing %s (uploaded_by=%s)", job.FilePath, job.UploadedBy)
	res, err := ImportPartsCSV(context.Background(), job.FilePath, parts)
	if err != nil {
		return fmt.Errorf("import %s: %w", job.FilePath, err)
	}
	log.Printf("import-consumer: finished %s | created=%d failed=%d", job.FilePath, res.Created, res.Failed)
	return nil
}
