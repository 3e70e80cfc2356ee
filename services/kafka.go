package services

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"sync"
	"time"

	"ssplt10-backend/logger"

	"github.com/segmentio/kafka-go"
)

var (
	producer      *kafka.Writer
	producerMutex sync.Mutex
	eventTopic    string
)

// InitProducer initializes a Kafka writer. An empty broker list disables
// event publishing entirely; every Publish becomes a logged no-op.
func InitProducer(brokers, topic string) {
	producerMutex.Lock()
	defer producerMutex.Unlock()

	if brokers == "" {
		logger.Info("Kafka is disabled (KAFKA_BROKERS is empty)")
		return
	}

	var validBrokers []string
	for _, b := range strings.Split(brokers, ",") {
		if b := strings.TrimSpace(b); b != "" {
			validBrokers = append(validBrokers, b)
		}
	}

	if len(validBrokers) == 0 {
		logger.Warn("No valid Kafka brokers configured")
		return
	}

	producer = &kafka.Writer{
		Addr:         kafka.TCP(validBrokers...),
		Balancer:     &kafka.LeastBytes{},
		Async:        false,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
	}
	eventTopic = topic

	logger.Info("Kafka producer initialized. Brokers=%v Topic=%s", validBrokers, topic)
}

// CloseProducer closes the Kafka writer if one was initialized.
func CloseProducer() error {
	producerMutex.Lock()
	defer producerMutex.Unlock()

	if producer == nil {
		return nil
	}
	err := producer.Close()
	producer = nil
	return err
}

// Publish marshals value to JSON and publishes it to the payments topic
// with the given key. Retries 3 times with exponential backoff.
func Publish(key string, value interface{}) error {
	producerMutex.Lock()
	defer producerMutex.Unlock()

	// Best-effort: skip silently when Kafka is disabled
	if producer == nil {
		logger.Debug("Kafka producer not initialized, skipping publish with key: %s", key)
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logger.Error("Error marshaling Kafka message: %v", err)
		return err
	}

	msg := kafka.Message{
		Topic: eventTopic,
		Key:   []byte(key),
		Value: payload,
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := producer.WriteMessages(ctx, msg)
		cancel()

		if err == nil {
			logger.Debug("Published to Kafka topic %s with key %s", eventTopic, key)
			return nil
		}

		lastErr = err
		if attempt < 2 {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			logger.Warn("Kafka publish attempt %d/3 failed, retrying in %v: %v", attempt+1, backoff, err)
			time.Sleep(backoff)
		} else {
			logger.Error("Kafka publish failed after 3 attempts: %v", err)
		}
	}

	return lastErr
}
