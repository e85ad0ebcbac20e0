package kafka

import (
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// Config holds Kafka producer settings.
type Config struct {
	Brokers []string
	Topic   string
}

// Producer publishes order events to a single Kafka topic.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer connects a synchronous Sarama producer to the brokers.
func NewProducer(cfg Config) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one Kafka broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("Kafka topic is required")
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to start Sarama producer: %w", err)
	}

	log.Println("Kafka producer connected successfully.")
	return NewProducerFromSarama(producer, cfg.Topic), nil
}

// NewProducerFromSarama wraps an existing SyncProducer.
func NewProducerFromSarama(producer sarama.SyncProducer, topic string) *Producer {
	return &Producer{producer: producer, topic: topic}
}

func newSaramaConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true // required by SyncProducer
	config.Producer.Timeout = 5 * time.Second
	return config
}

// PublishOrderEvent sends body to the configured topic. The routing key
// becomes the message key and an "event" header.
func (p *Producer) PublishOrderEvent(routingKey string, body []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(routingKey),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event"), Value: []byte(routingKey)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to send message to Kafka topic %s: %w", p.topic, err)
	}
	log.Printf("Message sent to topic '%s', partition %d, offset %d", p.topic, partition, offset)
	return nil
}

// Close shuts down the underlying producer.
func (p *Producer) Close() error {
	return p.producer.Close()
}
