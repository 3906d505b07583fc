package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// ActivityProducer publishes seat activity messages
type ActivityProducer interface {
	PublishSeatActivity(ctx context.Context, eventID uuid.UUID, action string, seatIDs []string, userID *uuid.UUID) error
	Close() error
	HealthCheck(ctx context.Context) error
}

// KafkaProducerConfig contains configuration for the Kafka activity producer
type KafkaProducerConfig struct {
	Brokers          []string
	ActivityTopic    string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		ActivityTopic:    "seat-activity",
		RetryMax:         3,
		TimeoutMs:        10000,             // 10 seconds
		RequiredAcks:     sarama.WaitForAll, // Wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaActivityProducer publishes seat activity to Kafka
type KafkaActivityProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaActivityProducer creates a new Kafka activity producer
func NewKafkaActivityProducer(config *KafkaProducerConfig) (ActivityProducer, error) {
	saramaConfig := sarama.NewConfig()

	// Producer configuration
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	// Enable idempotent producer
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one event's activity on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Printf("📤 Kafka activity producer created successfully")
	return &KafkaActivityProducer{
		producer: producer,
		config:   config,
	}, nil
}

// PublishSeatActivity publishes one seat workflow change to the activity topic
func (kap *KafkaActivityProducer) PublishSeatActivity(ctx context.Context, eventID uuid.UUID, action string, seatIDs []string, userID *uuid.UUID) error {
	activity := NewSeatActivity(eventID, action, seatIDs, userID)

	messageBytes, err := activity.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal seat activity: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: kap.config.ActivityTopic,
		Key:   sarama.StringEncoder(activity.GetPartitionKey()),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("action"), Value: []byte(action)},
			{Key: []byte("event_id"), Value: []byte(eventID.String())},
		},
		Timestamp: activity.Timestamp,
	}

	partition, offset, err := kap.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send seat activity to Kafka: %w", err)
	}

	log.Printf("📤 Seat activity published to Kafka - Topic: %s, Partition: %d, Offset: %d, Action: %s, Seats: %d",
		kap.config.ActivityTopic, partition, offset, action, len(seatIDs))

	return nil
}

// Close shuts down the producer
func (kap *KafkaActivityProducer) Close() error {
	if err := kap.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// HealthCheck verifies the producer can still reach the cluster
func (kap *KafkaActivityProducer) HealthCheck(ctx context.Context) error {
	// SyncProducer keeps no connection state we can probe directly;
	// a metadata-only message would pollute the topic, so report healthy
	// as long as the producer has not been closed.
	if kap.producer == nil {
		return fmt.Errorf("kafka producer is not initialized")
	}
	return nil
}
