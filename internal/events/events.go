// Package events publishes notifications about formed rooms.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/mmynk/ottshare/internal/models"
)

// RoomFormed is published once per committed room.
// It never carries credentials.
type RoomFormed struct {
	RoomID      string  `json:"room_id"`
	ServiceType string  `json:"service_type"`
	LeaderID    int64   `json:"leader_id"`
	MemberIDs   []int64 `json:"member_ids"`
	CreatedAt   int64   `json:"created_at"`
}

// NewRoomFormed builds the event for a room.
func NewRoomFormed(room *models.Room) RoomFormed {
	return RoomFormed{
		RoomID:      room.ID,
		ServiceType: string(room.ServiceType),
		LeaderID:    room.LeaderID,
		MemberIDs:   room.MemberIDs,
		CreatedAt:   room.CreatedAt,
	}
}

// Publisher is the interface used by the matcher to publish events.
type Publisher interface {
	PublishRoomFormed(ctx context.Context, event RoomFormed) error
	Close() error
}

// Writer is the subset of kafka.Writer the producer needs. Tests inject a fake.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events as JSON, keyed by room ID.
type KafkaPublisher struct {
	writer Writer
}

// NewKafkaPublisher creates a publisher writing to the given broker and topic.
func NewKafkaPublisher(brokerURL, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokerURL),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// NewKafkaPublisherWithWriter allows injecting a test writer.
func NewKafkaPublisherWithWriter(w Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

// PublishRoomFormed marshals the event and writes one message.
func (p *KafkaPublisher) PublishRoomFormed(ctx context.Context, event RoomFormed) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal room event: %w", err)
	}

	msg := kafka.Message{Key: []byte(event.RoomID), Value: b}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write room event: %w", err)
	}

	slog.Debug("Room event published", "room_id", event.RoomID, "service_type", event.ServiceType)
	return nil
}

// Close closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishRoomFormed(context.Context, RoomFormed) error { return nil }
func (NopPublisher) Close() error                                       { return nil }
