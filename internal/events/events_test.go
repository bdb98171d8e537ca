package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"

	"github.com/mmynk/ottshare/internal/models"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisherWithWriter(w)

	room := &models.Room{
		ID:          "room-1",
		ServiceType: models.Netflix,
		LeaderID:    3,
		MemberIDs:   []int64{1, 2, 3},
		Credentials: models.Credentials{AccountID: "acct", SealedPassword: []byte("sealed")},
		CreatedAt:   1700000000,
	}

	if err := p.PublishRoomFormed(context.Background(), NewRoomFormed(room)); err != nil {
		t.Fatalf("PublishRoomFormed failed: %v", err)
	}

	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "room-1" {
		t.Errorf("expected key room-1, got %s", w.msgs[0].Key)
	}

	var got map[string]any
	if err := json.Unmarshal(w.msgs[0].Value, &got); err != nil {
		t.Fatalf("invalid JSON payload: %v", err)
	}
	if got["service_type"] != "NETFLIX" {
		t.Errorf("expected service_type NETFLIX, got %v", got["service_type"])
	}
	for _, forbidden := range []string{"credentials", "password", "account_id"} {
		if _, ok := got[forbidden]; ok {
			t.Errorf("event must not carry %q", forbidden)
		}
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !w.closed {
		t.Error("expected writer to be closed")
	}
}

func TestKafkaPublisherWriteError(t *testing.T) {
	p := NewKafkaPublisherWithWriter(&fakeWriter{err: errors.New("broker down")})

	err := p.PublishRoomFormed(context.Background(), RoomFormed{RoomID: "r"})
	if err == nil {
		t.Fatal("expected error when the writer fails")
	}
}
