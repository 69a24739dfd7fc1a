package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"flipboard/internal/config"
	"flipboard/internal/game"
	"flipboard/internal/shared"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisherKeysByRoom(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w}

	res := shared.RoundResult{
		RoomCode: "ABCD23",
		Round:    3,
		EndedAt:  1700000000,
		Outcome: game.Outcome{
			Winner:  game.Tie,
			Scores:  []game.Score{{PlayerNumber: 1, Score: 18}, {PlayerNumber: 2, Score: 18}},
			WinType: game.WinNormal,
		},
	}
	if err := p.Publish(context.Background(), res); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "ABCD23" {
		t.Fatalf("expected key ABCD23, got %q", w.msgs[0].Key)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.msgs[0].Value, &body); err != nil {
		t.Fatalf("decode value: %v", err)
	}
	outcome := body["outcome"].(map[string]interface{})
	if outcome["winner"] != "tie" || body["round"] != float64(3) {
		t.Fatalf("unexpected value: %s", w.msgs[0].Value)
	}

	if err := p.Close(); err != nil || !w.closed {
		t.Fatalf("expected writer closed, err=%v", err)
	}
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	boom := errors.New("broker down")
	p := &KafkaPublisher{w: &fakeWriter{err: boom}}
	err := p.Publish(context.Background(), shared.RoundResult{RoomCode: "X"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}

func TestNewWithoutBrokers(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if _, ok := New(cfg).(NopPublisher); !ok {
		t.Fatal("expected NopPublisher without brokers")
	}

	cfg.KafkaBrokers = []string{"localhost:9092"}
	p, ok := New(cfg).(*KafkaPublisher)
	if !ok {
		t.Fatal("expected KafkaPublisher with brokers")
	}
	_ = p.Close()
}
