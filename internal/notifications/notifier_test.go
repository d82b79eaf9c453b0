package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"postboard/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_NilClientIsNoop(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.Publish(context.Background(), Event{Type: EventPostCreated}))
	assert.NoError(t, n.Subscribe(context.Background(), func(string) {}))
	assert.NoError(t, n.Close())
}

func TestNotifier_PublishAndSubscribe(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	n := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	payloads := make(chan string, 1)
	require.NoError(t, n.Subscribe(ctx, func(payload string) {
		payloads <- payload
	}))

	require.NoError(t, n.Publish(context.Background(), Event{
		Type:    EventPostReactionUpdated,
		PostID:  "p1",
		Payload: map[string]interface{}{"post_id": "p1", "likes_count": 1},
	}))

	select {
	case payload := <-payloads:
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
		assert.Equal(t, EventPostReactionUpdated, decoded["type"])
		body := decoded["payload"].(map[string]interface{})
		assert.Equal(t, "p1", body["post_id"])
		assert.Equal(t, float64(1), body["likes_count"])
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestNewRedisClient(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewRedisClient(mr.Addr())
	require.NoError(t, err)
	_ = client.Close()

	client, err = NewRedisClient("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	_ = client.Close()

	_, err = NewRedisClient("redis://%zz")
	assert.Error(t, err)
}

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

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w}

	require.NoError(t, p.Publish(context.Background(), Event{
		Type:    EventCommentCreated,
		PostID:  "p42",
		Payload: map[string]interface{}{"comment_id": "c1"},
	}))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, []byte("p42"), msg.Key)
	assert.JSONEq(t, `{"type":"comment_created","payload":{"comment_id":"c1"}}`, string(msg.Value))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte(EventCommentCreated), msg.Headers[0].Value)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{w: &fakeWriter{err: errors.New("broker unavailable")}}
	err := p.Publish(context.Background(), Event{Type: EventPostDeleted, PostID: "p1"})
	assert.EqualError(t, err, "broker unavailable")
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: EventPostCreated}))
	assert.NoError(t, p.Close())
}

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	prev := middleware.Logger
	middleware.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	defer func() { middleware.Logger = prev }()

	LogEvent(`{"type":"comment_created","payload":{"post_id":"p1"}}`)
	assert.Contains(t, buf.String(), "event_type=comment_created")

	buf.Reset()
	LogEvent("not json")
	assert.Contains(t, buf.String(), "undecodable post event")
}
