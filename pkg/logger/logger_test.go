package logger

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type recordingWriter struct {
	mu   sync.Mutex
	docs []LogDocument
}

func (w *recordingWriter) InsertMany(_ context.Context, documents []interface{}, _ ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, d := range documents {
		w.docs = append(w.docs, d.(LogDocument))
	}
	return &mongo.InsertManyResult{}, nil
}

func (w *recordingWriter) snapshot() []LogDocument {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]LogDocument(nil), w.docs...)
}

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := InjectLogger(context.Background(), custom)
	assert.Same(t, custom, WithCtx(ctx))
}

func TestInitProductionIsJSON(t *testing.T) {
	base := L
	t.Cleanup(func() { L = base; slog.SetDefault(base) })

	var buf bytes.Buffer
	log := Init(Options{Env: "production", Output: &buf})
	log.Debug("hidden")
	log.Info("visible", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"visible"`)
	assert.Contains(t, out, `"k":"v"`)
}

func TestInitLevelOverride(t *testing.T) {
	base := L
	t.Cleanup(func() { L = base; slog.SetDefault(base) })

	var buf bytes.Buffer
	log := Init(Options{Env: "local", Level: "warn", Output: &buf})
	log.Info("quiet")
	log.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelError, ParseLevel("error", slog.LevelInfo))
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG", slog.LevelInfo))
	assert.Equal(t, slog.LevelInfo, ParseLevel("", slog.LevelInfo))
	assert.Equal(t, slog.LevelWarn, ParseLevel("chatty", slog.LevelWarn))
}

func TestMongoHandlerFlushesOnClose(t *testing.T) {
	w := &recordingWriter{}
	h := newMongoHandler(w, MongoOptions{FlushEvery: time.Hour})

	log := slog.New(h).With("request_id", "rid-1", "caller", "cara@example.com")
	log.Debug("ignored")
	log.Info("order materialized", "transaction_id", "pi_1")
	log.WithGroup("checkout").Warn("incomplete", "status", "open")

	h.Close()
	h.Close()

	docs := w.snapshot()
	require.Len(t, docs, 2)
	assert.Equal(t, "order materialized", docs[0].Msg)
	assert.Equal(t, "rid-1", docs[0].RequestID)
	assert.Equal(t, "cara@example.com", docs[0].Caller)
	assert.Equal(t, "pi_1", docs[0].Attrs["transaction_id"])
	assert.NotContains(t, docs[0].Attrs, "caller")
	assert.Equal(t, "WARN", docs[1].Level)
	assert.Equal(t, "open", docs[1].Attrs["checkout.status"])
	assert.Zero(t, h.Dropped())
}

func TestMongoHandlerFlushesFullBatch(t *testing.T) {
	w := &recordingWriter{}
	h := newMongoHandler(w, MongoOptions{BatchSize: 2, FlushEvery: time.Hour})
	defer h.Close()

	log := slog.New(h)
	log.Info("one")
	log.Info("two")

	assert.Eventually(t, func() bool { return len(w.snapshot()) == 2 }, time.Second, 10*time.Millisecond)
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	log := slog.New(m)

	log.Info("hello")
	log.Error("boom")

	assert.Contains(t, a.String(), "hello")
	assert.Contains(t, a.String(), "boom")
	assert.NotContains(t, b.String(), "hello")
	assert.Contains(t, b.String(), "boom")
	assert.True(t, m.Enabled(context.Background(), slog.LevelDebug))
}
