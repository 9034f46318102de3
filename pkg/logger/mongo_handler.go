package logger

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOptions tunes the MongoDB log sink. Zero values pick the defaults.
type MongoOptions struct {
	Level      slog.Leveler
	Retention  time.Duration // TTL on the time field; 0 keeps records forever
	QueueSize  int
	BatchSize  int
	FlushEvery time.Duration
}

func (o *MongoOptions) defaults() {
	if o.Level == nil {
		o.Level = slog.LevelInfo
	}
	if o.QueueSize <= 0 {
		o.QueueSize = 4096
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 50
	}
	if o.FlushEvery <= 0 {
		o.FlushEvery = 2 * time.Second
	}
}

// LogDocument is one stored record. request_id and caller are lifted out of
// the attributes so a request or a user's activity can be queried directly.
type LogDocument struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Caller    string    `bson:"caller,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

type documentWriter interface {
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// sink is shared by a MongoHandler and every handler derived from it.
type sink struct {
	col       documentWriter
	queue     chan LogDocument
	batchSize int
	every     time.Duration
	dropped   atomic.Int64
	closeOnce sync.Once
	done      chan struct{}
	finished  chan struct{}
}

// MongoHandler is an slog.Handler that queues records and inserts them in
// batches from one background goroutine. Handle never blocks: a full queue
// drops the record.
type MongoHandler struct {
	*sink
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewMongoHandler indexes col and starts the writer. The caller owns the
// client and must Close the handler before disconnecting it.
func NewMongoHandler(col *mongo.Collection, opts MongoOptions) *MongoHandler {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	idx := mongo.IndexModel{Keys: bson.D{{Key: "time", Value: -1}}}
	if opts.Retention > 0 {
		idx.Options = options.Index().SetExpireAfterSeconds(int32(opts.Retention.Seconds()))
	}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		L.Warn("log sink: index not created", "error", err)
	}
	_, _ = col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "request_id", Value: 1}}})

	return newMongoHandler(col, opts)
}

func newMongoHandler(col documentWriter, opts MongoOptions) *MongoHandler {
	opts.defaults()
	s := &sink{
		col:       col,
		queue:     make(chan LogDocument, opts.QueueSize),
		batchSize: opts.BatchSize,
		every:     opts.FlushEvery,
		done:      make(chan struct{}),
		finished:  make(chan struct{}),
	}
	go s.run()
	return &MongoHandler{sink: s, level: opts.Level}
}

func (h *MongoHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *MongoHandler) Handle(_ context.Context, r slog.Record) error {
	select {
	case h.queue <- h.document(r):
	default:
		h.dropped.Add(1)
	}
	return nil
}

// Dropped reports how many records were discarded on a full queue.
func (h *MongoHandler) Dropped() int64 { return h.dropped.Load() }

func (h *MongoHandler) document(r slog.Record) LogDocument {
	doc := LogDocument{Time: r.Time.UTC(), Level: r.Level.String(), Msg: r.Message, Attrs: bson.M{}}

	var prefix string
	for _, g := range h.groups {
		prefix += g + "."
	}
	put := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			doc.RequestID = a.Value.String()
		case "caller":
			doc.Caller = a.Value.String()
		default:
			doc.Attrs[prefix+a.Key] = a.Value.Resolve().Any()
		}
		return true
	}
	for _, a := range h.attrs {
		put(a)
	}
	r.Attrs(put)

	if len(doc.Attrs) == 0 {
		doc.Attrs = nil
	}
	return doc
}

func (h *MongoHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &c
}

func (h *MongoHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.groups = append(append([]string(nil), h.groups...), name)
	return &c
}

// Close drains the queue, writes the last batch and stops the writer.
// Safe to call more than once.
func (h *MongoHandler) Close() {
	h.closeOnce.Do(func() { close(h.done) })
	<-h.finished
}

func (s *sink) run() {
	defer close(s.finished)

	tick := time.NewTicker(s.every)
	defer tick.Stop()

	batch := make([]interface{}, 0, s.batchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := s.col.InsertMany(ctx, batch); err != nil {
			s.dropped.Add(int64(len(batch)))
		}
		batch = batch[:0]
	}

	for {
		select {
		case doc := <-s.queue:
			if batch = append(batch, doc); len(batch) >= s.batchSize {
				flush()
			}
		case <-tick.C:
			flush()
		case <-s.done:
			for {
				select {
				case doc := <-s.queue:
					batch = append(batch, doc)
				default:
					flush()
					return
				}
			}
		}
	}
}
