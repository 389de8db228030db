package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTeeHandler_SkipsNil(t *testing.T) {
	t.Parallel()

	tee := NewTeeHandler(nil, slog.NewJSONHandler(&bytes.Buffer{}, nil), nil)
	assert.Len(t, tee.sinks, 1)
}

func TestTeeHandler_PerSinkLevel(t *testing.T) {
	t.Parallel()

	var stdout, remote bytes.Buffer
	tee := NewTeeHandler(
		slog.NewJSONHandler(&stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewJSONHandler(&remote, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	assert.True(t, tee.Enabled(context.Background(), slog.LevelDebug))

	slog.New(tee).Info("event processed")

	assert.Contains(t, stdout.String(), "event processed")
	assert.Zero(t, remote.Len())
}

type failingHandler struct {
	slog.Handler
}

func (h *failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }
func (h *failingHandler) Enabled(context.Context, slog.Level) bool  { return true }

func TestTeeHandler_JoinsErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tee := NewTeeHandler(slog.NewJSONHandler(&buf, nil), &failingHandler{})

	err := tee.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "test", 0))

	assert.NotZero(t, buf.Len())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink down")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) count(s string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bytes.Count(b.buf.Bytes(), []byte(s))
}

func TestShippingHandler_DrainsOnShutdown(t *testing.T) {
	t.Parallel()

	var out syncBuffer
	shipper := NewShippingHandler(slog.NewJSONHandler(&out, nil), ShipperOptions{QueueSize: 64})
	log := slog.New(shipper.WithAttrs([]slog.Attr{slog.String("sink", "remote")}))

	for i := range 10 {
		log.Info("queued", "i", i)
	}

	require.NoError(t, shipper.Shutdown(context.Background()))
	assert.Equal(t, 10, out.count(`"msg":"queued"`))
	assert.Equal(t, 10, out.count(`"sink":"remote"`))
	assert.Zero(t, shipper.Dropped())

	log.Info("late")
	assert.Zero(t, out.count("late"))
	assert.Equal(t, uint64(1), shipper.Dropped())
	assert.NoError(t, shipper.Shutdown(context.Background()))
}

type blockingHandler struct {
	slog.Handler
	release chan struct{}
}

func (h *blockingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *blockingHandler) Handle(context.Context, slog.Record) error {
	<-h.release
	return nil
}

func TestShippingHandler_DropsWhenFull(t *testing.T) {
	t.Parallel()

	sink := &blockingHandler{release: make(chan struct{})}
	shipper := NewShippingHandler(sink, ShipperOptions{QueueSize: 1})
	log := slog.New(shipper)

	for range 3 {
		log.Info("burst")
	}
	assert.GreaterOrEqual(t, shipper.Dropped(), uint64(1))

	close(sink.release)
	require.NoError(t, shipper.Shutdown(context.Background()))
}

func TestShippingHandler_ShutdownHonorsDeadline(t *testing.T) {
	t.Parallel()

	sink := &blockingHandler{release: make(chan struct{})}
	defer close(sink.release)
	shipper := NewShippingHandler(sink, ShipperOptions{QueueSize: 4})
	slog.New(shipper).Info("stuck")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, shipper.Shutdown(ctx), context.DeadlineExceeded)
}

func TestNilShippingHandler(t *testing.T) {
	t.Parallel()

	var shipper *ShippingHandler
	assert.Zero(t, shipper.Dropped())
	assert.NoError(t, shipper.Shutdown(context.Background()))
}

func TestShippingHandler_LoggingDuringShutdown(t *testing.T) {
	t.Parallel()

	var out syncBuffer
	shipper := NewShippingHandler(slog.NewJSONHandler(&out, nil), ShipperOptions{QueueSize: 8})
	log := slog.New(shipper)

	const writers = 8
	stopped := make(chan struct{})
	var wg sync.WaitGroup
	for w := range writers {
		wg.Go(func() {
			for {
				select {
				case <-stopped:
					// One record after Shutdown returned, always dropped.
					log.Info("after", "writer", w)
					return
				default:
					log.Info("during", "writer", w)
				}
			}
		})
	}

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, shipper.Shutdown(context.Background()))
	close(stopped)
	wg.Wait()

	assert.Zero(t, out.count(`"msg":"after"`))
	assert.GreaterOrEqual(t, shipper.Dropped(), uint64(writers))
}
