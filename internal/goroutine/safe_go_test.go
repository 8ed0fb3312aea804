package goroutine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) Errorf(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func TestRunner_RecoversPanic(t *testing.T) {
	log := &recordingLogger{}
	r := NewRunner(log)

	var done atomic.Bool
	r.Go("flush", func() { panic("boom") })
	r.Go("ok", func() { done.Store(true) })
	r.Wait()

	assert.True(t, done.Load())
	require.Len(t, log.messages, 1)
	assert.Contains(t, log.messages[0], "panic в задаче flush: boom")
}

func TestRunner_GoWithContext(t *testing.T) {
	r := NewRunner(&recordingLogger{})
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	r.GoWithContext(ctx, "waiter", func(ctx context.Context) {
		<-ctx.Done()
		close(stopped)
	})

	cancel()
	r.Wait()
	<-stopped
}
