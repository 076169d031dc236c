package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	emaildomain "mailtriage-backend/internal/email/domain"

	"github.com/stretchr/testify/assert"
)

type countingIngestor struct {
	runs atomic.Int32
	err  error
}

func (c *countingIngestor) IngestMailbox(ctx context.Context) (emaildomain.IngestReport, error) {
	c.runs.Add(1)
	return emaildomain.IngestReport{Inserted: 1, Total: 1}, c.err
}

func TestMailboxPoller_RunsImmediatelyAndOnTick(t *testing.T) {
	ing := &countingIngestor{}
	p := NewMailboxPoller(ing, 10*time.Millisecond, time.Second)
	p.Start()

	assert.Eventually(t, func() bool { return ing.runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	p.Stop()

	after := ing.runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, ing.runs.Load())
}

func TestMailboxPoller_ErrorsDoNotStopLoop(t *testing.T) {
	ing := &countingIngestor{err: errors.New("imap down")}
	p := NewMailboxPoller(ing, 10*time.Millisecond, time.Second)
	p.Start()
	defer p.Stop()

	assert.Eventually(t, func() bool { return ing.runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestMailboxPoller_Disabled(t *testing.T) {
	ing := &countingIngestor{}
	p := NewMailboxPoller(ing, 0, 0)
	p.Start()
	p.Stop()
	p.Stop()

	assert.Equal(t, int32(0), ing.runs.Load())
}

func TestMailboxPoller_StopWithoutStart(t *testing.T) {
	ing := &countingIngestor{}
	p := NewMailboxPoller(ing, 10*time.Millisecond, time.Second)

	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked on a poller that was never started")
	}

	p.Start()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), ing.runs.Load())
}
