package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	emaildomain "mailtriage-backend/internal/email/domain"
)

// MailboxIngestor is the slice of the email use case the poller needs
type MailboxIngestor interface {
	IngestMailbox(ctx context.Context) (emaildomain.IngestReport, error)
}

// MailboxPoller ingests the configured mailbox on a fixed interval
type MailboxPoller struct {
	ingestor MailboxIngestor
	interval time.Duration
	timeout  time.Duration
	stopChan  chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	done      chan struct{}
}

// NewMailboxPoller creates a new poller. Each run is bounded by timeout.
func NewMailboxPoller(ingestor MailboxIngestor, interval, timeout time.Duration) *MailboxPoller {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &MailboxPoller{
		ingestor: ingestor,
		interval: interval,
		timeout:  timeout,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the polling loop. It is a no-op when interval is not
// positive, on a second call, or after Stop.
func (p *MailboxPoller) Start() {
	p.startOnce.Do(p.run)
}

func (p *MailboxPoller) run() {
	if p.interval <= 0 {
		log.Println("[MailboxPoller] Interval not set, poller disabled")
		close(p.done)
		return
	}

	log.Printf("[MailboxPoller] Starting mailbox poller (interval: %s)", p.interval)

	go func() {
		defer close(p.done)

		// Run immediately on start
		p.poll()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				p.poll()
			case <-p.stopChan:
				log.Println("[MailboxPoller] Poller stopped")
				return
			}
		}
	}()
}

// Stop stops the loop and waits for an in-flight run to finish. It may be
// called without Start.
func (p *MailboxPoller) Stop() {
	p.startOnce.Do(func() { close(p.done) })
	p.stopOnce.Do(func() { close(p.stopChan) })
	<-p.done
}

func (p *MailboxPoller) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	report, err := p.ingestor.IngestMailbox(ctx)
	if err != nil {
		log.Printf("[MailboxPoller] Error ingesting mailbox: %v", err)
		return
	}
	if report.Inserted > 0 {
		log.Printf("[MailboxPoller] Ingested %d new emails (%d already stored)", report.Inserted, report.Skipped)
	}
}
