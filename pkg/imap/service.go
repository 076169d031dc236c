package imap

import (
	"context"
	"fmt"
	"html"
	"io"
	"log"
	"regexp"
	"strings"
	"time"

	emaildomain "mailtriage-backend/internal/email/domain"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// Config holds the mailbox connection settings
type Config struct {
	Addr       string // host:port, TLS is always used
	Username   string
	Password   string
	Mailbox    string
	FetchLimit int
}

// IsConfigured reports whether enough settings are present to connect
func (c Config) IsConfigured() bool {
	return c.Addr != "" && c.Username != "" && c.Password != ""
}

// Service reads the most recent messages of one mailbox as ingest candidates
type Service struct {
	cfg  Config
	dial func(addr string) (*client.Client, error)
}

// NewService creates a new IMAP service
func NewService(cfg Config) *Service {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = 20
	}
	return &Service{
		cfg: cfg,
		dial: func(addr string) (*client.Client, error) {
			return client.DialTLS(addr, nil)
		},
	}
}

// FetchCandidates returns the latest FetchLimit messages without marking them seen
func (s *Service) FetchCandidates(ctx context.Context) ([]emaildomain.Candidate, error) {
	if !s.cfg.IsConfigured() {
		return nil, fmt.Errorf("IMAP not configured")
	}

	c, err := s.dial(s.cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to IMAP server: %w", err)
	}
	defer c.Logout()

	if deadline, ok := ctx.Deadline(); ok {
		c.Timeout = time.Until(deadline)
	}

	if err := c.Login(s.cfg.Username, s.cfg.Password); err != nil {
		return nil, fmt.Errorf("IMAP login failed: %w", err)
	}

	mbox, err := c.Select(s.cfg.Mailbox, true)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", s.cfg.Mailbox, err)
	}
	if mbox.Messages == 0 {
		return []emaildomain.Candidate{}, nil
	}

	from := uint32(1)
	if mbox.Messages > uint32(s.cfg.FetchLimit) {
		from = mbox.Messages - uint32(s.cfg.FetchLimit) + 1
	}
	seqSet := new(imap.SeqSet)
	seqSet.AddRange(from, mbox.Messages)

	section := &imap.BodySectionName{Peek: true}
	messages := make(chan *imap.Message, s.cfg.FetchLimit)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqSet, []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}, messages)
	}()

	candidates := make([]emaildomain.Candidate, 0, s.cfg.FetchLimit)
	for msg := range messages {
		if msg == nil {
			continue
		}
		r := msg.GetBody(section)
		if r == nil {
			log.Printf("[IMAP] Message %d has no body section", msg.SeqNum)
			continue
		}
		candidate, err := ParseMessage(r)
		if err != nil {
			log.Printf("[IMAP] Failed to parse message %d: %v", msg.SeqNum, err)
			continue
		}
		candidates = append(candidates, candidate)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	log.Printf("[IMAP] Fetched %d messages from %s", len(candidates), s.cfg.Mailbox)
	return candidates, nil
}

// ParseMessage turns a raw RFC 5322 message into an ingest candidate.
// The text/plain part is preferred; HTML is reduced to text otherwise.
func ParseMessage(r io.Reader) (emaildomain.Candidate, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return emaildomain.Candidate{}, fmt.Errorf("failed to create mail reader: %w", err)
	}
	defer mr.Close()

	subject, _ := mr.Header.Subject()
	sender := ""
	if addrs, err := mr.Header.AddressList("From"); err == nil && len(addrs) > 0 {
		sender = formatAddress(addrs[0])
	}

	var plainBody, htmlBody string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return emaildomain.Candidate{}, fmt.Errorf("failed to read next part: %w", err)
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := h.ContentType()
		b, err := io.ReadAll(p.Body)
		if err != nil {
			return emaildomain.Candidate{}, fmt.Errorf("failed to read body: %w", err)
		}
		switch {
		case strings.HasPrefix(contentType, "text/plain") && plainBody == "":
			plainBody = string(b)
		case strings.HasPrefix(contentType, "text/html") && htmlBody == "":
			htmlBody = string(b)
		}
	}

	body := strings.TrimSpace(plainBody)
	if body == "" && htmlBody != "" {
		body = stripHTML(htmlBody)
	}

	return emaildomain.Candidate{
		Sender:  sender,
		Subject: strings.TrimSpace(subject),
		Body:    body,
	}, nil
}

func formatAddress(a *mail.Address) string {
	if a.Name == "" {
		return a.Address
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Address)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripHTML(body string) string {
	text := tagPattern.ReplaceAllString(body, " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}
