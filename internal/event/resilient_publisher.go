package event

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/thclabs/growroom/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// ResilientPublisher wraps an event Bus to add retry logic and dead-letter
// queuing. Callers get nil back as soon as the event is accepted; retries
// happen in the background so game actions never block on a failing
// subscriber.
type ResilientPublisher struct {
	inner  Bus
	config ResilientConfig
	mu     sync.Mutex // Protects file writes
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	if config.MaxRetries <= 0 {
		config.MaxRetries = RetryMaxAttempts
	}
	return &ResilientPublisher{
		inner:  inner,
		config: config,
	}
}

// Publish attempts to publish an event; on failure a background retry loop
// takes over and the error is not surfaced to the caller.
func (p *ResilientPublisher) Publish(ctx context.Context, ev Event) error {
	err := p.inner.Publish(ctx, ev)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", ev.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	// Detached from the request context: the caller may be gone before the
	// retries finish.
	go p.retryLoop(ev)

	return nil
}

func (p *ResilientPublisher) retryLoop(ev Event) {
	ctx := context.Background()
	log := logger.FromContext(ctx)

	for i := 1; i <= p.config.MaxRetries; i++ {
		time.Sleep(p.config.RetryDelay * time.Duration(i))

		err := p.inner.Publish(ctx, ev)
		if err == nil {
			log.Info(LogMsgEventRetrySucceeded, "event_type", ev.Type, "attempt", i)
			return
		}

		log.Warn(LogMsgEventRetryFailed, "event_type", ev.Type, "attempt", i, "error", err)
	}

	p.writeToDeadLetter(ev)
}

// DeadLetterEntry represents an event that failed to publish after all retries
type DeadLetterEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     Event     `json:"event"`
}

func (p *ResilientPublisher) writeToDeadLetter(ev Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	log := logger.FromContext(context.Background())

	f, err := os.OpenFile(p.config.DeadLetterPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		log.Error(LogMsgDeadLetterFailed, "error", err, "path", p.config.DeadLetterPath)
		return
	}
	defer f.Close()

	entry := DeadLetterEntry{
		Timestamp: time.Now(),
		Event:     ev,
	}

	if err := json.NewEncoder(f).Encode(entry); err != nil {
		log.Error(LogMsgDeadLetterFailed, "error", err)
		return
	}
	log.Info(LogMsgEventDeadLettered, "event_type", ev.Type)
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}
