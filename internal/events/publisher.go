// Package events publishes portal lifecycle events (config reloads, page
// views) over NATS for downstream analytics. Publishing is best effort:
// failures are logged and never surface to requests.
package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docportal/internal/config"
	"git.home.luguber.info/inful/docportal/internal/logfields"
)

// Publisher emits portal events. The zero-value NoopPublisher is used when
// events are disabled.
type Publisher interface {
	ConfigReloaded(configPath string)
	PageView(version, framework, page string)
	Close()
}

// NoopPublisher drops all events.
type NoopPublisher struct{}

func (NoopPublisher) ConfigReloaded(string)           {}
func (NoopPublisher) PageView(string, string, string) {}
func (NoopPublisher) Close()                          {}

// NATSPublisher publishes events to NATS subjects <prefix>.config.reloaded
// and <prefix>.page.view.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATSPublisher connects to NATS using the events configuration.
func NewNATSPublisher(cfg config.EventsConfig, logger *slog.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		return nil, err
	}

	logger.Info("NATS publisher initialized",
		logfields.URL(cfg.NATSURL),
		logfields.Subject(cfg.Subject))

	return &NATSPublisher{conn: conn, subject: cfg.Subject, logger: logger}, nil
}

type event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

func (p *NATSPublisher) publish(suffix, eventType string, payload any) {
	subject := p.subject + "." + suffix
	data, err := json.Marshal(event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		p.logger.Warn("failed to marshal event", logfields.Subject(subject), logfields.Error(err))
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("failed to publish event", logfields.Subject(subject), logfields.Error(err))
	}
}

// ConfigReloaded emits a config reload event.
func (p *NATSPublisher) ConfigReloaded(configPath string) {
	p.publish("config.reloaded", "config.reloaded", map[string]string{"path": configPath})
}

// PageView emits a page view event.
func (p *NATSPublisher) PageView(version, framework, page string) {
	p.publish("page.view", "page.view", map[string]string{
		"version":   version,
		"framework": framework,
		"page":      page,
	})
}

// Close drains and closes the NATS connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("failed to drain NATS connection", logfields.Error(err))
	}
}
