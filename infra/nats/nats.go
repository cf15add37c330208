// Package nats publishes platform telemetry on NATS subjects.
package nats

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kilianp07/offshore/core/factory"
	coremetrics "github.com/kilianp07/offshore/core/metrics"
	"github.com/kilianp07/offshore/infra/logger"
	"github.com/kilianp07/offshore/infra/mqtt"
)

// Config holds NATS configuration.
type Config struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	// SubjectPrefix leads every subject: <prefix>.state, <prefix>.events.<type>.
	SubjectPrefix  string        `json:"subject_prefix"`
	SampleEvery    int           `json:"sample_every"`
	ReconnectWait  time.Duration `json:"reconnect_wait"`
	MaxReconnects  int           `json:"max_reconnects"`
	ConnectTimeout time.Duration `json:"connect_timeout"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.URL == "" {
		c.URL = nats.DefaultURL
	}
	if c.Name == "" {
		c.Name = "offshore"
	}
	if c.SubjectPrefix == "" {
		c.SubjectPrefix = "offshore"
	}
	if c.SampleEvery == 0 {
		c.SampleEvery = 60
	}
	if c.ReconnectWait == 0 {
		c.ReconnectWait = 2 * time.Second
	}
	if c.MaxReconnects == 0 {
		c.MaxReconnects = 10
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 5 * time.Second
	}
}

// conn is the part of *nats.Conn used by Publisher.
type conn interface {
	Publish(subj string, data []byte) error
	FlushTimeout(timeout time.Duration) error
	Drain() error
}

// Publisher adapts a NATS connection to the telemetry publisher interface.
// Topic separators become subject token separators; NATS has no retained
// messages so the retained flag is ignored.
type Publisher struct {
	nc      conn
	log     logger.Logger
	timeout time.Duration
}

// NewPublisher connects to the server described by cfg.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	log := logger.New("nats")
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Warnf("disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("reconnected to %s", nc.ConnectedUrl())
		}),
	}
	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Publisher{nc: nc, log: log, timeout: cfg.ConnectTimeout}, nil
}

// Subject converts an MQTT style topic into a NATS subject.
func Subject(topic string) string { return strings.ReplaceAll(topic, "/", ".") }

func (p *Publisher) Publish(_ string, topic string, payload []byte, _ bool) error {
	return p.nc.Publish(Subject(topic), payload)
}

// Disconnect flushes pending messages and closes the connection.
func (p *Publisher) Disconnect() {
	if p.timeout > 0 {
		if err := p.nc.FlushTimeout(p.timeout); err != nil {
			p.log.Warnf("flush: %v", err)
		}
	}
	if err := p.nc.Drain(); err != nil {
		p.log.Warnf("drain: %v", err)
	}
}

// NewTelemetrySink connects to NATS and returns a sink publishing sampled
// state, events and the run summary under cfg.SubjectPrefix.
func NewTelemetrySink(cfg Config) (*mqtt.Telemetry, error) {
	cfg.SetDefaults()
	if cfg.SampleEvery < 1 {
		return nil, errors.New("sample_every must be positive")
	}
	pub, err := NewPublisher(cfg)
	if err != nil {
		return nil, err
	}
	return mqtt.NewTelemetry(pub, cfg.SubjectPrefix, cfg.SampleEvery), nil
}

func init() {
	_ = coremetrics.RegisterMetricsSink("nats", func(conf map[string]any) (coremetrics.MetricsSink, error) {
		var c Config
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewTelemetrySink(c)
	})
}
