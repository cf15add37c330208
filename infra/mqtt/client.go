package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	coremon "github.com/kilianp07/offshore/core/monitoring"
	coremqtt "github.com/kilianp07/offshore/core/mqtt"
	"github.com/kilianp07/offshore/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker     string `json:"broker"`
	ClientID   string `json:"client_id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	UseTLS     bool   `json:"use_tls"`
	ClientCert string `json:"client_cert"`
	ClientKey  string `json:"client_key"`
	CABundle   string `json:"ca_bundle"`
	AuthMethod string `json:"auth_method"`
	// TopicPrefix is prepended to every topic, e.g. "offshore/state".
	TopicPrefix string `json:"topic_prefix"`
	// QoS per topic class: state, events, summary.
	QoS map[string]byte `json:"qos"`
	// SampleEvery publishes the state of one tick out of N.
	SampleEvery int         `json:"sample_every"`
	MaxRetries  int         `json:"max_retries"`
	BackoffMS   int         `json:"backoff_ms"`
	TLSConfig   *tls.Config `json:"-"`
}

// SetDefaults fills the client id, prefix and retry settings.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "offshore-" + uuid.NewString()
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "offshore"
	}
	if c.SampleEvery == 0 {
		c.SampleEvery = 60
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.BackoffMS == 0 {
		c.BackoffMS = 100
	}
}

// Validate checks the broker address and QoS levels.
func (c Config) Validate() error {
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required")
	}
	for class, q := range c.QoS {
		if q > 2 {
			return fmt.Errorf("invalid qos %d for %s", q, class)
		}
	}
	if c.SampleEvery < 1 {
		return fmt.Errorf("sample_every must be positive")
	}
	return nil
}

// StatusTopic carries the retained online/offline marker.
func (c Config) StatusTopic() string { return c.TopicPrefix + "/status" }

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// PahoClient implements coremqtt.Publisher using Eclipse Paho.
type PahoClient struct {
	cli         pahoClient
	qos         map[string]byte
	logger      logger.Logger
	statusTopic string
	maxRetries  int
	backoff     time.Duration
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// NewPahoClient connects to the MQTT broker. A retained "online" marker is
// published on the status topic at every connection; the broker replaces it
// with "offline" when the connection is lost.
func NewPahoClient(cfg Config) (*PahoClient, error) {
	cfg.SetDefaults()
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	logger := logger.New("mqtt_client")
	pc := &PahoClient{
		logger:      logger,
		qos:         cfg.QoS,
		statusTopic: cfg.StatusTopic(),
		maxRetries:  cfg.MaxRetries,
		backoff:     time.Duration(cfg.BackoffMS) * time.Millisecond,
	}

	opts.OnConnect = func(c paho.Client) {
		logger.Infof("MQTT connected")
		if token := c.Publish(pc.statusTopic, 1, true, "online"); token.Wait() && token.Error() != nil {
			logger.Errorf("status publish error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		logger.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		logger.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	pc.cli = c
	return pc, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.AuthMethod == "username_password" || cfg.AuthMethod == "both" || cfg.AuthMethod == "" {
		if cfg.Username != "" {
			opts.SetUsername(cfg.Username)
		}
		if cfg.Password != "" {
			opts.SetPassword(cfg.Password)
		}
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	if cfg.TopicPrefix != "" {
		opts.SetWill(cfg.StatusTopic(), "offline", 1, true)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	cfg := &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}
	return cfg, nil
}

// Publish sends payload with exponential backoff between attempts. The final
// failure is reported to the monitor.
func (p *PahoClient) Publish(class, topic string, payload []byte, retained bool) error {
	qos := p.qos[class]
	if p.maxRetries < 0 {
		p.maxRetries = 0
	}
	if p.backoff <= 0 {
		p.backoff = 100 * time.Millisecond
	}
	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(topic, qos, retained, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.logger.Debugf("published %d bytes to %s", len(payload), topic)
			return nil
		}
		p.logger.Errorf("publish attempt %d to %s failed: %v", attempt+1, topic, publishErr)
		if attempt < p.maxRetries {
			time.Sleep(p.backoff * time.Duration(1<<attempt))
		}
	}
	err := fmt.Errorf("%w: %s: %v", coremqtt.ErrPublishFailed, topic, publishErr)
	coremon.CaptureException(err, map[string]string{"module": "mqtt", "topic": topic})
	return err
}

// Disconnect marks the platform offline and closes the MQTT connection.
func (p *PahoClient) Disconnect() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Publish(p.statusTopic, 1, true, "offline").Wait()
		p.cli.Disconnect(250)
	}
}
