package events

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/appforge-ai/assistant-platform/internal/model"
	"github.com/appforge-ai/assistant-platform/pkg/logger"
)

const (
	// StreamName is the JetStream stream holding assistant events.
	StreamName = "ASSISTANT_EVENTS"

	// SubjectPrefix is the prefix for all assistant event subjects.
	SubjectPrefix = "assistant"
)

// NATSConfig holds NATS connection configuration.
type NATSConfig struct {
	URL      string
	CAFile   string
	CertFile string
	KeyFile  string
	Token    string
}

// NATSClient wraps a NATS connection and JetStream context for the event
// feed.
type NATSClient struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	logger *logger.Logger
}

// ConnectNATS establishes a connection to the NATS server and ensures the
// event stream exists.
func ConnectNATS(ctx context.Context, cfg NATSConfig, log *logger.Logger) (*NATSClient, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error("NATS error", zap.Error(err))
		}),
	}

	if cfg.CAFile != "" && cfg.CertFile != "" && cfg.KeyFile != "" {
		tlsConfig, err := createTLSConfig(cfg.CAFile, cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
		opts = append(opts, nats.Secure(tlsConfig))
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	c := &NATSClient{conn: nc, js: js, logger: log}
	if err := c.ensureStream(ctx); err != nil {
		nc.Close()
		return nil, err
	}
	return c, nil
}

func (c *NATSClient) ensureStream(ctx context.Context) error {
	if _, err := c.js.Stream(ctx, StreamName); err == nil {
		return nil
	}

	_, err := c.js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      30 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Description: "Assistant replies, action results and proposals",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// EventSubject returns the subject for a conversation event.
func EventSubject(conversationID string, eventType model.EventType) string {
	return fmt.Sprintf("%s.%s.%s", SubjectPrefix, conversationID, eventType)
}

// IsConnected returns true if connected to NATS.
func (c *NATSClient) IsConnected() bool {
	return c.conn != nil && c.conn.IsConnected()
}

// Close closes the NATS connection.
func (c *NATSClient) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

func createTLSConfig(caFile, certFile, keyFile string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("failed to parse CA certificate")
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client cert: %w", err)
	}

	return &tls.Config{
		RootCAs:      caCertPool,
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
