package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"job-board/internal/config"
	"job-board/internal/domain/job"
)

const jobEventsSubjectPrefix = "jobs.events."

func Subject(t job.EventType) string {
	return jobEventsSubjectPrefix + string(t)
}

type NATSPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

var _ job.EventPublisher = (*NATSPublisher)(nil)

func NewNATSPublisher(cfg config.NATSConfig, appName string, logger *zap.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []nats.Option{
		nats.Name(appName),
		nats.Timeout(cfg.ConnTimeout),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	return &NATSPublisher{conn: conn, logger: logger.Named("nats")}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, evt job.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal job event: %w", err)
	}

	subject := Subject(evt.Type)
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	p.logger.Debug("published job event", zap.String("subject", subject), zap.String("jobId", evt.JobID))
	return nil
}

func (p *NATSPublisher) Close() {
	if p != nil && p.conn != nil {
		_ = p.conn.Drain()
	}
}
