package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/beachwatch/internal/config"
	"github.com/couchcryptid/beachwatch/internal/domain"
	"github.com/couchcryptid/beachwatch/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes site snapshots to a Kafka topic, one message per site.
type Writer struct {
	writer  messageWriter
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, metrics: metrics, logger: logger}
}

// Publish serializes every site in the snapshot and writes them in a single
// WriteMessages call. Messages are keyed by site ID so a site always lands
// on the same partition.
func (w *Writer) Publish(ctx context.Context, snap domain.Snapshot) error {
	if len(snap.Sites) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snap.Sites))
	for i := range snap.Sites {
		msg, err := serializeToMessage(snap, snap.Sites[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		w.metrics.PublishErrors.Inc()
		return fmt.Errorf("publish snapshot %s: %w", snap.ID, err)
	}
	w.metrics.SitesPublished.Add(float64(len(msgs)))
	w.logger.Info("snapshot published", "snapshot_id", snap.ID, "sites", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Site into a Kafka message.
func serializeToMessage(snap domain.Snapshot, site domain.Site) (kafkago.Message, error) {
	data, err := json.Marshal(site)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize site %s: %w", site.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(site.ID),
		Value: data,
		Time:  snap.FetchedAt,
		Headers: []kafkago.Header{
			{Key: "snapshot_id", Value: []byte(snap.ID)},
			{Key: "fetched_at", Value: []byte(snap.FetchedAt.Format(time.RFC3339))},
			{Key: "site_name", Value: []byte(site.Name)},
		},
	}, nil
}
