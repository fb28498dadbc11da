package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/models"
	"orderpad-service/internal/orderentry"
)

// Stream and subject layout for order events
const (
	StreamOrders          = "ORDER_EVENTS"
	SubjectOrderWildcard  = "order.>"
	SubjectOrderSubmitted = "order.submitted"
)

// ItemTotal is one per-item unit count in a submitted batch.
type ItemTotal struct {
	Item  string `json:"item"`
	Units int    `json:"units"`
}

// OrderSubmittedEvent is published after a batch is stored.
type OrderSubmittedEvent struct {
	EventID    string      `json:"eventId"`
	EventType  string      `json:"eventType"`
	BatchID    string      `json:"batchId"`
	Customer   string      `json:"customer"`
	Date       string      `json:"date"`
	Market     string      `json:"market"`
	RowCount   int         `json:"rowCount"`
	TotalUnits int         `json:"totalUnits"`
	Items      []ItemTotal `json:"items"`
	Timestamp  time.Time   `json:"timestamp"`
}

// NewOrderSubmittedEvent builds the event payload from a stored batch and
// its per-item summary.
func NewOrderSubmittedEvent(order *models.Order, summary []orderentry.ItemSummary) *OrderSubmittedEvent {
	items := make([]ItemTotal, len(summary))
	for i, s := range summary {
		items[i] = ItemTotal{Item: s.Item, Units: s.Total}
	}
	return &OrderSubmittedEvent{
		EventID:    uuid.New().String(),
		EventType:  SubjectOrderSubmitted,
		BatchID:    order.ID.String(),
		Customer:   order.Customer,
		Date:       order.Date,
		Market:     order.Market,
		RowCount:   order.RowCount,
		TotalUnits: order.TotalUnits,
		Items:      items,
		Timestamp:  time.Now().UTC(),
	}
}

// Publisher publishes order events to NATS JetStream.
type Publisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the order stream exists.
func NewPublisher(natsURL string, logger *logrus.Logger) (*Publisher, error) {
	nc, err := nats.Connect(natsURL,
		nats.Name("orderpad-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     StreamOrders,
		Subjects: []string{SubjectOrderWildcard},
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to ensure order stream (may already exist)")
	}

	return &Publisher{
		nc:     nc,
		js:     js,
		logger: logger.WithField("component", "order-events"),
	}, nil
}

// Close closes the NATS connection
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

// PublishOrderSubmitted publishes an order.submitted event asynchronously
// so a slow broker never delays the submission response.
func (p *Publisher) PublishOrderSubmitted(_ context.Context, event *OrderSubmittedEvent) {
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		data, err := json.Marshal(event)
		if err != nil {
			p.logger.WithError(err).Error("Failed to marshal order event")
			return
		}

		if _, err := p.js.Publish(pubCtx, SubjectOrderSubmitted, data); err != nil {
			p.logger.WithFields(logrus.Fields{
				"eventType": event.EventType,
				"batchId":   event.BatchID,
			}).WithError(err).Error("Failed to publish order event")
			return
		}
		p.logger.WithFields(logrus.Fields{
			"eventType": event.EventType,
			"batchId":   event.BatchID,
		}).Info("Order event published successfully")
	}()
}
