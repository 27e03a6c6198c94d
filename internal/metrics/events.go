package metrics

import (
	"context"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/event"
	"github.com/osse101/KnightlyTreasures_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all shop events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	event.SubscribeAll(bus, e.HandleEvent)
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ItemBought:
		p, err := event.DecodePayload[domain.ItemEventPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type)
			return nil
		}
		ItemsBought.WithLabelValues(p.ItemID).Inc()
		GoldSpent.Add(float64(p.Price))

	case event.ItemSold:
		p, err := event.DecodePayload[domain.ItemEventPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadUnexpected, "type", evt.Type)
			return nil
		}
		ItemsSold.WithLabelValues(p.ItemID).Inc()

	case event.ItemReserved:
		ReservationsCreated.Inc()

	case event.SelectionChanged, event.WeekRollover:
		SelectionRecomputes.Inc()
		if p, err := event.DecodePayload[domain.SelectionEventPayload](evt.Payload); err == nil {
			CurrentWeek.Set(float64(p.Week))
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
