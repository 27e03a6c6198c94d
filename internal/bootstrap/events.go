package bootstrap

import (
	"log/slog"

	"github.com/osse101/KnightlyTreasures_Go/internal/event"
	"github.com/osse101/KnightlyTreasures_Go/internal/metrics"
	"github.com/osse101/KnightlyTreasures_Go/internal/sse"
)

// InitializeEventSystem creates the in-process event bus
func InitializeEventSystem() *event.MemoryBus {
	bus := event.NewMemoryBus()
	slog.Info(LogMsgEventSystemInitialized)
	return bus
}

// EventHandlerDeps contains the dependencies for the bus subscribers
type EventHandlerDeps struct {
	Bus event.Bus
	Hub *sse.Hub
}

// RegisterEventHandlers attaches the metrics collector and the SSE forwarder
func RegisterEventHandlers(deps EventHandlerDeps) {
	metrics.NewEventMetricsCollector().Register(deps.Bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(deps.Hub, deps.Bus).Subscribe()
	slog.Info(LogMsgSSESubscriberRegistered)
}
