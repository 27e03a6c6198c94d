package sse

import "time"

const (
	// BroadcastBufferSize bounds events waiting for fan-out
	BroadcastBufferSize = 100

	// ClientEventBuffer bounds events waiting on one slow client
	ClientEventBuffer = 50

	KeepaliveInterval = 30 * time.Second
)

// Stream-level event types; shop events use their bus type names
const (
	EventTypeConnected = "connected"
	EventTypeKeepalive = "keepalive"
)

// TypesQueryParam filters the stream, e.g. ?types=item.bought,selection.changed
const TypesQueryParam = "types"

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgSubscriberReady    = "SSE subscriber registered for shop events"

	ErrMsgStreamingUnsupported = "SSE not supported"
)
