package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// stream writes framed events to one HTTP response
type stream struct {
	w       http.ResponseWriter
	flusher http.Flusher
	log     *slog.Logger
}

// send writes evt and flushes it; false means the connection is gone
func (s *stream) send(evt Event) bool {
	msg, err := FormatSSEMessage(evt)
	if err != nil {
		// Unencodable payloads are skipped, the stream stays up
		s.log.Error(LogMsgWriteError, "type", evt.Type, "error", err)
		return true
	}
	if _, err := s.w.Write(msg); err != nil {
		s.log.Warn(LogMsgWriteError, "error", err)
		return false
	}
	s.flusher.Flush()
	return true
}

func parseTypes(r *http.Request) []string {
	raw := r.URL.Query().Get(TypesQueryParam)
	if raw == "" {
		return nil
	}
	var types []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// Handler streams hub events until the client disconnects or the hub stops.
// ?types=a,b narrows the stream to those event types.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		h := w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")

		types := parseTypes(r)
		client := hub.Register(types)
		log := slog.With("client_id", client.ID)
		log.Info(LogMsgClientConnected, "types", types)
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected)
		}()

		s := &stream{w: w, flusher: flusher, log: log}
		hello := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   map[string]any{"client_id": client.ID, "types": types},
		}
		if !s.send(hello) {
			return
		}

		keepalive := time.NewTicker(KeepaliveInterval)
		defer keepalive.Stop()

		for {
			var evt Event
			select {
			case <-r.Context().Done():
				return
			case e, open := <-client.Events:
				if !open {
					return
				}
				evt = e
			case t := <-keepalive.C:
				evt = Event{Type: EventTypeKeepalive, Timestamp: t.Unix()}
			}
			if !s.send(evt) {
				return
			}
		}
	}
}
