package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DoneMarker 流结束标记，写在最后一个 data 行
const DoneMarker = "[DONE]"

type SSEWriter struct {
	w      http.ResponseWriter
	nextID int
}

func NewSSEWriter(w http.ResponseWriter) *SSEWriter {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	return &SSEWriter{w: w}
}

// Write 写出一个事件；event 为空时只写 data。每个事件带递增 id
func (s *SSEWriter) Write(event, data string) error {
	s.nextID++
	if _, err := fmt.Fprintf(s.w, "id: %d\n", s.nextID); err != nil {
		return err
	}
	if event != "" {
		if _, err := fmt.Fprintf(s.w, "event: %s\n", event); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}

	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}

	return nil
}

func (s *SSEWriter) WriteJSON(event string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	return s.Write(event, string(data))
}

func (s *SSEWriter) Close() error {
	return s.Write("", DoneMarker)
}
