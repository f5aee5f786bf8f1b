package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// ProgressUpdate represents a single progressive update sent via SSE
type ProgressUpdate struct {
	PassNumber  int    `json:"passNumber"`
	TotalPasses int    `json:"totalPasses"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender streams progressive passes as Server-Sent Events. Rendering
// stops when the client disconnects.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}

	consoleChan, logger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()
	defer func() {
		close(consoleChan)
		<-consoleDone
	}()

	progressive := renderer.ProgressiveConfig{
		InitialSamples:     1,
		MaxSamplesPerPixel: req.MaxSamples,
		MaxPasses:          req.MaxPasses,
	}
	raytracer, err := renderer.NewProgressiveRaytracer(sceneObj, nil, req.Width, req.Height, req.Config, progressive, logger)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	startTime := time.Now()
	passChan, errChan := raytracer.RenderProgressive(ctx)
	for result := range passChan {
		s.handlePassComplete(ctx, sseEventChan, result, req, startTime)
	}

	if err := <-errChan; err != nil {
		if ctx.Err() != nil {
			log.Printf("[%s] render of %s cancelled: client disconnected", logger.RenderID(), req.Scene)
			return
		}
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Rendering failed: %v", err))
		return
	}
	if dropped := logger.Dropped(); dropped > 0 {
		log.Printf("[%s] %d console lines dropped", logger.RenderID(), dropped)
	}
	s.sendEvent(ctx, sseEventChan, "complete", "Rendering completed")
}

func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for event := range sseEventChan {
		// Client gone: keep draining so senders never block
		if ctx.Err() != nil {
			continue
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards render log lines as console events
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}
		s.sendEvent(ctx, sseEventChan, "console", string(data))
	}
}

// handlePassComplete encodes a finished pass and queues it for the client
func (s *Server) handlePassComplete(ctx context.Context, sseEventChan chan SSEEvent, result renderer.PassResult, req *RenderRequest, startTime time.Time) {
	imageData, err := s.frameToBase64PNG(result.Frame)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	update := ProgressUpdate{
		PassNumber:  result.PassNumber,
		TotalPasses: req.MaxPasses,
		ImageData:   imageData,
		Stats:       newStats(result.Stats),
		IsComplete:  result.IsLast,
		ElapsedMs:   time.Since(startTime).Milliseconds(),
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling progress update: %v", err)
		return
	}
	s.sendEvent(ctx, sseEventChan, "progress", string(data))
}

// sendEvent queues an event unless the client has gone away
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}
