package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/loaders"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Server handles web requests for the path tracer
type Server struct {
	port      int
	scenesDir string // directory scanned for .json/.gltf/.glb scenes
	mux       *http.ServeMux
}

// NewServer creates a new web server
func NewServer(port int, scenesDir string) *Server {
	s := &Server{port: port, scenesDir: scenesDir, mux: http.NewServeMux()}

	// Serve static files
	s.mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/image", s.handleImage)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	return s
}

// Handler returns the server's request router
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string // scene ID, see scene.Resolve
	Width      int
	Height     int
	MaxSamples int // samples per pixel after the last pass
	MaxPasses  int
	Config     renderer.Config
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	AverageSamples   float64 `json:"averageSamples"`
	MinSamples       int     `json:"minSamples"`
	MaxSamplesUsed   int     `json:"maxSamplesUsed"`
	AverageLuminance float64 `json:"averageLuminance"`
}

func newStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     int64(stats.TotalSamples),
		AverageSamples:   stats.AverageSamples,
		MinSamples:       stats.MinSamples,
		MaxSamplesUsed:   stats.MaxSamplesUsed,
		AverageLuminance: stats.AverageLuminance,
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the available scenes with the default render settings
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	groups, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	defaults := renderer.DefaultConfig()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"groups": groups,
		"defaults": map[string]interface{}{
			"mode":            defaults.Mode.String(),
			"sampler":         defaults.Sampling.String(),
			"samplesPerPixel": defaults.SamplesPerPixel,
			"maxDepth":        defaults.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":      map[string]int{"min": 1, "max": 2000},
			"height":     map[string]int{"min": 1, "max": 2000},
			"maxSamples": map[string]int{"min": 1, "max": 10000},
			"maxPasses":  map[string]int{"min": 1, "max": 100},
			"maxDepth":   map[string]int{"min": 1, "max": 50},
		},
	})
}

// handleImage renders a whole image in one pass and returns it as PNG
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
		return
	}
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rt, err := renderer.NewRaytracer(sceneObj, nil, req.Width, req.Height, req.Config)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	frame, _, err := rt.RenderPass(r.Context())
	if err != nil {
		log.Printf("Render of %s aborted: %v", req.Scene, err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := loaders.WritePNG(&buf, frame); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "cornell", Config: renderer.DefaultConfig()}
	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 320, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 240, 1, 2000); err != nil {
		return nil, err
	}
	if req.MaxSamples, err = parseIntParam(query, "spp", req.Config.SamplesPerPixel, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(query, "passes", 6, 1, 100); err != nil {
		return nil, err
	}
	if req.Config.MaxDepth, err = parseIntParam(query, "depth", req.Config.MaxDepth, 1, 50); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", int(req.Config.Seed), 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Config.Seed = int64(seed)

	if mode := query.Get("mode"); mode != "" {
		if req.Config.Mode, err = renderer.ParseMode(mode); err != nil {
			return nil, err
		}
	}
	if sampler := query.Get("sampler"); sampler != "" {
		if req.Config.Sampling, err = core.ParseSamplingMethod(sampler); err != nil {
			return nil, err
		}
	}
	req.Config.SamplesPerPixel = req.MaxSamples

	// Performance warning
	if req.Width*req.Height > 800*600 && req.MaxSamples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene resolves a built-in scene or a file from the scenes
// directory. Raw paths are not accepted from clients.
func (s *Server) createScene(sceneID string) (*scene.Scene, error) {
	return scene.Resolve(s.scenesDir, sceneID)
}

// frameToBase64PNG converts a frame to base64-encoded PNG
func (s *Server) frameToBase64PNG(frame *renderer.Frame) (string, error) {
	var buf bytes.Buffer
	if err := loaders.WritePNG(&buf, frame); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
