package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Limits for render request parameters
const (
	minImageSize = 1
	maxImageSize = 2000
	maxSamples   = 10000
	maxDepth     = 1000
)

// Server handles web requests for the path tracer
type Server struct {
	port      int
	scenesDir string
	renderIDs atomic.Int64
}

// NewServer creates a new web server; scenesDir holds JSON scene files
func NewServer(port int, scenesDir string) *Server {
	return &Server{port: port, scenesDir: scenesDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Built-in scene name or scene file name
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height, 0 derives it from the camera aspect ratio
	Samples int    `json:"samples"` // Samples per pixel
	Depth   int    `json:"depth"`   // Maximum bounce depth
	Seed    int64  `json:"seed"`    // Random seed
	Format  string `json:"format"`  // "png" or "json"
}

// RenderResponse is returned for format=json renders
type RenderResponse struct {
	RenderID  string           `json:"renderId"`
	Scene     string           `json:"scene"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Tiles          int     `json:"tiles"`
	ElapsedMs      int64   `json:"elapsedMs"`
}

// Handler returns the router serving every API endpoint
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in scenes followed by scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes := scene.ListScenes()
	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, info := range files {
		info.ID = sceneFileID(info.FilePath)
		scenes = append(scenes, info)
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleRender renders a scene and returns it as a PNG or a JSON envelope
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sceneObj.SetImageSize(req.Width, req.Height)
	sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	sceneObj.SamplingConfig.MaxDepth = req.Depth
	sceneObj.SamplingConfig.Seed = req.Seed

	if sceneObj.SamplingConfig.Width*sceneObj.SamplingConfig.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	renderID := fmt.Sprintf("render-%d", s.renderIDs.Add(1))
	consoleChan := make(chan ConsoleMessage, 64)
	raytracer, err := sceneObj.NewRaytracer(NewWebLogger(renderID, consoleChan))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid scene: %v", err))
		return
	}

	buffer, stats := raytracer.Render()
	img := buffer.ToRGBA()

	if req.Format == "png" {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("X-Render-Id", renderID)
		if err := png.Encode(w, img); err != nil {
			log.Printf("[%s] failed to write image: %v", renderID, err)
		}
		return
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		RenderID:  renderID,
		Scene:     sceneObj.Name,
		Width:     buffer.Width,
		Height:    buffer.Height,
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:    stats.TotalPixels,
			TotalSamples:   int64(stats.TotalSamples),
			AverageSamples: stats.AverageSamples,
			Tiles:          stats.Tiles,
			ElapsedMs:      stats.Duration.Milliseconds(),
		},
		Console: drainConsole(consoleChan),
	})
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "demo"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	config := sceneObj.SamplingConfig
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":  sceneName,
		"shapes": sceneObj.GetPrimitiveCount(),
		"useBVH": sceneObj.UseBVH,
		"defaults": map[string]interface{}{
			"width":                     config.Width,
			"height":                    config.Height,
			"samplesPerPixel":           config.SamplesPerPixel,
			"maxDepth":                  config.MaxDepth,
			"seed":                      config.Seed,
			"russianRouletteMinBounces": sceneObj.RussianRouletteMinBounces,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":  map[string]int{"min": minImageSize, "max": maxImageSize},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"depth":   map[string]int{"min": 0, "max": maxDepth},
		},
	})
}

// parseRenderRequest parses and validates render query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene"), Format: values.Get("format")}
	if req.Scene == "" {
		req.Scene = "demo"
	}
	if req.Format == "" {
		req.Format = "png"
	}
	if req.Format != "png" && req.Format != "json" {
		return nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 400, minImageSize, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 0, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 10, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 50, 0, maxDepth); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 1, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

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

// createScene resolves a built-in scene or a file in the scenes directory
func (s *Server) createScene(name string) (*scene.Scene, error) {
	if sceneObj, err := scene.NewSceneByName(name); err == nil {
		return sceneObj, nil
	}

	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if sceneFileID(info.FilePath) == strings.ToLower(name) {
			return loaders.LoadScene(info.FilePath)
		}
	}
	return nil, fmt.Errorf("unknown scene: %s", name)
}

// sceneFileID is the name a scene file is requested by: its base name without extension
func sceneFileID(path string) string {
	return strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
