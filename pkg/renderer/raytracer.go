package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   `json:"width"`           // Image width in pixels
	Height          int   `json:"height"`          // Image height in pixels
	SamplesPerPixel int   `json:"samplesPerPixel"` // Number of rays per pixel
	MaxDepth        int   `json:"maxDepth"`        // Maximum ray bounce depth
	NumWorkers      int   `json:"numWorkers"`      // Parallel workers (0 = CPU count)
	TileSize        int   `json:"tileSize"`        // Edge length of a square tile
	Seed            int64 `json:"seed"`            // Base seed for every tile sampler
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		TileSize:        32,
		Seed:            1,
	}
}

// Validate reports values the renderer cannot work with
func (c SamplingConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	}
	if c.TileSize < 0 {
		return fmt.Errorf("tile size must not be negative, got %d", c.TileSize)
	}
	return nil
}

// Raytracer renders a world through a camera into a linear-light PixelBuffer
type Raytracer struct {
	world      geometry.Shape
	camera     *geometry.Camera
	integrator integrator.Integrator
	config     SamplingConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer.
// A nil integrator is replaced by a path tracer honoring config.MaxDepth;
// a nil logger discards progress output.
func NewRaytracer(world geometry.Shape, camera *geometry.Camera, integratorInst integrator.Integrator, config SamplingConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sampling config: %w", err)
	}
	if config.TileSize == 0 {
		config.TileSize = DefaultSamplingConfig().TileSize
	}
	if integratorInst == nil {
		integratorInst = integrator.NewPathTracingIntegrator(integrator.Config{MaxDepth: config.MaxDepth}, nil)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}, nil
}

// Config returns the sampling configuration in use
func (rt *Raytracer) Config() SamplingConfig {
	return rt.config
}

// Render traces every pixel and returns the averaged linear-light buffer.
// Output depends only on the configuration, never on the worker count.
func (rt *Raytracer) Render() (*PixelBuffer, RenderStats) {
	start := time.Now()
	buffer := NewPixelBuffer(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize, rt.config.Seed)

	tileRenderer := NewTileRenderer(rt.world, rt.camera, rt.integrator,
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel)
	workerPool := NewWorkerPool(tileRenderer, rt.config.NumWorkers, len(tiles))

	rt.logger.Printf("Rendering %dx%d at %d samples per pixel (%d tiles, %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, len(tiles), workerPool.GetNumWorkers())

	workerPool.Start()
	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: i, Buffer: buffer})
	}

	var stats RenderStats
	lastReported := 0
	for completed := 1; completed <= len(tiles); completed++ {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)

		// Report at every 10% step
		percent := completed * 100 / len(tiles)
		if percent/10 > lastReported/10 {
			rt.logger.Printf("Progress: %d%% (%d/%d tiles)\n", percent, completed, len(tiles))
			lastReported = percent
		}
	}
	workerPool.Stop()

	stats.finalize()
	stats.Duration = time.Since(start)
	rt.logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)

	return buffer, stats
}
