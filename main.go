package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the command line overrides; zero values keep the scene's settings
type options struct {
	sceneName string
	width     int
	height    int
	samples   int
	depth     int
	workers   int
	tileSize  int
	seed      int64
	useBVH    bool
	output    string
	format    string
}

func main() {
	var opts options
	flag.StringVar(&opts.sceneName, "scene", "demo", "Built-in scene name or path to a JSON scene file")
	flag.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flag.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = derived from the aspect ratio)")
	flag.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&opts.depth, "depth", -1, "Maximum bounce depth (-1 = scene default)")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	flag.IntVar(&opts.tileSize, "tile", 0, "Tile edge length in pixels (0 = scene default)")
	flag.Int64Var(&opts.seed, "seed", 0, "Random seed (0 = scene default)")
	flag.BoolVar(&opts.useBVH, "bvh", false, "Intersect through a BVH instead of a linear scan")
	flag.StringVar(&opts.output, "output", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	flag.StringVar(&opts.format, "format", "png", "Output format when -output is not given: png or ppm")
	list := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}
	if *list {
		printScenes()
		return
	}

	if err := run(opts, time.Now()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printHelp() {
	fmt.Println("Go Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	printScenes()
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png unless -output is set")
}

func printScenes() {
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListSceneFiles("scenes"); err == nil {
		for _, info := range files {
			fmt.Printf("  %s - %s\n", info.FilePath, info.DisplayName)
		}
	}
}

// run renders the selected scene and writes the image
func run(opts options, now time.Time) error {
	s, err := createScene(opts.sceneName)
	if err != nil {
		return err
	}
	applyOptions(s, opts)

	log.Printf("Scene %q: %d shapes, %dx%d, %d samples/pixel, depth %d",
		s.Name, s.GetPrimitiveCount(), s.SamplingConfig.Width, s.SamplingConfig.Height,
		s.SamplingConfig.SamplesPerPixel, s.SamplingConfig.MaxDepth)

	raytracer, err := s.NewRaytracer(log.Default())
	if err != nil {
		return fmt.Errorf("failed to set up renderer: %w", err)
	}

	buffer, stats := raytracer.Render()
	log.Printf("Render completed in %v (%.1f samples/pixel, average luminance %.3f)",
		stats.Duration, stats.AverageSamples, buffer.AverageLuminance())

	filename, err := outputPath(opts, s.Name, now)
	if err != nil {
		return err
	}
	if err := loaders.SaveImage(filename, buffer.ToRGBA()); err != nil {
		return err
	}

	log.Printf("Render saved as %s", filename)
	return nil
}

// createScene resolves a built-in scene name or a JSON scene file
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("no scene given")
	}
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return loaders.LoadScene(name)
	}

	s, err := scene.NewSceneByName(name)
	if err == nil {
		return s, nil
	}

	// Fall back to scenes/<name>.json
	path := filepath.Join("scenes", name+".json")
	if _, statErr := os.Stat(path); statErr == nil {
		return loaders.LoadScene(path)
	}
	return nil, err
}

// applyOptions overrides scene settings with the flags that were set
func applyOptions(s *scene.Scene, opts options) {
	if opts.width > 0 || opts.height > 0 {
		s.SetImageSize(opts.width, opts.height)
	}
	if opts.samples > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.samples
	}
	if opts.depth >= 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	if opts.workers > 0 {
		s.SamplingConfig.NumWorkers = opts.workers
	}
	if opts.tileSize > 0 {
		s.SamplingConfig.TileSize = opts.tileSize
	}
	if opts.seed != 0 {
		s.SamplingConfig.Seed = opts.seed
	}
	if opts.useBVH {
		s.UseBVH = true
	}
}

// outputPath returns -output or output/<scene>/render_<timestamp>.<format>
func outputPath(opts options, sceneName string, now time.Time) (string, error) {
	if opts.output != "" {
		return opts.output, nil
	}

	format := strings.ToLower(opts.format)
	if format != "png" && format != "ppm" {
		return "", fmt.Errorf("unsupported format %q (use png or ppm)", opts.format)
	}

	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.%s", timestamp, format)), nil
}
