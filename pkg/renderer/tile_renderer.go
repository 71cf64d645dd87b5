package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID      int             // Unique tile identifier
	Bounds  image.Rectangle // Pixel bounds in buffer coordinates (row 0 at the bottom)
	Sampler core.Sampler    // Tile-specific sampler for deterministic results
}

// NewTile creates a tile whose sampler is derived from the render seed and tile ID
func NewTile(id int, bounds image.Rectangle, seed int64, totalTiles int) *Tile {
	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewSeededSampler(tileSeed(seed, id, totalTiles)),
	}
}

// tileSeed gives every (seed, tile) pair its own stream
func tileSeed(seed int64, id, totalTiles int) int64 {
	return seed*int64(totalTiles) + int64(id) + 42 // +42 to avoid seed 0
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	// Ceiling division
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize
	totalTiles := tilesX * tilesY

	tiles := make([]*Tile, 0, totalTiles)
	tileID := 0
	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed, totalTiles))
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders individual tiles using an integrator.
// It holds no mutable state and is shared by all workers.
type TileRenderer struct {
	world      geometry.Shape
	camera     *geometry.Camera
	integrator integrator.Integrator
	width      int
	height     int
	samples    int
}

// NewTileRenderer creates a new tile renderer for an image of the given size
func NewTileRenderer(world geometry.Shape, camera *geometry.Camera, integratorInst integrator.Integrator, width, height, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		width:      width,
		height:     height,
		samples:    samplesPerPixel,
	}
}

// RenderTileBounds renders pixels within bounds into buffer
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, buffer *PixelBuffer, sampler core.Sampler) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		Tiles:       1,
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := tr.samplePixel(i, j, sampler)
			buffer.Set(i, j, ps.GetColor())
			stats.TotalSamples += ps.SampleCount
		}
	}

	stats.finalize()
	return stats
}

// samplePixel averages jittered samples across the pixel footprint
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler) PixelStats {
	var ps PixelStats
	for s := 0; s < tr.samples; s++ {
		jitter := sampler.Get2D()
		u := (float64(i) + jitter.X) / float64(tr.width)
		v := (float64(j) + jitter.Y) / float64(tr.height)

		ray := tr.camera.GetRay(u, v)
		ps.AddSample(tr.integrator.RayColor(ray, tr.world, sampler))
	}
	return ps
}
