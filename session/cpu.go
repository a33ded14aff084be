package session

import (
	"sync"
	"sync/atomic"

	"github.com/ThadeuFerreira/rt-core/bvh"
	rmath "github.com/ThadeuFerreira/rt-core/math"
	"github.com/ThadeuFerreira/rt-core/rng"
	"github.com/ThadeuFerreira/rt-core/scene"
)

// cpuBackend drives the tile-based worker pool. next_tile and completed
// are the two atomics the tile queue contract names; workers never
// coordinate any other way, and the pixel buffer needs no locking
// because tile ownership is exclusive by construction (a tile index is
// handed to exactly one worker).
type cpuBackend struct {
	camera *scene.Camera
	tree   bvh.Tree
	tiles  []Tile
	pixels *PixelBuffer

	nextTile  atomic.Int64
	completed atomic.Int64

	wg sync.WaitGroup
}

func newCPUBackend(s *scene.Scene, cfg Config) *cpuBackend {
	tileSize := cfg.TileSize
	if tileSize <= 0 {
		tileSize = 32
	}

	b := &cpuBackend{
		camera: s.Camera,
		tree:   bvh.BuildTree(s.Primitives),
		tiles:  buildTiles(s.Camera.ImageWidth, s.Camera.ImageHeight, tileSize),
		pixels: NewPixelBuffer(s.Camera.ImageWidth, s.Camera.ImageHeight, s.Camera.SamplesPerPixel),
	}
	return b
}

// start spawns cfg.Threads workers, each seeded independently via
// rng.ForWorker, and returns immediately without waiting for them.
func (b *cpuBackend) start(cfg Config) {
	tileCount := int64(len(b.tiles))
	for id := 0; id < cfg.Threads; id++ {
		b.wg.Add(1)
		source := rng.ForWorker(cfg.SeedBase, id)
		go func(source *rng.Source) {
			defer b.wg.Done()
			for {
				i := b.nextTile.Add(1) - 1
				if i >= tileCount {
					return
				}
				b.renderTile(b.tiles[i], source)
				b.completed.Add(1)
			}
		}(source)
	}
}

// renderTile fills every pixel in tile with the mean of
// SamplesPerPixel path-traced samples, writing each pixel exactly once.
// Worker threads never panic on a numeric degeneracy — NaN is caught and
// clamped at readback time instead, per the failure contract.
func (b *cpuBackend) renderTile(t Tile, source *rng.Source) {
	spp := b.camera.SamplesPerPixel
	for y := t.Y0; y < t.Y1; y++ {
		for x := t.X0; x < t.X1; x++ {
			sum := rmath.Vec3Zero
			for sample := 0; sample < spp; sample++ {
				r := b.camera.GenerateRay(x, y, source)
				sum = sum.Add(rayColor(r, b.tree, b.camera.MaxDepth, source))
			}
			b.pixels.Set(x, y, sum.Mul(b.pixels.PixelSamplesScale))
		}
	}
}

// progress returns completed/tile_count via a relaxed atomic load.
func (b *cpuBackend) progress() float32 {
	if len(b.tiles) == 0 {
		return 1
	}
	return float32(b.completed.Load()) / float32(len(b.tiles))
}

// finish blocks until every worker has exited.
func (b *cpuBackend) finish() {
	b.wg.Wait()
}
