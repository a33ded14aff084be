package session

// Tile is an axis-aligned rectangle of pixels, clipped to the image at
// the right/bottom edges.
type Tile struct {
	X0, Y0, X1, Y1 int // half-open: [X0,X1) x [Y0,Y1)
}

// buildTiles covers a width x height image with tileSize x tileSize
// tiles in row-major order (left to right, top to bottom), clipping the
// last row/column. This ordering gives the "roughly top-to-bottom"
// dispatch order the concurrency model calls for, without constraining
// which tile a worker finishes first.
func buildTiles(width, height, tileSize int) []Tile {
	var tiles []Tile
	for y := 0; y < height; y += tileSize {
		y1 := y + tileSize
		if y1 > height {
			y1 = height
		}
		for x := 0; x < width; x += tileSize {
			x1 := x + tileSize
			if x1 > width {
				x1 = width
			}
			tiles = append(tiles, Tile{X0: x, Y0: y, X1: x1, Y1: y1})
		}
	}
	return tiles
}
