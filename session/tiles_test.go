package session

import "testing"

func TestBuildTilesCoversWholeImageWithoutOverlap(t *testing.T) {
	tiles := buildTiles(70, 50, 32)
	covered := make([][]bool, 50)
	for y := range covered {
		covered[y] = make([]bool, 70)
	}

	for _, tile := range tiles {
		for y := tile.Y0; y < tile.Y1; y++ {
			for x := tile.X0; x < tile.X1; x++ {
				if covered[y][x] {
					t.Fatalf("pixel (%d,%d) covered by more than one tile", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	for y := 0; y < 50; y++ {
		for x := 0; x < 70; x++ {
			if !covered[y][x] {
				t.Fatalf("pixel (%d,%d) not covered by any tile", x, y)
			}
		}
	}
}

func TestBuildTilesClipsEdges(t *testing.T) {
	tiles := buildTiles(40, 40, 32)
	for _, tile := range tiles {
		if tile.X1 > 40 || tile.Y1 > 40 {
			t.Errorf("tile %v exceeds image bounds", tile)
		}
	}
}
