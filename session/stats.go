package session

// Stats summarizes a finished or in-flight render, supplementing the
// bare progress fraction with the counters a host commonly wants to
// surface in a status bar (tile counts, chosen back end). Tile counts
// are zero for a GPU session.
type Stats struct {
	TileCount     int
	TilesDone     int
	Threads       int
	UsedGPU       bool
	SamplesPerPixel int
}

// Stats reports the session's current counters. Safe to call from any
// thread; it only reads atomics and immutable configuration.
func (s *Session) Stats() Stats {
	stats := Stats{
		Threads:       s.cfg.Threads,
		UsedGPU:       s.usedGPU,
		SamplesPerPixel: s.scene.Camera.SamplesPerPixel,
	}
	if s.cpu != nil {
		stats.TileCount = len(s.cpu.tiles)
		stats.TilesDone = int(s.cpu.completed.Load())
	}
	return stats
}
