package session

import (
	stdmath "math"

	rmath "github.com/ThadeuFerreira/rt-core/math"
)

// PixelBuffer is a row-major accumulator of linear-RGB sums plus the
// scale needed to turn an accumulated sum into a mean. The CPU back end
// writes each pixel exactly once (after summing all its samples
// in-register), so PixelSamplesScale is a constant 1/samples_per_pixel.
// The GPU back end keeps its own running sample counter and scales by
// its reciprocal at readback time; neither back end updates SampleCount.
type PixelBuffer struct {
	Width, Height     int
	Sums              []rmath.Vec3
	PixelSamplesScale float32
	SampleCount       int
}

// NewPixelBuffer allocates a zero-initialized accumulator.
func NewPixelBuffer(width, height, samplesPerPixel int) *PixelBuffer {
	return &PixelBuffer{
		Width:             width,
		Height:            height,
		Sums:              make([]rmath.Vec3, width*height),
		PixelSamplesScale: 1.0 / float32(samplesPerPixel),
	}
}

// Set writes the final (already sample-averaged) color for pixel
// (x, y), used by the CPU worker once per pixel.
func (pb *PixelBuffer) Set(x, y int, color rmath.Vec3) {
	pb.Sums[y*pb.Width+x] = color
}

// linearToGamma approximates x^(1/2.2) as sqrt(max(x, 0)), the tone
// curve this renderer standardizes on for both back ends.
func linearToGamma(x float32) float32 {
	if x < 0 {
		x = 0
	}
	return float32(stdmath.Sqrt(float64(x)))
}

// clampToByte clamps a gamma-encoded value to [0, 0.999] and quantizes
// it to a u8, the same rule the GPU readback path must reproduce
// exactly for cross-backend parity.
func clampToByte(x float32) byte {
	if x != x { // NaN guard: never propagate a numeric degeneracy to output.
		x = 0
	}
	if x < 0 {
		x = 0
	}
	if x > 0.999 {
		x = 0.999
	}
	return byte(x * 256)
}

// Readback gamma-encodes the accumulator into a caller-supplied RGBA8
// buffer (row-major, top row first, alpha always 255). It is read-only
// and idempotent: calling it twice without rendering in between produces
// identical bytes. Each sum is multiplied by divisor (1 for the CPU back
// end, whose sums are already means; 1/samples-so-far for the GPU back
// end), which lets both back ends share this routine.
func (pb *PixelBuffer) Readback(out []byte, divisor float32) {
	for i, sum := range pb.Sums {
		color := sum.Mul(divisor)
		out[i*4+0] = clampToByte(linearToGamma(color.X))
		out[i*4+1] = clampToByte(linearToGamma(color.Y))
		out[i*4+2] = clampToByte(linearToGamma(color.Z))
		out[i*4+3] = 255
	}
}

// ReadbackCPU reads back a pixel buffer filled by the CPU back end,
// whose Sums already hold the final per-pixel mean (scale 1).
func (pb *PixelBuffer) ReadbackCPU(out []byte) {
	pb.Readback(out, 1)
}
