package session

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/ThadeuFerreira/rt-core/bvh"
	"github.com/ThadeuFerreira/rt-core/internal/glctx"
	rmath "github.com/ThadeuFerreira/rt-core/math"
	"github.com/ThadeuFerreira/rt-core/scene"
)

// gpuPrimitive mirrors the Primitive struct in gpuComputeSource: three
// vec4s, with the spec's unused padding slots in the third vec4
// repurposed to carry PrimitiveKind (the §6.3 byte layout has no field
// distinguishing sphere from cube once cubes exist).
type gpuPrimitive struct {
	CenterX, CenterY, CenterZ, RadiusOrHalf     float32
	AlbedoX, AlbedoY, AlbedoZ, FuzzOrIOR        float32
	MaterialKind, PrimitiveKind, pad0, pad1     float32
}

// gpuNode mirrors the BVHNode struct in gpuComputeSource.
type gpuNode struct {
	MinX, MinY, MinZ, SecondChildOffset   float32
	MaxX, MaxY, MaxZ, PrimitiveCount      float32
	PrimitiveOffset, SplitAxis, pad0, pad1 float32
}

// gpuCamera mirrors the std140 Camera uniform block in
// gpuComputeSource; Width/Height/MaxDepth/SampleIndex are int32 to match
// the shader's ivec4 exactly, avoiding a float/int reinterpretation bug.
type gpuCamera struct {
	LookFromX, LookFromY, LookFromZ, pad0         float32
	Pixel00X, Pixel00Y, Pixel00Z, pad1            float32
	DeltaUX, DeltaUY, DeltaUZ, pad2                float32
	DeltaVX, DeltaVY, DeltaVZ, pad3                float32
	DiskUX, DiskUY, DiskUZ, pad4                   float32
	DiskVX, DiskVY, DiskVZ, pad5                   float32
	Width, Height, MaxDepth, SampleIndex           int32
	DefocusAngleDegrees, NodeCount, PrimCount, pad6 float32
}

// gpuBackend dispatches one compute-shader invocation per frame, each
// adding exactly one sample per pixel into an SSBO accumulator. Only the
// single host thread that created it ever touches its GL objects, the
// concurrency contract the spec requires of the GPU path.
type gpuBackend struct {
	ctx     *glctx.Context
	program uint32

	primitiveBuffer uint32
	nodeBuffer      uint32
	accumBuffer     uint32
	cameraUBO       uint32

	camera        *scene.Camera
	nodeCount     int
	primCount     int
	pixelCount    int
	currentSample int
	closed        bool
}

// newGPUBackend attempts to bring up an offscreen GL context and compile
// the compute kernel. Any failure here is the recoverable
// back-end-unavailability case the design calls out; the caller falls
// back to the CPU backend.
func newGPUBackend(s *scene.Scene) (*gpuBackend, error) {
	ctx, err := glctx.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGPUUnavailable, err)
	}

	program, err := compileComputeProgram(gpuComputeSource)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("%w: compute shader: %v", ErrGPUUnavailable, err)
	}

	tree := bvh.BuildTree(s.Primitives)

	b := &gpuBackend{
		ctx:        ctx,
		program:    program,
		camera:     s.Camera,
		nodeCount:  len(tree.Nodes),
		primCount:  len(tree.Primitives),
		pixelCount: s.Camera.ImageWidth * s.Camera.ImageHeight,
	}

	b.primitiveBuffer = makeStorageBuffer(0, packPrimitives(tree.Primitives))
	b.nodeBuffer = makeStorageBuffer(1, packNodes(tree.Nodes))
	b.accumBuffer = makeStorageBuffer(2, make([]float32, b.pixelCount*4))
	b.cameraUBO = makeCameraUniform(3, b.camera, b.nodeCount, b.primCount, 0)

	return b, nil
}

// advance issues one compute dispatch, adding a single sample per pixel
// to the accumulator, and bumps the host-visible sample counter.
func (b *gpuBackend) advance() {
	if b.closed || b.currentSample >= b.camera.SamplesPerPixel {
		return
	}

	cam := newGPUCamera(b.camera, b.nodeCount, b.primCount, b.currentSample)
	gl.BindBuffer(gl.UNIFORM_BUFFER, b.cameraUBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, int(unsafe.Sizeof(cam)), unsafe.Pointer(&cam))

	gl.UseProgram(b.program)
	groupsX := (b.camera.ImageWidth + 7) / 8
	groupsY := (b.camera.ImageHeight + 7) / 8
	gl.DispatchCompute(uint32(groupsX), uint32(groupsY), 1)
	gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT)

	b.currentSample++
}

// done reports whether every requested sample has been dispatched.
func (b *gpuBackend) done() bool {
	return b.currentSample >= b.camera.SamplesPerPixel
}

// progress returns the fraction of samples dispatched so far.
func (b *gpuBackend) progress() float32 {
	if b.camera.SamplesPerPixel == 0 {
		return 1
	}
	return float32(b.currentSample) / float32(b.camera.SamplesPerPixel)
}

// readback downloads the accumulation buffer, divides by the current
// sample count, and applies the same gamma/clamp/quantize pipeline the
// CPU back end uses, for cross-backend parity. Safe to call at any time,
// including before any dispatch (sample count 0 reads back black).
func (b *gpuBackend) readback(out []byte) {
	raw := make([]float32, b.pixelCount*4)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.accumBuffer)
	if len(raw) > 0 {
		gl.GetBufferSubData(gl.SHADER_STORAGE_BUFFER, 0, len(raw)*4, unsafe.Pointer(&raw[0]))
	}

	pb := &PixelBuffer{Width: b.camera.ImageWidth, Height: b.camera.ImageHeight, Sums: make([]rmath.Vec3, b.pixelCount)}
	for i := range pb.Sums {
		pb.Sums[i] = rmath.Vec3{X: raw[i*4], Y: raw[i*4+1], Z: raw[i*4+2]}
	}

	divisor := float32(0)
	if b.currentSample > 0 {
		divisor = 1.0 / float32(b.currentSample)
	}
	pb.Readback(out, divisor)
}

// close frees GL resources in reverse order of acquisition. Idempotent.
func (b *gpuBackend) close() {
	if b.closed {
		return
	}
	gl.DeleteBuffers(1, &b.cameraUBO)
	gl.DeleteBuffers(1, &b.accumBuffer)
	gl.DeleteBuffers(1, &b.nodeBuffer)
	gl.DeleteBuffers(1, &b.primitiveBuffer)
	gl.DeleteProgram(b.program)
	b.ctx.Close()
	b.closed = true
}

func compileComputeProgram(src string) (uint32, error) {
	shader := gl.CreateShader(gl.COMPUTE_SHADER)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		logStr := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(logStr))
		return 0, fmt.Errorf("compute shader compile failed: %v", logStr)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, shader)
	gl.LinkProgram(program)

	var linkStatus int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &linkStatus)
	if linkStatus == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		logStr := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(logStr))
		return 0, fmt.Errorf("compute program link failed: %v", logStr)
	}

	gl.DeleteShader(shader)
	return program, nil
}

func makeStorageBuffer(binding uint32, data []float32) uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, buf)
	size := len(data) * 4
	var ptr unsafe.Pointer
	if size > 0 {
		ptr = unsafe.Pointer(&data[0])
	}
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, ptr, gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, binding, buf)
	return buf
}

func makeCameraUniform(binding uint32, c *scene.Camera, nodeCount, primCount, sampleIndex int) uint32 {
	cam := newGPUCamera(c, nodeCount, primCount, sampleIndex)
	var buf uint32
	gl.GenBuffers(1, &buf)
	gl.BindBuffer(gl.UNIFORM_BUFFER, buf)
	gl.BufferData(gl.UNIFORM_BUFFER, int(unsafe.Sizeof(cam)), unsafe.Pointer(&cam), gl.DYNAMIC_DRAW)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, buf)
	return buf
}

// packPrimitives flattens primitives into the gpuPrimitive layout the
// compute shader expects, in BVH leaf order.
func packPrimitives(prims []scene.Primitive) []float32 {
	out := make([]float32, 0, len(prims)*12)
	for _, p := range prims {
		radiusOrHalf := p.Radius
		if p.Kind == scene.CubePrimitive {
			radiusOrHalf = p.HalfSize.X
		}
		fuzzOrIOR := p.Material.Fuzz
		if p.Material.Kind == scene.Dielectric {
			fuzzOrIOR = p.Material.RefractionIndex
		}
		gp := gpuPrimitive{
			CenterX: p.Center.X, CenterY: p.Center.Y, CenterZ: p.Center.Z, RadiusOrHalf: radiusOrHalf,
			AlbedoX: p.Material.Albedo.X, AlbedoY: p.Material.Albedo.Y, AlbedoZ: p.Material.Albedo.Z, FuzzOrIOR: fuzzOrIOR,
			MaterialKind: float32(p.Material.Kind), PrimitiveKind: float32(p.Kind),
		}
		out = append(out, structToFloats(gp)...)
	}
	return out
}

// packNodes flattens the BVH's flat-node array into the gpuNode layout.
func packNodes(nodes []bvh.FlatNode) []float32 {
	out := make([]float32, 0, len(nodes)*12)
	for _, n := range nodes {
		gn := gpuNode{
			MinX: n.Min.X, MinY: n.Min.Y, MinZ: n.Min.Z, SecondChildOffset: float32(n.SecondChildOffset),
			MaxX: n.Max.X, MaxY: n.Max.Y, MaxZ: n.Max.Z, PrimitiveCount: float32(n.PrimitiveCount),
			PrimitiveOffset: float32(n.PrimitiveOffset), SplitAxis: float32(n.SplitAxis),
		}
		out = append(out, structToFloats(gn)...)
	}
	return out
}

func newGPUCamera(c *scene.Camera, nodeCount, primCount, sampleIndex int) gpuCamera {
	pixel00, du, dv, diskU, diskV := c.ViewportState()
	return gpuCamera{
		LookFromX: c.LookFrom.X, LookFromY: c.LookFrom.Y, LookFromZ: c.LookFrom.Z,
		Pixel00X: pixel00.X, Pixel00Y: pixel00.Y, Pixel00Z: pixel00.Z,
		DeltaUX: du.X, DeltaUY: du.Y, DeltaUZ: du.Z,
		DeltaVX: dv.X, DeltaVY: dv.Y, DeltaVZ: dv.Z,
		DiskUX: diskU.X, DiskUY: diskU.Y, DiskUZ: diskU.Z,
		DiskVX: diskV.X, DiskVY: diskV.Y, DiskVZ: diskV.Z,
		Width: int32(c.ImageWidth), Height: int32(c.ImageHeight), MaxDepth: int32(c.MaxDepth), SampleIndex: int32(sampleIndex),
		DefocusAngleDegrees: c.DefocusAngleDegrees, NodeCount: float32(nodeCount), PrimCount: float32(primCount),
	}
}

// structToFloats reinterprets a plain-old-data struct of float32/int32
// fields as a []float32 of the same byte length, the same
// unsafe-pointer reinterpretation the teacher's texture upload path uses
// to hand raw pixel bytes to OpenGL without a manual field-by-field copy.
func structToFloats[T any](v T) []float32 {
	n := int(unsafe.Sizeof(v)) / 4
	ptr := (*[1 << 16]float32)(unsafe.Pointer(&v))
	out := make([]float32, n)
	copy(out, ptr[:n])
	return out
}
