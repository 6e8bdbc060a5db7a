// Package renderer rasterizes face lists with OpenGL 4.1 core.
//
// Geometry is always uploaded relative to a nearby origin and offset by
// (origin - eye) in the vertex shader, so world coordinates never lose
// precision in float32.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/trackview/internal/engine/shader"
	"github.com/Faultbox/trackview/internal/frame"
	"github.com/Faultbox/trackview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width           int
	Height          int
	BackfaceCulling bool
	Wireframe       bool
}

// Renderer is a frame.Backend drawing through OpenGL.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program
	stream  *buffer
	batches map[int]*batch

	view, projection math.Mat4
	eye              math.Vec3
	ambient, diffuse float32

	state    frame.PassState
	cull     bool
	additive bool
}

var _ frame.Backend = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:     cfg,
		log:        log,
		batches:    make(map[int]*batch),
		view:       math.Identity(),
		projection: math.Identity(),
		ambient:    0.7,
		diffuse:    0.3,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.DepthFunc(gl.LEQUAL)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.55, 0.7, 0.85, 1.0)

	var err error
	r.program, err = shader.New(faceVertexShader, faceFragmentShader, faceUniforms...)
	if err != nil {
		return nil, fmt.Errorf("failed to create face program: %w", err)
	}
	r.stream = newBuffer(gl.STREAM_DRAW)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("batches", len(r.batches)))
	for g := range r.batches {
		r.ReleaseGroup(g)
	}
	if r.stream != nil {
		r.stream.delete()
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// SetCamera sets the matrices used from the next BeginFrame. view must not
// contain the eye translation.
func (r *Renderer) SetCamera(view, projection math.Mat4) {
	r.view = view
	r.projection = projection
}

// SetLighting derives the world light from the ambient day level.
func (r *Renderer) SetLighting(amount float64) {
	r.ambient = float32(0.25 + 0.45*amount)
	r.diffuse = float32(0.5 * amount)
}

// BeginFrame clears the framebuffer and uploads per-frame uniforms.
func (r *Renderer) BeginFrame(eye math.Vec3) {
	r.eye = eye
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform("uProjection"), 1, false, r.projection.Ptr())
	gl.UniformMatrix4fv(r.program.Uniform("uView"), 1, false, r.view.Ptr())
	gl.Uniform3f(r.program.Uniform("uLightDir"), -0.3, -0.9, -0.3)
	r.setLight(r.ambient, r.diffuse)

	r.setAdditive(false)
	r.setCull(r.config.BackfaceCulling)
}

// SetState applies a pass state.
func (r *Renderer) SetState(s frame.PassState) {
	r.stream.flush(r)
	r.state = s
	toggle(gl.BLEND, s.Blend)
	toggle(gl.DEPTH_TEST, s.DepthTest)
	gl.DepthMask(s.DepthWrite)
	gl.Uniform1i(r.program.Uniform("uAlphaFunc"), int32(s.Alpha))
}

// ClearDepth clears the depth buffer and switches to the fixed cab light.
func (r *Renderer) ClearDepth() {
	r.stream.flush(r)
	gl.DepthMask(true)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	r.setLight(0.7, 0.7)
}

// DrawFace queues a face into the streamed buffer.
func (r *Renderer) DrawFace(f *frame.Face) {
	cull := r.config.BackfaceCulling && !f.Mesh().DoubleSided()
	if cull != r.cull || f.Shade.Additive != r.additive {
		r.stream.flush(r)
		r.setCull(cull)
		r.setAdditive(f.Shade.Additive)
	}

	r.stream.data = appendFace(r.stream.data, f, r.eye, f.Shade.Day)
	if f.Shade.HasNight && r.state.Blend {
		r.stream.data = appendFace(r.stream.data, f, r.eye, f.Shade.Night)
	}
}

// EndFrame flushes pending geometry.
func (r *Renderer) EndFrame() {
	r.stream.flush(r)
}

func (r *Renderer) setLight(ambient, diffuse float32) {
	gl.Uniform3f(r.program.Uniform("uAmbient"), ambient, ambient, ambient)
	gl.Uniform3f(r.program.Uniform("uDiffuse"), diffuse, diffuse, diffuse)
}

func (r *Renderer) setOffset(origin math.Vec3) {
	o := origin.Sub(r.eye).Float32()
	gl.Uniform3f(r.program.Uniform("uOffset"), o[0], o[1], o[2])
}

func (r *Renderer) setCull(on bool) {
	r.cull = on
	toggle(gl.CULL_FACE, on)
}

func (r *Renderer) setAdditive(on bool) {
	r.additive = on
	if on {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	} else {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func toggle(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}
