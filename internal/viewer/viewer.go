// Package viewer implements the interactive route viewer main loop.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/trackview/internal/config"
	"github.com/Faultbox/trackview/internal/demo"
	"github.com/Faultbox/trackview/internal/engine/camera"
	"github.com/Faultbox/trackview/internal/engine/input"
	"github.com/Faultbox/trackview/internal/engine/renderer"
	"github.com/Faultbox/trackview/internal/engine/window"
	"github.com/Faultbox/trackview/internal/frame"
	"github.com/Faultbox/trackview/internal/logger"
	"github.com/Faultbox/trackview/internal/scene/facelist"
	"github.com/Faultbox/trackview/internal/scene/object"
	"github.com/Faultbox/trackview/internal/scene/shading"
	"github.com/Faultbox/trackview/pkg/math"
)

const (
	title = "trackview"
	// The cab sits above the rails at the start of the route.
	cabHeight = 3.0
	trainCars = 4
	// Seconds of route time per hour key press.
	hourStep = 3600.0
	noon     = 12 * 3600.0
)

// Viewer is the interactive route viewer.
type Viewer struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FlyCamera

	store      *object.Store
	state      *facelist.State
	queue      *frame.Queue
	pipeline   *frame.Pipeline
	loader     *demo.Loader
	visibility *demo.Visibility

	classifier facelist.Classifier
	clock      float64
	mouseLook  bool
}

// New creates the window, the renderer and the scene.
func New(cfg *config.Config) (*Viewer, error) {
	classifier, err := cfg.Classifier()
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:        cfg,
		log:        logger.Named("viewer"),
		classifier: classifier,
		clock:      noon,
	}
	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("transparency", cfg.Rendering.Transparency),
		zap.String("restriction", cfg.Camera.Restriction),
	)

	// Create window (this also creates OpenGL context)
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	v.renderer, err = renderer.New(renderer.Config{
		Width:           cfg.Graphics.Width,
		Height:          cfg.Graphics.Height,
		BackfaceCulling: cfg.Rendering.BackfaceCulling,
	}, logger.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	w, h := v.window.GetSize()
	v.renderer.Resize(w, h)

	v.input = input.New()
	start := math.Vec3{Y: cabHeight, Z: 2}
	v.camera = camera.NewFlyCamera(start, cfg.Camera.Speed, cfg.Camera.FOV, float32(cfg.Camera.ViewDistance+cfg.Route.BlockLength))

	v.store = object.NewStore()
	v.state = facelist.New(v.store, facelist.Options{
		Classifier:      classifier,
		InitialCapacity: cfg.Rendering.InitialCapacity,
		CheckInvariants: cfg.Rendering.CheckInvariants,
		Logger:          logger.Named("facelist"),
	})
	v.queue = frame.NewQueue()
	v.pipeline = frame.New(v.state, v.store, v.queue, v.renderer, frame.Options{
		DisplayLists: cfg.Rendering.DisplayLists,
		Environment:  v.environment(),
		Logger:       logger.Named("frame"),
	})

	route := demo.NewRoute(cfg.Route.BlockLength)
	v.loader = &demo.Loader{
		Generator: demo.Generator{BlockLength: cfg.Route.BlockLength, Seed: cfg.Route.Seed},
		Store:     v.store,
		Route:     route,
		Workers:   4,
		Logger:    logger.Named("loader"),
	}
	v.loader.LoadPermanent(v.loader.Generator.Train(3*cfg.Route.BlockLength, trainCars))
	v.loader.LoadPermanent(v.loader.Generator.Cab(start))
	v.visibility = demo.NewVisibility(route, v.queue, cfg.Camera.ViewDistance)

	v.log.Info("viewer initialized")
	return v, nil
}

// Run loads the route in the background and runs the main loop until the
// window is closed or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loaded := make(chan error, 1)
	go func(done chan<- error) {
		done <- v.loader.Load(ctx, v.cfg.Route.Blocks)
	}(loaded)

	v.running = true
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()
	var stats frame.Stats

	v.log.Info("starting main loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		select {
		case err := <-loaded:
			loaded = nil
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case <-ctx.Done():
			v.running = false
		default:
		}

		if v.input.Update() {
			break
		}
		v.handleEvents()
		v.update(dt)

		stats = v.pipeline.Render(v.camera.Position)
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			v.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("faces", stats.Total()),
				zap.Int("groups", stats.GroupsDrawn),
				zap.Int("static", v.state.StaticOpaqueCount()),
				zap.Int("objects", v.state.Objects()),
			)
			v.window.SetTitle(fmt.Sprintf("%s - %d fps, %d faces", title, frameCount, stats.Total()))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	cancel()
	if loaded != nil {
		if err := <-loaded; err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	return nil
}

func (v *Viewer) handleEvents() {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.GetSize())
		case input.EventMouseMove:
			if v.mouseLook || event.Buttons&sdl.ButtonRMask() != 0 {
				v.camera.HandleLook(float64(event.DX), float64(event.DY))
			}
		case input.EventKeyDown:
			v.handleKey(event.Key)
		}
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_T:
		if v.classifier.Transparency == facelist.Performance {
			v.classifier.Transparency = facelist.Quality
		} else {
			v.classifier.Transparency = facelist.Performance
		}
		v.queue.Reclassify(v.classifier)
		v.log.Info("transparency changed", zap.Uint8("mode", uint8(v.classifier.Transparency)))
	case sdl.SCANCODE_C:
		v.classifier.Restriction = (v.classifier.Restriction + 1) % 3
		v.queue.Reclassify(v.classifier)
		v.log.Info("camera restriction changed", zap.Uint8("restriction", uint8(v.classifier.Restriction)))
	case sdl.SCANCODE_L:
		v.pipeline.SetDisplayLists(!v.pipeline.DisplayLists())
		v.log.Info("display lists toggled", zap.Bool("on", v.pipeline.DisplayLists()))
	case sdl.SCANCODE_M:
		v.mouseLook = !v.mouseLook
		v.window.SetMouseLook(v.mouseLook)
	case sdl.SCANCODE_G:
		v.queue.InvalidateGroups()
	case sdl.SCANCODE_PAGEUP:
		v.clock += hourStep
	case sdl.SCANCODE_PAGEDOWN:
		v.clock -= hourStep
	}
}

func (v *Viewer) update(dt float64) {
	v.camera.HandleMovement(
		v.input.Axis(sdl.SCANCODE_S, sdl.SCANCODE_W),
		v.input.Axis(sdl.SCANCODE_A, sdl.SCANCODE_D),
		v.input.Axis(sdl.SCANCODE_LCTRL, sdl.SCANCODE_SPACE),
		dt,
	)
	v.visibility.Update(v.camera.Position)

	env := v.environment()
	v.pipeline.SetEnvironment(env)
	v.renderer.SetLighting(env.LightingAmount)
	v.renderer.SetCamera(v.camera.ViewMatrix(), v.camera.ProjectionMatrix(v.renderer.Aspect()))
}

func (v *Viewer) environment() shading.Environment {
	return shading.Environment{
		LightingAmount: v.cfg.Rendering.LightingAmount * demo.Daylight(v.clock),
		Lighting:       true,
	}
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.pipeline != nil {
		v.pipeline.Release()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
