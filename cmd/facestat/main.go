// facestat drives the face lists through a generated route without a
// window and reports what each layer would draw.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/trackview/internal/config"
	"github.com/Faultbox/trackview/internal/demo"
	"github.com/Faultbox/trackview/internal/frame"
	"github.com/Faultbox/trackview/internal/logger"
	"github.com/Faultbox/trackview/internal/scene/facelist"
	"github.com/Faultbox/trackview/internal/scene/object"
	"github.com/Faultbox/trackview/internal/scene/shading"
	"github.com/Faultbox/trackview/pkg/math"
)

var (
	flagFrames  = flag.Int("frames", 200, "Number of frames to simulate")
	flagStep    = flag.Float64("step", 5, "Camera advance per frame in metres")
	flagWorkers = flag.Int("workers", 4, "Parallel block generators")
)

func main() {
	os.Exit(exitCode())
}

// exitCode runs facestat and returns the process exit code, leaving
// deferred cleanup to run before the process exits.
func exitCode() int {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("facestat failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config) error {
	classifier, err := cfg.Classifier()
	if err != nil {
		return err
	}

	store := object.NewStore()
	state := facelist.New(store, facelist.Options{
		Classifier:      classifier,
		InitialCapacity: cfg.Rendering.InitialCapacity,
		CheckInvariants: cfg.Rendering.CheckInvariants,
		Logger:          logger.Named("facelist"),
	})
	queue := frame.NewQueue()
	counter := frame.NewCounter()
	pipeline := frame.New(state, store, queue, counter, frame.Options{
		DisplayLists: cfg.Rendering.DisplayLists,
		Environment:  shading.Environment{LightingAmount: cfg.Rendering.LightingAmount, Lighting: true},
		Logger:       logger.Named("frame"),
	})

	route := demo.NewRoute(cfg.Route.BlockLength)
	loader := &demo.Loader{
		Generator: demo.Generator{BlockLength: cfg.Route.BlockLength, Seed: cfg.Route.Seed},
		Store:     store,
		Route:     route,
		Workers:   *flagWorkers,
		Logger:    logger.Named("loader"),
	}
	start := math.Vec3{Y: 3}
	loader.LoadPermanent(loader.Generator.Train(3*cfg.Route.BlockLength, 4))
	loader.LoadPermanent(loader.Generator.Cab(start))

	began := time.Now()
	if err := loader.Load(ctx, cfg.Route.Blocks); err != nil {
		return err
	}
	loadTime := time.Since(began)

	visibility := demo.NewVisibility(route, queue, cfg.Camera.ViewDistance)

	var (
		peak   frame.Stats
		sum    [facelist.LayerCount]int
		frames int
	)
	began = time.Now()
	eye := start
	for range *flagFrames {
		if ctx.Err() != nil {
			break
		}
		visibility.Update(eye)
		st := pipeline.Render(eye)
		if err := state.Verify(); err != nil {
			return fmt.Errorf("frame %d: %w", frames, err)
		}
		for l, n := range st.Faces {
			sum[l] += n
			peak.Faces[l] = max(peak.Faces[l], n)
		}
		peak.Missing += st.Missing
		frames++
		eye.Z += *flagStep
	}
	renderTime := time.Since(began)

	fmt.Printf("route: %d blocks, %d objects, loaded in %v\n", route.Len(), store.Len(), loadTime)
	fmt.Printf("frames: %d in %v, %d group batches compiled, %d released\n",
		frames, renderTime, counter.Compiles, counter.Releases)
	fmt.Printf("%-16s %10s %10s\n", "layer", "peak", "average")
	for l := range facelist.LayerCount {
		avg := 0.0
		if frames > 0 {
			avg = float64(sum[l]) / float64(frames)
		}
		fmt.Printf("%-16s %10d %10.1f\n", l, peak.Faces[l], avg)
	}
	if peak.Missing > 0 {
		fmt.Printf("missing faces: %d\n", peak.Missing)
	}
	return nil
}
