// Package frame drives the per-frame draw passes over the face lists.
//
// A Pipeline owns the render-thread side of the scene: it applies queued
// visibility changes, keeps static group batches current, depth sorts
// the alpha layers and issues every pass to a Backend.
package frame

import (
	"go.uber.org/zap"

	"github.com/Faultbox/trackview/internal/scene/facelist"
	"github.com/Faultbox/trackview/internal/scene/object"
	"github.com/Faultbox/trackview/internal/scene/shading"
	"github.com/Faultbox/trackview/pkg/math"
)

// Options configures a Pipeline.
type Options struct {
	// DisplayLists draws static groups from compiled batches. When false
	// every static face is drawn individually each frame.
	DisplayLists bool
	Environment  shading.Environment
	Logger       *zap.Logger
}

// Stats describes one rendered frame.
type Stats struct {
	Commands int
	// Faces counts the distinct faces drawn per layer, including faces
	// drawn from batches.
	Faces       [facelist.LayerCount]int
	GroupsBuilt int
	GroupsDrawn int
	// Missing counts shown faces whose object is no longer in the store.
	Missing int
}

// Total returns the number of faces submitted over all layers.
func (s Stats) Total() int {
	n := 0
	for _, c := range s.Faces {
		n += c
	}
	return n
}

// Pipeline renders a facelist.State through a Backend.
type Pipeline struct {
	state   *facelist.State
	src     facelist.Source
	queue   *Queue
	backend Backend
	opts    Options
	log     *zap.Logger

	compiled map[int]bool
	scratch  []Face
}

// New creates a pipeline. The queue may be shared with producer
// goroutines.
func New(state *facelist.State, src facelist.Source, queue *Queue, backend Backend, opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Pipeline{
		state:    state,
		src:      src,
		queue:    queue,
		backend:  backend,
		opts:     opts,
		log:      opts.Logger,
		compiled: make(map[int]bool),
	}
}

// SetEnvironment changes the lighting used from the next frame on.
// Compiled group batches keep the lighting they were built with until
// InvalidateGroups.
func (p *Pipeline) SetEnvironment(env shading.Environment) {
	p.opts.Environment = env
}

// SetDisplayLists switches between compiled group batches and drawing
// static faces individually.
func (p *Pipeline) SetDisplayLists(on bool) {
	if on == p.opts.DisplayLists {
		return
	}
	if on {
		p.state.InvalidateGroups()
	} else {
		p.Release()
	}
	p.opts.DisplayLists = on
}

// DisplayLists reports whether static groups are drawn from batches.
func (p *Pipeline) DisplayLists() bool {
	return p.opts.DisplayLists
}

// Environment returns the current lighting.
func (p *Pipeline) Environment() shading.Environment {
	return p.opts.Environment
}

// Render draws one frame for a camera at eye.
func (p *Pipeline) Render(eye math.Vec3) Stats {
	var st Stats
	st.Commands = p.queue.Drain(p.state)

	p.backend.BeginFrame(eye)
	env := p.opts.Environment

	// world layer
	p.backend.SetState(opaqueState)
	if p.opts.DisplayLists {
		p.renderGroups(eye, env, &st)
	} else {
		p.drawAll(facelist.StaticOpaque, eye, env, &st)
	}
	p.drawAll(facelist.DynamicOpaque, eye, env, &st)

	p.state.SortAlpha(facelist.DynamicAlpha, eye)
	p.renderAlpha(facelist.DynamicAlpha, eye, env, &st)

	// cab layer
	restriction := p.state.Classifier().Restriction
	if restriction == facelist.RestrictionNotAvailable {
		cabEnv := env
		cabEnv.Lighting = true
		p.backend.ClearDepth()
		p.backend.SetState(cabOpaqueState)
		p.drawAll(facelist.OverlayOpaque, eye, cabEnv, &st)
		p.state.SortAlpha(facelist.OverlayAlpha, eye)
		p.renderAlpha(facelist.OverlayAlpha, eye, cabEnv, &st)
	} else {
		panelEnv := env
		panelEnv.Lighting = false
		p.backend.SetState(panelState)
		p.state.SortAlpha(facelist.OverlayAlpha, eye)
		p.drawAll(facelist.OverlayAlpha, eye, panelEnv, &st)
	}

	p.backend.EndFrame()
	return st
}

// renderGroups rebuilds dirty group batches and draws every batch.
func (p *Pipeline) renderGroups(eye math.Vec3, env shading.Environment, st *Stats) {
	for g := range p.state.Groups() {
		if !p.state.GroupDirty(g) {
			continue
		}
		p.state.ClearGroupDirty(g)
		if p.compiled[g] {
			p.backend.ReleaseGroup(g)
			delete(p.compiled, g)
		}
		if p.state.GroupLen(g) == 0 {
			continue
		}

		p.scratch = p.scratch[:0]
		for slot := range p.state.GroupFaces(g) {
			if f, ok := p.resolve(slot, eye, env); ok {
				p.scratch = append(p.scratch, f)
			} else {
				st.Missing++
			}
		}
		p.backend.CompileGroup(g, eye, p.scratch)
		p.compiled[g] = true
		st.GroupsBuilt++
		p.log.Debug("compiled static group",
			zap.Int("group", g),
			zap.Int("faces", len(p.scratch)))
	}
	clear(p.scratch[:cap(p.scratch)])

	for g := range p.state.Groups() {
		if p.compiled[g] && p.backend.DrawGroup(g, eye) {
			st.GroupsDrawn++
			st.Faces[facelist.StaticOpaque] += p.state.GroupLen(g)
		}
	}
}

// renderAlpha draws a sorted alpha layer with the current transparency
// mode.
func (p *Pipeline) renderAlpha(layer facelist.Layer, eye math.Vec3, env shading.Environment, st *Stats) {
	if p.state.Classifier().Transparency == facelist.Performance {
		p.backend.SetState(blendState)
		p.drawAll(layer, eye, env, st)
		return
	}

	// Solid faces first so that they write depth, then everything else
	// blended on top.
	p.backend.SetState(solidAlphaState)
	for slot := range p.state.Faces(layer) {
		f, ok := p.resolve(slot, eye, env)
		if !ok {
			st.Missing++
			continue
		}
		m := f.Object.Mesh.MaterialOf(f.Mesh())
		if m.BlendMode == object.BlendNormal && !m.Glow.Enabled() && m.Color.A == 255 {
			p.backend.DrawFace(&f)
		}
	}

	p.backend.SetState(translucentState)
	additive := false
	for slot := range p.state.Faces(layer) {
		f, ok := p.resolve(slot, eye, env)
		if !ok {
			continue
		}
		if f.Shade.Additive != additive {
			additive = f.Shade.Additive
			if additive {
				p.backend.SetState(additiveState)
			} else {
				p.backend.SetState(translucentState)
			}
		}
		p.backend.DrawFace(&f)
		st.Faces[layer]++
	}
}

func (p *Pipeline) drawAll(layer facelist.Layer, eye math.Vec3, env shading.Environment, st *Stats) {
	for slot := range p.state.Faces(layer) {
		f, ok := p.resolve(slot, eye, env)
		if !ok {
			st.Missing++
			continue
		}
		p.backend.DrawFace(&f)
		st.Faces[layer]++
	}
}

func (p *Pipeline) resolve(slot facelist.Slot, eye math.Vec3, env shading.Environment) (Face, bool) {
	obj, ok := p.src.Object(slot.Object)
	if !ok || slot.Face >= len(obj.Mesh.Faces) {
		return Face{}, false
	}
	return Face{
		Object: obj,
		Slot:   slot,
		Shade:  shading.Face(obj, slot.Face, eye, env),
	}, true
}

// Release drops every compiled batch, for example before the graphics
// context is destroyed.
func (p *Pipeline) Release() {
	for g := range p.compiled {
		p.backend.ReleaseGroup(g)
	}
	clear(p.compiled)
	p.state.InvalidateGroups()
}
