// Package demo generates a procedural railway route and streams it into
// the scene the way a route loader would.
package demo

import (
	"fmt"
	"math/rand/v2"

	"github.com/Faultbox/trackview/internal/scene/facelist"
	"github.com/Faultbox/trackview/internal/scene/object"
	"github.com/Faultbox/trackview/pkg/glow"
	"github.com/Faultbox/trackview/pkg/math"
)

// Placement is an object together with the kind it is shown as.
type Placement struct {
	Object *object.Object
	Kind   facelist.Kind
}

// Generator builds route blocks. The same seed and block index always
// give the same objects.
type Generator struct {
	BlockLength float64
	Seed        uint64
}

const (
	groundHalfWidth = 20.0
	railGauge       = 1.435
	sleeperSpacing  = 0.6
	lampHalfDist    = 40
)

var (
	grassTexture    = &object.Texture{Path: "grass.png", Transparency: object.TransparencyOpaque}
	foliageTexture  = &object.Texture{Path: "foliage.png", Transparency: object.TransparencyPartial}
	facadeTexture   = &object.Texture{Path: "facade.png", Transparency: object.TransparencyOpaque}
	windowsTexture  = &object.Texture{Path: "windows_lit.png", Transparency: object.TransparencyAlpha}
	platformTexture = &object.Texture{Path: "platform.png", Transparency: object.TransparencyOpaque}
)

// Block returns the scenery of block i. Static scenery of a block shares
// static group i.
func (g Generator) Block(i int) []Placement {
	rng := rand.New(rand.NewPCG(g.Seed, uint64(i)))
	z0 := float64(i) * g.BlockLength
	z1 := z0 + g.BlockLength
	v := func(x, y, z float64) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

	var out []Placement
	static := func(name string, b *meshBuilder) {
		out = append(out, Placement{Object: b.build(fmt.Sprintf("%s#%d", name, i), i, false), Kind: facelist.Static})
	}

	// Ground, with texture coordinates repeating every 5 m.
	var ground meshBuilder
	m := ground.material(object.Material{Color: rgba(255, 255, 255, 255), DaytimeTexture: grassTexture})
	ground.quad(m, [4]math.Vec3{
		v(-groundHalfWidth, 0, z1), v(groundHalfWidth, 0, z1),
		v(groundHalfWidth, 0, z0), v(-groundHalfWidth, 0, z0),
	}, math.Vec2{X: 2 * groundHalfWidth / 5, Y: float32(g.BlockLength / 5)}, 0)
	static("ground", &ground)

	// Track: sleepers and two rails.
	var track meshBuilder
	wood := track.material(object.Material{Color: rgba(90, 60, 40, 255)})
	steel := track.material(object.Material{Color: rgba(150, 150, 160, 255)})
	for z := z0 + sleeperSpacing/2; z < z1; z += sleeperSpacing {
		track.box(wood, v(-1.3, 0, z-0.12), v(1.3, 0.15, z+0.12))
	}
	for _, x := range []float64{-railGauge / 2, railGauge / 2} {
		track.box(steel, v(x-0.035, 0.15, z0), v(x+0.035, 0.3, z1))
	}
	static("track", &track)

	// Signal post with a glowing additive lamp.
	var post meshBuilder
	metal := post.material(object.Material{Color: rgba(60, 60, 60, 255)})
	post.box(metal, v(3, 0, z0+1), v(3.2, 5, z0+1.2))
	static("post", &post)

	var lamp meshBuilder
	red := lamp.material(object.Material{
		Flags:         object.EmissiveColorMask,
		Color:         rgba(255, 40, 30, 255),
		EmissiveColor: object.Color24{R: 255, G: 40, B: 30},
		BlendMode:     object.BlendAdditive,
		Glow:          glow.Pack(lampHalfDist, glow.DivisionExponent4),
	})
	lamp.quad(red, [4]math.Vec3{
		v(2.9, 4.6, z0+0.95), v(3.3, 4.6, z0+0.95),
		v(3.3, 5.0, z0+0.95), v(2.9, 5.0, z0+0.95),
	}, math.Vec2{X: 1, Y: 1}, object.Face2Mask)
	static("lamp", &lamp)

	// Trees: crossed double-sided cards with cut-out foliage.
	for k := range rng.IntN(4) {
		x := 6 + rng.Float64()*12
		if k%2 == 1 {
			x = -x
		}
		z := z0 + rng.Float64()*g.BlockLength
		h := 4 + rng.Float64()*6
		var tree meshBuilder
		leaf := tree.material(object.Material{Color: rgba(255, 255, 255, 255), DaytimeTexture: foliageTexture})
		tree.quad(leaf, [4]math.Vec3{v(x-2, 0, z), v(x+2, 0, z), v(x+2, h, z), v(x-2, h, z)}, math.Vec2{X: 1, Y: 1}, object.Face2Mask)
		tree.quad(leaf, [4]math.Vec3{v(x, 0, z-2), v(x, 0, z+2), v(x, h, z+2), v(x, h, z-2)}, math.Vec2{X: 1, Y: 1}, object.Face2Mask)
		static(fmt.Sprintf("tree%d", k), &tree)
	}

	// Every fourth block has a building whose windows light up at night.
	if i%4 == 2 {
		var house meshBuilder
		wall := house.material(object.Material{
			Color:                 rgba(255, 255, 255, 255),
			DaytimeTexture:        facadeTexture,
			NighttimeTexture:      windowsTexture,
			DaytimeNighttimeBlend: 40,
		})
		house.box(wall, v(-16, 0, z0+4), v(-9, 8+rng.Float64()*6, z1-4))
		static("house", &house)
	}

	// Every eighth block has a platform with a glass shelter.
	if i%8 == 0 {
		var platform meshBuilder
		stone := platform.material(object.Material{Color: rgba(200, 200, 190, 255), DaytimeTexture: platformTexture})
		// The edge texture tiles along the platform regardless of its coordinates.
		wrap := object.RepeatClamp
		stone2 := platform.material(object.Material{Color: rgba(180, 180, 170, 255), DaytimeTexture: platformTexture, WrapMode: &wrap})
		platform.box(stone, v(2.2, 0, z0), v(6, 0.9, z1))
		platform.quad(stone2, [4]math.Vec3{v(2.2, 0.9, z0), v(2.2, 0.9, z1), v(2.2, 0, z1), v(2.2, 0, z0)}, math.Vec2{X: 1, Y: 1}, 0)
		static("platform", &platform)

		var glass meshBuilder
		pane := glass.material(object.Material{Color: rgba(170, 210, 230, 90)})
		glass.quad(pane, [4]math.Vec3{v(5.5, 0.9, z0+5), v(5.5, 0.9, z0+15), v(5.5, 3.4, z0+15), v(5.5, 3.4, z0+5)}, math.Vec2{X: 1, Y: 1}, object.Face2Mask)
		static("shelter", &glass)
	}

	return out
}

// Train returns a parked train of cars starting at z.
func (g Generator) Train(z float64, cars int) []Placement {
	v := func(x, y, z float64) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }
	var out []Placement
	for c := range cars {
		var car meshBuilder
		body := car.material(object.Material{Color: rgba(30, 80, 160, 255), DaytimeTexture: facadeTexture})
		windows := car.material(object.Material{Color: rgba(120, 140, 160, 140)})
		start := z + float64(c)*21
		car.box(body, v(-1.4, 0.5, start), v(1.4, 4, start+20))
		for _, x := range []float64{-1.41, 1.41} {
			car.quad(windows, [4]math.Vec3{v(x, 2.2, start+2), v(x, 2.2, start+18), v(x, 3.3, start+18), v(x, 3.3, start+2)}, math.Vec2{X: 1, Y: 1}, object.Face2Mask)
		}
		out = append(out, Placement{Object: car.build(fmt.Sprintf("car%d", c), 0, true), Kind: facelist.Dynamic})
	}
	return out
}

// Cab returns a driver's desk and windscreen placed around pos.
func (g Generator) Cab(pos math.Vec3) []Placement {
	v := func(x, y, z float64) math.Vec3 { return pos.Add(math.Vec3{X: x, Y: y, Z: z}) }
	var desk meshBuilder
	panel := desk.material(object.Material{Color: rgba(50, 50, 55, 255)})
	gauge := desk.material(object.Material{
		Flags:         object.EmissiveColorMask,
		Color:         rgba(240, 240, 200, 255),
		EmissiveColor: object.Color24{R: 90, G: 90, B: 60},
	})
	desk.box(panel, v(-0.8, -1.2, 0.6), v(0.8, -0.5, 1.1))
	desk.quad(gauge, [4]math.Vec3{v(-0.1, -0.49, 0.95), v(0.1, -0.49, 0.95), v(0.1, -0.49, 0.75), v(-0.1, -0.49, 0.75)}, math.Vec2{X: 1, Y: 1}, 0)

	var screen meshBuilder
	tint := screen.material(object.Material{Color: rgba(180, 200, 210, 40)})
	screen.quad(tint, [4]math.Vec3{v(-0.9, -0.5, 1.2), v(0.9, -0.5, 1.2), v(0.9, 0.6, 1.2), v(-0.9, 0.6, 1.2)}, math.Vec2{X: 1, Y: 1}, object.Face2Mask)

	return []Placement{
		{Object: desk.build("desk", 0, false), Kind: facelist.Overlay},
		{Object: screen.build("windscreen", 0, false), Kind: facelist.Overlay},
	}
}
