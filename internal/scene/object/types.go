// Package object holds the immutable mesh and material data of scene
// objects and the store that indexes them.
package object

import (
	"github.com/Faultbox/trackview/pkg/glow"
	"github.com/Faultbox/trackview/pkg/math"
)

// ID identifies an object in a Store for the object's lifetime.
type ID int

// Vertex is a mesh vertex with world position and texture coordinates.
type Vertex struct {
	Position math.Vec3
	TexCoord math.Vec2
}

// FaceVertex references a mesh vertex and carries the normal used at it.
type FaceVertex struct {
	Index  int
	Normal math.Vec3
}

// FaceType is the primitive topology of a face.
type FaceType uint8

// Face topologies, stored in the low bits of Face.Flags.
const (
	FaceTypePolygon FaceType = iota
	FaceTypeTriangles
	FaceTypeTriangleStrip
	FaceTypeQuads
	FaceTypeQuadStrip
)

// Face flag masks.
const (
	FaceTypeMask = 0x07
	Face2Mask    = 0x08 // double-sided
)

// Face is a polygon referencing mesh vertices and a material.
type Face struct {
	Vertices []FaceVertex
	Material int
	Flags    uint8
}

// Type returns the face topology.
func (f *Face) Type() FaceType {
	return FaceType(f.Flags & FaceTypeMask)
}

// DoubleSided reports whether backface culling must be disabled for the face.
func (f *Face) DoubleSided() bool {
	return f.Flags&Face2Mask != 0
}

// BlendMode selects how a material is composited.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdditive
)

// Transparency describes the alpha content of a decoded texture.
type Transparency uint8

const (
	// TransparencyOpaque textures have no transparent texels.
	TransparencyOpaque Transparency = iota
	// TransparencyPartial textures only use fully transparent or fully opaque texels.
	TransparencyPartial
	// TransparencyAlpha textures use intermediate alpha values.
	TransparencyAlpha
)

// Texture is a reference to a texture owned by the texture manager.
type Texture struct {
	Path         string
	Transparency Transparency
}

// WrapMode is the texture addressing mode chosen for a face. Bit 0 repeats
// horizontally, bit 1 repeats vertically.
type WrapMode uint8

const (
	ClampClamp   WrapMode = 0
	RepeatClamp  WrapMode = 1
	ClampRepeat  WrapMode = 2
	RepeatRepeat WrapMode = RepeatClamp | ClampRepeat
)

// Color32 is an 8-bit RGBA color.
type Color32 struct {
	R, G, B, A uint8
}

// Color24 is an 8-bit RGB color.
type Color24 struct {
	R, G, B uint8
}

// Material flag masks.
const (
	EmissiveColorMask    = 0x01
	TransparentColorMask = 0x02
)

// Material describes how the faces referencing it are shaded.
type Material struct {
	Flags            uint8
	Color            Color32
	TransparentColor Color24
	EmissiveColor    Color24
	DaytimeTexture   *Texture
	NighttimeTexture *Texture
	// DaytimeNighttimeBlend runs from 0 (daytime) to 255 (nighttime).
	DaytimeNighttimeBlend uint8
	BlendMode             BlendMode
	Glow                  glow.Data
	// WrapMode, when set, overrides the wrap mode derived from texture coordinates.
	WrapMode *WrapMode
}

// Textured reports whether the material references any texture.
func (m *Material) Textured() bool {
	return m.DaytimeTexture != nil || m.NighttimeTexture != nil
}

// Emissive reports whether the material's emissive color applies.
func (m *Material) Emissive() bool {
	return m.Flags&EmissiveColorMask != 0
}

// Mesh is the geometry of an object.
type Mesh struct {
	Vertices  []Vertex
	Faces     []Face
	Materials []Material
}

// Object is a placed scene object. Objects are immutable once added to a
// Store.
type Object struct {
	Name string
	Mesh Mesh
	// Group partitions static opaque faces for batched drawing.
	Group int
	// Dynamic objects move or animate; their texture coordinates are not
	// assumed to stay in range.
	Dynamic bool
}
