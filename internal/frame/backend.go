package frame

import (
	"github.com/Faultbox/trackview/internal/scene/facelist"
	"github.com/Faultbox/trackview/internal/scene/object"
	"github.com/Faultbox/trackview/internal/scene/shading"
	"github.com/Faultbox/trackview/pkg/math"
)

// AlphaFunc is the alpha test applied to fragments.
type AlphaFunc uint8

const (
	AlphaOff AlphaFunc = iota
	// AlphaGreaterZero discards fully transparent fragments.
	AlphaGreaterZero
	// AlphaGreaterCutout keeps fragments above 0.9, for cab panels.
	AlphaGreaterCutout
	// AlphaEqualOne keeps only fully opaque fragments.
	AlphaEqualOne
	// AlphaLessOne keeps only fragments that are not fully opaque.
	AlphaLessOne
)

// String returns the alpha test name.
func (a AlphaFunc) String() string {
	switch a {
	case AlphaOff:
		return "off"
	case AlphaGreaterZero:
		return ">0"
	case AlphaGreaterCutout:
		return ">0.9"
	case AlphaEqualOne:
		return "==1"
	case AlphaLessOne:
		return "<1"
	default:
		return "unknown"
	}
}

// PassState is the fixed raster state of a pass.
type PassState struct {
	Blend      bool
	DepthTest  bool
	DepthWrite bool
	Alpha      AlphaFunc
}

var (
	opaqueState      = PassState{DepthTest: true, DepthWrite: true, Alpha: AlphaGreaterZero}
	blendState       = PassState{Blend: true, DepthTest: true, Alpha: AlphaGreaterZero}
	solidAlphaState  = PassState{DepthTest: true, DepthWrite: true, Alpha: AlphaEqualOne}
	translucentState = PassState{Blend: true, DepthTest: true, Alpha: AlphaLessOne}
	additiveState    = PassState{Blend: true, DepthTest: true, Alpha: AlphaOff}
	cabOpaqueState   = PassState{DepthTest: true, DepthWrite: true, Alpha: AlphaGreaterCutout}
	panelState       = PassState{Blend: true, Alpha: AlphaOff}
)

// Face is a slot resolved against its object and shaded for this frame.
type Face struct {
	Object *object.Object
	Slot   facelist.Slot
	Shade  shading.Result
}

// Mesh returns the face's mesh face.
func (f *Face) Mesh() *object.Face {
	return &f.Object.Mesh.Faces[f.Slot.Face]
}

// Backend rasterizes faces. Calls arrive on the render thread between
// BeginFrame and EndFrame.
type Backend interface {
	BeginFrame(eye math.Vec3)
	SetState(s PassState)
	// ClearDepth clears the depth buffer before the cab is drawn.
	ClearDepth()
	DrawFace(f *Face)

	// CompileGroup builds a batch for a static group. Positions are taken
	// relative to origin. faces is only valid during the call.
	CompileGroup(group int, origin math.Vec3, faces []Face)
	// DrawGroup draws a compiled batch for a camera at eye. It reports
	// false when the group has no batch.
	DrawGroup(group int, eye math.Vec3) bool
	ReleaseGroup(group int)

	EndFrame()
}
