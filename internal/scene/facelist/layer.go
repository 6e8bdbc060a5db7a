package facelist

import "fmt"

// Kind is the category an object is shown into.
type Kind uint8

const (
	// Static objects never move. Their opaque faces are batched per group.
	Static Kind = iota
	// Dynamic objects move or animate between frames.
	Dynamic
	// Overlay objects belong to the cab and are drawn after the scene.
	Overlay
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	case Overlay:
		return "overlay"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k <= Overlay
}

// Partition is the result of classifying a face.
type Partition uint8

const (
	Opaque Partition = iota
	Alpha
)

// Layer is one of the face lists drawn each frame, in draw order.
type Layer uint8

const (
	StaticOpaque Layer = iota
	DynamicOpaque
	DynamicAlpha
	OverlayOpaque
	OverlayAlpha

	// LayerCount is the number of layers.
	LayerCount
)

// Layer returns the layer a face of the given partition lands in. Static
// alpha faces share the dynamic alpha list so that all world-space
// translucent geometry is sorted together.
func (k Kind) Layer(p Partition) Layer {
	switch k {
	case Static:
		if p == Alpha {
			return DynamicAlpha
		}
		return StaticOpaque
	case Dynamic:
		if p == Alpha {
			return DynamicAlpha
		}
		return DynamicOpaque
	case Overlay:
		if p == Alpha {
			return OverlayAlpha
		}
		return OverlayOpaque
	default:
		panic(fmt.Sprintf("facelist: invalid kind %d", uint8(k)))
	}
}

// Alpha reports whether the layer holds blended faces that are depth sorted.
func (l Layer) Alpha() bool {
	return l == DynamicAlpha || l == OverlayAlpha
}

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case StaticOpaque:
		return "static-opaque"
	case DynamicOpaque:
		return "dynamic-opaque"
	case DynamicAlpha:
		return "dynamic-alpha"
	case OverlayOpaque:
		return "overlay-opaque"
	case OverlayAlpha:
		return "overlay-alpha"
	default:
		return fmt.Sprintf("layer(%d)", uint8(l))
	}
}

// FaceHandle locates a face slot. For StaticOpaque the index is relative
// to the owning object's group list.
type FaceHandle struct {
	Layer Layer
	Index int
}
