package frame

import (
	"github.com/Faultbox/trackview/pkg/math"
)

// Counter is a Backend that rasterizes nothing and tallies what it was
// asked to draw. It serves headless runs and tests.
type Counter struct {
	Frames       int
	StateChanges int
	DepthClears  int
	// Triangles counts triangles of individually drawn faces.
	Triangles int
	Faces     int
	Compiles  int
	Releases  int
	// Batches holds the triangle count of every live group batch.
	Batches map[int]int
	// BatchDraws counts DrawGroup calls that found a batch.
	BatchDraws int
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{Batches: make(map[int]int)}
}

func (c *Counter) BeginFrame(math.Vec3) { c.Frames++ }

func (c *Counter) SetState(PassState) { c.StateChanges++ }

func (c *Counter) ClearDepth() { c.DepthClears++ }

func (c *Counter) DrawFace(f *Face) {
	c.Faces++
	c.Triangles += len(f.Mesh().Triangles())
}

func (c *Counter) CompileGroup(group int, _ math.Vec3, faces []Face) {
	n := 0
	for i := range faces {
		n += len(faces[i].Mesh().Triangles())
	}
	c.Batches[group] = n
	c.Compiles++
}

func (c *Counter) DrawGroup(group int, _ math.Vec3) bool {
	if _, ok := c.Batches[group]; !ok {
		return false
	}
	c.BatchDraws++
	return true
}

func (c *Counter) ReleaseGroup(group int) {
	delete(c.Batches, group)
	c.Releases++
}

func (c *Counter) EndFrame() {}
