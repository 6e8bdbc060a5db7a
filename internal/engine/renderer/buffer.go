package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/trackview/internal/frame"
	"github.com/Faultbox/trackview/pkg/math"
)

// buffer is a VAO/VBO pair in the face vertex layout.
type buffer struct {
	vao, vbo uint32
	usage    uint32
	data     []float32
}

func newBuffer(usage uint32) *buffer {
	b := &buffer{usage: usage}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, vertexStride, offsetNormal)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, vertexStride, offsetColor)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(3, 3, gl.FLOAT, false, vertexStride, offsetEmission)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(4, 1, gl.FLOAT, false, vertexStride, offsetLit)
	gl.EnableVertexAttribArray(4)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return b
}

// upload copies data into the VBO.
func (b *buffer) upload() {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(b.data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, b.usage)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(b.data)*4, gl.Ptr(b.data), b.usage)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *buffer) draw(first, count int32) {
	if count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.TRIANGLES, first, count)
	gl.BindVertexArray(0)
}

// flush draws and discards the streamed vertices. Streamed geometry is
// relative to the current eye.
func (b *buffer) flush(r *Renderer) {
	if len(b.data) == 0 {
		return
	}
	b.upload()
	r.setOffset(r.eye)
	b.draw(0, vertexCount(b.data))
	b.data = b.data[:0]
}

func (b *buffer) delete() {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
}

// batch is the compiled geometry of a static group. Faces that may be
// culled come first, double-sided faces after them.
type batch struct {
	buf    *buffer
	origin math.Vec3
	culled int32
	total  int32
}

// CompileGroup uploads a static group's faces as one batch.
func (r *Renderer) CompileGroup(group int, origin math.Vec3, faces []frame.Face) {
	r.stream.flush(r)
	if old, ok := r.batches[group]; ok {
		old.buf.delete()
	}

	b := &batch{buf: newBuffer(gl.STATIC_DRAW), origin: origin}
	for _, doubleSided := range []bool{false, true} {
		for i := range faces {
			if faces[i].Mesh().DoubleSided() == doubleSided {
				b.buf.data = appendFace(b.buf.data, &faces[i], origin, faces[i].Shade.Day)
			}
		}
		if !doubleSided {
			b.culled = vertexCount(b.buf.data)
		}
	}
	b.total = vertexCount(b.buf.data)
	b.buf.upload()
	b.buf.data = nil
	r.batches[group] = b
}

// DrawGroup draws a compiled batch offset for the current eye.
func (r *Renderer) DrawGroup(group int, eye math.Vec3) bool {
	b, ok := r.batches[group]
	if !ok {
		return false
	}
	r.stream.flush(r)
	r.eye = eye
	r.setOffset(b.origin)

	r.setCull(r.config.BackfaceCulling)
	b.buf.draw(0, b.culled)
	r.setCull(false)
	b.buf.draw(b.culled, b.total-b.culled)
	return true
}

// ReleaseGroup deletes a group's batch.
func (r *Renderer) ReleaseGroup(group int) {
	if b, ok := r.batches[group]; ok {
		b.buf.delete()
		delete(r.batches, group)
	}
}
