package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// quadVertices is a unit square, pos(x,y) tex(u,v), two triangles.
var quadVertices = []float32{
	0.0, 1.0, 0.0, 1.0,
	1.0, 0.0, 1.0, 0.0,
	0.0, 0.0, 0.0, 0.0,

	0.0, 1.0, 0.0, 1.0,
	1.0, 1.0, 1.0, 1.0,
	1.0, 0.0, 1.0, 0.0,
}

// Quad is a VAO/VBO pair holding quadVertices. Attribute 0 is the position,
// attribute 1 the texture coordinate.
type Quad struct {
	VAO uint32
	VBO uint32
}

func NewQuad() (Quad, error) {
	var q Quad
	gl.GenVertexArrays(1, &q.VAO)
	gl.GenBuffers(1, &q.VBO)
	gl.BindVertexArray(q.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	stride := int32(4 * 4) // Each vertex has 4 floats (pos.x, pos.y, tex.u, tex.v)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if err := CheckGLError(); err != nil {
		q.Delete()
		return Quad{}, fmt.Errorf("creating quad: %w", err)
	}
	return q, nil
}

// Draw issues the six-vertex draw call. The caller binds program and textures.
func (q Quad) Draw() {
	gl.BindVertexArray(q.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (q *Quad) Delete() {
	if q.VBO != 0 {
		gl.DeleteBuffers(1, &q.VBO)
	}
	if q.VAO != 0 {
		gl.DeleteVertexArrays(1, &q.VAO)
	}
	q.VAO, q.VBO = 0, 0
}
