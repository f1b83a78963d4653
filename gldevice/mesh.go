package gldevice

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goteapot/graphics"
)

type vaoMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

func (m *vaoMesh) IndexCount() int { return int(m.count) }

func (d *Device) UploadMesh(vertices []graphics.Vertex, indices []uint32) (graphics.Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, fmt.Errorf("cannot upload empty mesh")
	}
	m := &vaoMesh{count: int32(len(indices))}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(vertexStride), gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, gl.PtrOffset(3*4))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

func (d *Device) DrawMesh(mesh graphics.Mesh) {
	m, ok := mesh.(*vaoMesh)
	if !ok || m == nil {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (d *Device) DeleteMesh(mesh graphics.Mesh) {
	m, ok := mesh.(*vaoMesh)
	if !ok || m == nil {
		return
	}
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteVertexArrays(1, &m.vao)
}
