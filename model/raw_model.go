package model

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	// PositionSlot is the attribute location vertex positions are bound to.
	PositionSlot = 0
	// floats per vertex
	positionSize = 3
)

var ErrBadVertexData = errors.New("vertex data must hold a non-zero multiple of 3 floats")

// RawModel is a vertex array of positions on the GPU, drawn as triangles.
type RawModel struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// LoadFromFloatArray uploads tightly packed xyz positions and returns a
// model ready to render.
func LoadFromFloatArray(vertices []float32) (*RawModel, error) {
	count, err := vertexCount(vertices)
	if err != nil {
		return nil, err
	}

	m := &RawModel{vertexCount: count}
	gl.GenBuffers(1, &m.vbo)
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	// STATIC_DRAW: the data is set only once and used many times.
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(unsafe.Sizeof(vertices[0])), gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(PositionSlot, positionSize, gl.FLOAT, false, positionSize*int32(unsafe.Sizeof(float32(0))), 0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return m, nil
}

func vertexCount(vertices []float32) (int32, error) {
	if len(vertices) == 0 || len(vertices)%positionSize != 0 {
		return 0, fmt.Errorf("%w: got %d", ErrBadVertexData, len(vertices))
	}
	return int32(len(vertices) / positionSize), nil
}

// Render draws the model with whatever program is in use.
func (m *RawModel) Render() {
	gl.BindVertexArray(m.vao)
	gl.EnableVertexAttribArray(PositionSlot)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
	gl.DisableVertexAttribArray(PositionSlot)
	gl.BindVertexArray(0)
}

func (m *RawModel) VAO() uint32 {
	return m.vao
}

func (m *RawModel) VertexCount() int32 {
	return m.vertexCount
}

// Delete frees the vertex array and its buffer. Calling it again is a no-op.
func (m *RawModel) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
}
