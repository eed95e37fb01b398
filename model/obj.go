package model

import (
	"fmt"
	"log/slog"

	"github.com/udhos/gwob"
)

// LoadFromFile uploads the triangle positions of a Wavefront OBJ file.
// Normals, texture coordinates and materials are ignored.
func LoadFromFile(path string) (*RawModel, error) {
	obj, err := gwob.NewObjFromFile(path, parserOptions(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load OBJ model %s: %w", path, err)
	}
	vertices, err := positions(obj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("OBJ model parsed", "module", "model", "path", path, "vertices", len(vertices)/positionSize, "groups", len(obj.Groups))
	return LoadFromFloatArray(vertices)
}

func parserOptions(name string) *gwob.ObjParserOptions {
	return &gwob.ObjParserOptions{
		Logger: func(msg string) {
			slog.Debug(msg, "module", "model", "obj", name)
		},
	}
}

// positions flattens the indexed OBJ geometry into one xyz triple per
// triangle corner, in draw order.
func positions(obj *gwob.Obj) ([]float32, error) {
	out := make([]float32, 0, len(obj.Indices)*positionSize)
	for _, index := range obj.Indices {
		// strides and offsets are in bytes
		offset := (index*obj.StrideSize + obj.StrideOffsetPosition) / 4
		if offset+2 >= len(obj.Coord) {
			return nil, fmt.Errorf("vertex index %d is out of range", index)
		}
		out = append(out, obj.Coord[offset], obj.Coord[offset+1], obj.Coord[offset+2])
	}
	if len(out) == 0 {
		return nil, ErrBadVertexData
	}
	return out, nil
}
