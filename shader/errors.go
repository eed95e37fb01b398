package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var ErrUnknownUniform = errors.New("name does not correspond to an active uniform variable")

// Stage is a GL shader type such as gl.VERTEX_SHADER.
type Stage uint32

const (
	VertexStage   Stage = gl.VERTEX_SHADER
	FragmentStage Stage = gl.FRAGMENT_SHADER
	GeometryStage Stage = gl.GEOMETRY_SHADER
	// GL 4.3 enum, not part of the 4.1 bindings
	ComputeStage Stage = 0x91B9
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "VertexShader"
	case FragmentStage:
		return "FragmentShader"
	case GeometryStage:
		return "GeometryShader"
	case ComputeStage:
		return "ComputeShader"
	default:
		return "unsupported shader type"
	}
}

// CompileError carries the driver's info log for a shader that failed to
// compile.
type CompileError struct {
	Stage  Stage
	Source string
	Log    string
}

func (e *CompileError) Error() string {
	log := cleanLog(e.Log)
	if log == "" {
		return fmt.Sprintf("shader %s: compilation failed", e.Stage)
	}
	return fmt.Sprintf("shader %s: compilation failed: %s", e.Stage, log)
}

// LinkError carries the driver's info log for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	log := cleanLog(e.Log)
	if log == "" {
		return "shader program: link failed"
	}
	return "shader program: link failed: " + log
}

// cleanLog drops the NUL terminator GL writes and surrounding whitespace.
func cleanLog(log string) string {
	if i := strings.IndexByte(log, 0); i >= 0 {
		log = log[:i]
	}
	return strings.TrimSpace(log)
}
