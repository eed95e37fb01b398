package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// now is the clock behind SetCurrentTime, in seconds since GLFW started.
var now = glfw.GetTime

// The setters write to the program that is currently in use, so call them
// between Start and Stop.

func (p *Program) SetFloat(location int32, value float32) *Program {
	gl.Uniform1f(location, value)
	return p
}

func (p *Program) SetDouble(location int32, value float64) *Program {
	gl.Uniform1d(location, value)
	return p
}

func (p *Program) SetInt(location int32, value int32) *Program {
	gl.Uniform1i(location, value)
	return p
}

func (p *Program) SetUint(location int32, value uint32) *Program {
	gl.Uniform1ui(location, value)
	return p
}

func (p *Program) SetBool(location int32, value bool) *Program {
	var v0 int32
	if value {
		v0 = 1
	}
	return p.SetInt(location, v0)
}

func (p *Program) SetVec2(location int32, value mgl32.Vec2) *Program {
	gl.Uniform2fv(location, 1, &value[0])
	return p
}

func (p *Program) SetVec3(location int32, value mgl32.Vec3) *Program {
	gl.Uniform3fv(location, 1, &value[0])
	return p
}

func (p *Program) SetVec4(location int32, value mgl32.Vec4) *Program {
	gl.Uniform4fv(location, 1, &value[0])
	return p
}

func (p *Program) SetMat3(location int32, value mgl32.Mat3) *Program {
	gl.UniformMatrix3fv(location, 1, false, &value[0])
	return p
}

func (p *Program) SetMat4(location int32, value mgl32.Mat4) *Program {
	gl.UniformMatrix4fv(location, 1, false, &value[0])
	return p
}

// SetCurrentTime loads the GLFW clock as a float.
func (p *Program) SetCurrentTime(location int32) *Program {
	return p.SetFloat(location, float32(now()))
}

// SetUniform picks the setter matching the dynamic type of value.
func (p *Program) SetUniform(location int32, value any) error {
	switch v := value.(type) {
	case float32:
		p.SetFloat(location, v)
	case float64:
		p.SetDouble(location, v)
	case int32:
		p.SetInt(location, v)
	case int:
		p.SetInt(location, int32(v))
	case uint32:
		p.SetUint(location, v)
	case bool:
		p.SetBool(location, v)
	case mgl32.Vec2:
		p.SetVec2(location, v)
	case mgl32.Vec3:
		p.SetVec3(location, v)
	case mgl32.Vec4:
		p.SetVec4(location, v)
	case mgl32.Mat3:
		p.SetMat3(location, v)
	case mgl32.Mat4:
		p.SetMat4(location, v)
	default:
		return fmt.Errorf("unsupported uniform type %T", value)
	}
	return nil
}
