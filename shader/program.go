package shader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/braheezy/gl-tut/metrics"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Definition supplies the parts of a program that differ per shader: where
// its sources come from, which attribute slots it binds and which uniform
// locations it caches.
type Definition interface {
	// Init builds the program, normally by calling p.CompileAndLink.
	Init(p *Program) error
	// BindAllAttributeLocations runs between attaching and linking.
	BindAllAttributeLocations(p *Program)
	// LoadAllUniformLocations runs after a successful link.
	LoadAllUniformLocations(p *Program) error
}

// changer is implemented by definitions whose sources can change at runtime.
type changer interface {
	Changed() bool
}

// Program is a linked GL shader program built lazily from a Definition.
type Program struct {
	id          uint32
	def         Definition
	initialized bool
	log         *slog.Logger
}

func NewProgram(def Definition) *Program {
	return &Program{
		def: def,
		log: slog.With("module", "shader"),
	}
}

// ID returns the GL program name, 0 before the first successful build.
func (p *Program) ID() uint32 {
	return p.id
}

func (p *Program) Initialized() bool {
	return p.initialized
}

// Start builds the program on first use, or again when its sources changed,
// then installs it for rendering. A failed rebuild keeps the previous
// program; a failed first build is returned.
func (p *Program) Start() error {
	if !p.initialized || p.changed() {
		err := p.def.Init(p)
		metrics.ShaderBuilt(err)
		if err != nil {
			if p.id == 0 {
				return err
			}
			p.log.Error("rebuild failed, keeping previous program", "err", err)
		} else if p.initialized {
			p.log.Info("program rebuilt", "id", p.id)
		}
		p.initialized = true
	}
	gl.UseProgram(p.id)
	return nil
}

func (p *Program) changed() bool {
	c, ok := p.def.(changer)
	return ok && c.Changed()
}

// Stop uninstalls any program.
func (p *Program) Stop() {
	gl.UseProgram(0)
}

// Delete frees the GL program. The next Start builds it again.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
	p.initialized = false
}

// CompileAndLink compiles both stages, links them into a new program and
// replaces the current one with it. On error the current program stays.
func (p *Program) CompileAndLink(vertexSrc, fragmentSrc string) error {
	vertexShader, err := compileShader(VertexStage, vertexSrc)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(FragmentStage, fragmentSrc)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)

	previous := p.id
	p.id = program
	fail := func(err error) error {
		gl.DeleteProgram(program)
		p.id = previous
		return err
	}

	// attribute bindings only take effect at link time
	p.def.BindAllAttributeLocations(p)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		return fail(&LinkError{Log: programInfoLog(program)})
	}

	gl.ValidateProgram(program)
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		p.log.Warn("program validation failed", "log", cleanLog(programInfoLog(program)))
	}

	if err := p.def.LoadAllUniformLocations(p); err != nil {
		return fail(err)
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	if previous != 0 {
		gl.DeleteProgram(previous)
	}
	p.log.Debug("program linked", "id", program)
	return nil
}

func compileShader(stage Stage, source string) (uint32, error) {
	shader := gl.CreateShader(uint32(stage))
	if shader == 0 {
		return 0, fmt.Errorf("could not create %s: invalid shader type 0x%x", stage, uint32(stage))
	}

	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		clog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(clog))
		gl.DeleteShader(shader)

		return 0, &CompileError{Stage: stage, Source: source, Log: clog}
	}

	return shader, nil
}

func programInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

	logmsg := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logmsg))
	return logmsg
}

// BindAttributeLocation assigns a vertex attribute name to a slot. It only
// has an effect when called from BindAllAttributeLocations.
func (p *Program) BindAttributeLocation(name string, slot uint32) {
	gl.BindAttribLocation(p.id, slot, gl.Str(name+"\x00"))
}

// UniformLocation looks up an active uniform of the linked program.
func (p *Program) UniformLocation(name string) (int32, error) {
	location := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if location == -1 {
		return -1, fmt.Errorf("%q: %w", name, ErrUnknownUniform)
	}
	return location, nil
}
