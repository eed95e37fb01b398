package shader

import (
	_ "embed"

	"github.com/braheezy/gl-tut/model"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	//go:embed glsl/basic.vert
	basicVertexSource string
	//go:embed glsl/basic.frag
	basicFragmentSource string
)

// BasicShader spins the model around the origin and tints it with a colour
// that pulses over time.
type BasicShader struct {
	*Program

	vertex   Source
	fragment Source

	colorLocation int32
	timeLocation  int32
}

// NewBasicShader uses the built-in GLSL sources. Nothing touches GL until
// the first Start.
func NewBasicShader() *BasicShader {
	return newBasicShader(
		NewStringSource("basic.vert", basicVertexSource),
		NewStringSource("basic.frag", basicFragmentSource),
	)
}

// NewBasicShaderFromFiles reads its sources from disk. The files must
// declare the same position attribute and in_color/time uniforms as the
// built-in ones.
func NewBasicShaderFromFiles(vertexPath, fragmentPath string) (*BasicShader, error) {
	vertex, err := NewFileSource(vertexPath)
	if err != nil {
		return nil, err
	}
	fragment, err := NewFileSource(fragmentPath)
	if err != nil {
		return nil, err
	}
	return newBasicShader(vertex, fragment), nil
}

func newBasicShader(vertex, fragment Source) *BasicShader {
	s := &BasicShader{
		vertex:        vertex,
		fragment:      fragment,
		colorLocation: -1,
		timeLocation:  -1,
	}
	s.Program = NewProgram(s)
	return s
}

func (s *BasicShader) Init(p *Program) error {
	vertexSrc, err := s.vertex.Read()
	if err != nil {
		return err
	}
	fragmentSrc, err := s.fragment.Read()
	if err != nil {
		return err
	}
	return p.CompileAndLink(vertexSrc, fragmentSrc)
}

func (s *BasicShader) BindAllAttributeLocations(p *Program) {
	p.BindAttributeLocation("position", model.PositionSlot)
}

func (s *BasicShader) LoadAllUniformLocations(p *Program) error {
	color, err := p.UniformLocation("in_color")
	if err != nil {
		return err
	}
	time, err := p.UniformLocation("time")
	if err != nil {
		return err
	}
	s.colorLocation, s.timeLocation = color, time
	return nil
}

// Changed reports whether either source file was modified since it was
// last compiled.
func (s *BasicShader) Changed() bool {
	return s.vertex.Changed() || s.fragment.Changed()
}

// FileSources returns the sources that live on disk, for Watch.
func (s *BasicShader) FileSources() []*FileSource {
	var files []*FileSource
	for _, src := range []Source{s.vertex, s.fragment} {
		if f, ok := src.(*FileSource); ok {
			files = append(files, f)
		}
	}
	return files
}

// LoadColor sets the base colour. The shader must be started.
func (s *BasicShader) LoadColor(color mgl32.Vec3) {
	s.SetVec3(s.colorLocation, color)
}

// UpdateTimer loads the current time that drives rotation and pulsing.
func (s *BasicShader) UpdateTimer() {
	s.SetCurrentTime(s.timeLocation)
}
