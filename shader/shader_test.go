package shader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/braheezy/gl-tut/metrics"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageString(t *testing.T) {
	assert.Equal(t, "VertexShader", VertexStage.String())
	assert.Equal(t, "FragmentShader", FragmentStage.String())
	assert.Equal(t, "GeometryShader", GeometryStage.String())
	assert.Equal(t, "ComputeShader", ComputeStage.String())
	assert.Equal(t, "unsupported shader type", Stage(gl.TEXTURE_2D).String())
}

func TestCompileErrorMessage(t *testing.T) {
	err := &CompileError{
		Stage: FragmentStage,
		Log:   "0:3(1): error: syntax error, unexpected '}'\n\x00\x00",
	}
	assert.Equal(t, "shader FragmentShader: compilation failed: 0:3(1): error: syntax error, unexpected '}'", err.Error())

	empty := &CompileError{Stage: VertexStage, Log: "\x00"}
	assert.Equal(t, "shader VertexShader: compilation failed", empty.Error())
}

func TestLinkErrorMessage(t *testing.T) {
	assert.Equal(t, "shader program: link failed: missing main", (&LinkError{Log: "missing main\n\x00"}).Error())
	assert.Equal(t, "shader program: link failed", (&LinkError{}).Error())
}

func TestStringSource(t *testing.T) {
	s := NewStringSource("inline.vert", "void main() {}")
	src, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, "void main() {}", src)
	assert.Equal(t, "inline.vert", s.Name())
	assert.False(t, s.Changed())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.frag")
	writeFile(t, path, "one")

	s, err := NewFileSource(path)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(s.Name()))

	src, err := s.Read()
	require.NoError(t, err)
	assert.Equal(t, "one", src)
	assert.False(t, s.Changed())

	writeFile(t, path, "two")
	s.MarkChanged()
	assert.True(t, s.Changed())
	src, err = s.Read()
	require.NoError(t, err)
	assert.Equal(t, "two", src)
	assert.False(t, s.Changed())
}

func TestFileSourceMissing(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.vert"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchMarksChanged(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "basic.vert")
	frag := filepath.Join(dir, "basic.frag")
	writeFile(t, vert, "v")
	writeFile(t, frag, "f")

	s, err := NewBasicShaderFromFiles(vert, frag)
	require.NoError(t, err)
	files := s.FileSources()
	require.Len(t, files, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, Watch(ctx, files...))

	assert.False(t, s.Changed())
	writeFile(t, frag, "f2")

	assert.Eventually(t, s.Changed, 2*time.Second, 10*time.Millisecond)
	assert.False(t, files[0].Changed())
}

func TestWatchMissingDir(t *testing.T) {
	s := &FileSource{path: filepath.Join(t.TempDir(), "gone", "x.vert")}
	assert.Error(t, Watch(context.Background(), s))
}

func TestBasicShaderBuiltinSources(t *testing.T) {
	s := NewBasicShader()

	assert.Empty(t, s.FileSources())
	assert.False(t, s.Changed())
	assert.Equal(t, int32(-1), s.colorLocation)

	vertex, err := s.vertex.Read()
	require.NoError(t, err)
	assert.Contains(t, vertex, "layout (location = 0) in vec3 position;")
	fragment, err := s.fragment.Read()
	require.NoError(t, err)
	assert.Contains(t, fragment, "uniform vec3 in_color;")
	assert.Contains(t, fragment, "uniform float time;")
}

type failingDefinition struct {
	err   error
	calls int
}

func (d *failingDefinition) Init(*Program) error                    { d.calls++; return d.err }
func (d *failingDefinition) BindAllAttributeLocations(*Program)     {}
func (d *failingDefinition) LoadAllUniformLocations(*Program) error { return nil }

func TestStartReturnsFirstBuildError(t *testing.T) {
	want := &CompileError{Stage: VertexStage, Log: "bad"}
	def := &failingDefinition{err: want}
	p := NewProgram(def)
	failed := testutil.ToFloat64(metrics.ShaderBuilds.WithLabelValues("failed"))

	err := p.Start()
	var compileErr *CompileError
	require.True(t, errors.As(err, &compileErr))
	assert.Equal(t, VertexStage, compileErr.Stage)
	assert.False(t, p.Initialized())
	assert.Equal(t, uint32(0), p.ID())

	// still uninitialised, so the next Start tries again
	assert.Error(t, p.Start())
	assert.Equal(t, 2, def.calls)
	assert.Equal(t, failed+2, testutil.ToFloat64(metrics.ShaderBuilds.WithLabelValues("failed")))
}

func TestDeleteUnbuiltProgram(t *testing.T) {
	p := NewProgram(&failingDefinition{})
	p.Delete()
	assert.False(t, p.Initialized())
}

func TestSetUniformUnsupported(t *testing.T) {
	p := NewProgram(&failingDefinition{})
	err := p.SetUniform(0, "red")
	assert.EqualError(t, err, "unsupported uniform type string")
}
