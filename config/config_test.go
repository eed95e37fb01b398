package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.Equal(t, 3, cfg.Window.GLMajor)
	assert.Equal(t, 3, cfg.Window.GLMinor)
}

func TestDecodeKeepsDefaults(t *testing.T) {
	cfg, err := Decode([]byte(`
window:
  title: Triangle
  width: 640
render:
  clear_colour: "#000000ff"
`))
	require.NoError(t, err)

	assert.Equal(t, "Triangle", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.True(t, cfg.Window.VSync)
	assert.Equal(t, mgl32.Vec3{4.0, 0.4, 0.2}, cfg.Render.BaseColourVec())
}

func TestDecodeRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"zero width":      "window:\n  width: 0\n",
		"old gl":          "window:\n  gl_major: 2\n  gl_minor: 1\n",
		"bad colour":      "render:\n  clear_colour: red\n",
		"short colour":    "render:\n  clear_colour: \"#fff\"\n",
		"lonely vertex":   "shader:\n  vertex: a.vert\n",
		"unknown section": "camera:\n  fov: 45\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gltut.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
shader:
  vertex: shaders/basic.vert
  fragment: /abs/basic.frag
model:
  path: teapot.obj
`), 0o644))

	cfg, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shaders/basic.vert"), cfg.Shader.Vertex)
	assert.Equal(t, "/abs/basic.frag", cfg.Shader.Fragment)
	assert.Equal(t, filepath.Join(dir, "teapot.obj"), cfg.Model.Path)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestClearRGBA(t *testing.T) {
	r := RenderCfg{ClearColour: "#ff8000ff"}
	red, green, blue, alpha := r.ClearRGBA()
	assert.Equal(t, float32(1), red)
	assert.InDelta(t, 0.50196, green, 1e-4)
	assert.Equal(t, float32(0), blue)
	assert.Equal(t, float32(1), alpha)
}
