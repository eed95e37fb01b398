package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/braheezy/gl-tut/config"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeRecorder struct {
	closed int
}

func (c *closeRecorder) Close() { c.closed++ }

func TestInputEscapeCloses(t *testing.T) {
	c := &closeRecorder{}
	in := &input{display: c}

	in.onKey(glfw.KeyEscape, glfw.Release)
	assert.Equal(t, 0, c.closed)
	in.onKey(glfw.KeyEscape, glfw.Press)
	assert.Equal(t, 1, c.closed)
}

func TestInputSnapshotOnce(t *testing.T) {
	in := &input{display: &closeRecorder{}}

	assert.False(t, in.takeSnapshot())
	in.onKey(glfw.KeyF2, glfw.Repeat)
	assert.False(t, in.takeSnapshot())
	in.onKey(glfw.KeyF2, glfw.Press)
	assert.True(t, in.takeSnapshot())
	assert.False(t, in.takeSnapshot())
}

func TestTriangleVertices(t *testing.T) {
	assert.Len(t, triangle, 9)
}

func TestLoadConfigDefault(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestExampleConfig(t *testing.T) {
	cfg, err := loadConfig("gltut.yaml")
	require.NoError(t, err)
	assert.FileExists(t, cfg.Shader.Vertex)
	assert.FileExists(t, cfg.Shader.Fragment)
}

func TestLoadShaderFromFiles(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "a.vert")
	frag := filepath.Join(dir, "a.frag")
	require.NoError(t, os.WriteFile(vert, []byte("v"), 0o644))
	require.NoError(t, os.WriteFile(frag, []byte("f"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s, err := loadShader(ctx, config.ShaderCfg{Vertex: vert, Fragment: frag, Watch: true})
	require.NoError(t, err)
	assert.Len(t, s.FileSources(), 2)

	_, err = loadShader(ctx, config.ShaderCfg{Vertex: filepath.Join(dir, "nope"), Fragment: frag})
	assert.Error(t, err)

	builtin, err := loadShader(ctx, config.ShaderCfg{})
	require.NoError(t, err)
	assert.Empty(t, builtin.FileSources())
}
