package config

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-gl/mathgl/mgl32"
	yaml "github.com/goccy/go-yaml"
)

type Config struct {
	Window  WindowCfg
	Render  RenderCfg
	Shader  ShaderCfg
	Model   ModelCfg
	Metrics MetricsCfg
}

type WindowCfg struct {
	Title       string
	Width       int
	Height      int
	GLMajor     int  `yaml:"gl_major"`
	GLMinor     int  `yaml:"gl_minor"`
	Resizable   bool
	Visible     bool
	Focused     bool
	AutoIconify bool `yaml:"auto_iconify"`
	Floating    bool
	VSync       bool `yaml:"vsync"`
}

type RenderCfg struct {
	ClearColour string     `yaml:"clear_colour"`
	BaseColour  [3]float32 `yaml:"base_colour"`
	Wireframe   bool
	DepthTest   bool `yaml:"depth_test"`
}

// ShaderCfg points at GLSL files to use instead of the built-in sources.
// Both paths must be set, or neither.
type ShaderCfg struct {
	Vertex   string
	Fragment string
	Watch    bool
}

type ModelCfg struct {
	// Path to a Wavefront OBJ file; the built-in triangle is used when empty.
	Path string
}

type MetricsCfg struct {
	Listen string
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Window: WindowCfg{
			Title:       "GL Tutorial",
			Width:       1024,
			Height:      768,
			GLMajor:     3,
			GLMinor:     3,
			Resizable:   true,
			Visible:     true,
			Focused:     true,
			AutoIconify: true,
			VSync:       true,
		},
		Render: RenderCfg{
			ClearColour: "#334d4dff",
			BaseColour:  [3]float32{4.0, 0.4, 0.2},
			DepthTest:   true,
		},
		Shader: ShaderCfg{Watch: true},
	}
}

// Parse reads filename on top of Default and validates the result. Relative
// shader and model paths are resolved against the config file's directory.
func Parse(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}

	cfg, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	cfg.resolvePaths(filepath.Dir(absFilename))
	return cfg, nil
}

// Decode parses YAML data on top of Default and validates the result.
func Decode(data []byte) (*Config, error) {
	cfg := Default()
	m := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
	if err := m.Decode(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.Shader.Vertex, &c.Shader.Fragment, &c.Model.Path} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

func (c *Config) Validate() error {
	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("window size %dx%d is invalid", c.Window.Width, c.Window.Height)
	}
	if c.Window.GLMajor < 3 || (c.Window.GLMajor == 3 && c.Window.GLMinor < 3) {
		return fmt.Errorf("OpenGL %d.%d is too old, at least 3.3 is needed", c.Window.GLMajor, c.Window.GLMinor)
	}
	if c.Window.GLMinor < 0 {
		return fmt.Errorf("gl_minor must not be negative")
	}
	if !ColourValidate(c.Render.ClearColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.Render.ClearColour)
	}
	if (c.Shader.Vertex == "") != (c.Shader.Fragment == "") {
		return fmt.Errorf("shader needs both a vertex and a fragment file")
	}
	return nil
}

// BaseColourVec returns the colour handed to the shader's in_color uniform.
func (r *RenderCfg) BaseColourVec() mgl32.Vec3 {
	return mgl32.Vec3(r.BaseColour)
}

// ClearRGBA returns the clear colour as normalised floats.
func (r *RenderCfg) ClearRGBA() (float32, float32, float32, float32) {
	c := ColourParse(r.ClearColour)
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

var colourPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{8}$`)

func ColourValidate(c string) bool {
	return colourPattern.MatchString(c)
}

func ColourParse(s string) (c color.RGBA) {
	fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	return
}
