package display

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/braheezy/gl-tut/config"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	DefaultWidth   = 1024
	DefaultHeight  = 768
	DefaultGLMajor = 3
	DefaultGLMinor = 3
	DefaultTitle   = "Untitled"
)

// Manager collects window creation settings and builds a Display from them.
// GLFW must be initialised before Build is called.
type Manager struct {
	title  string
	width  int
	height int
	vsync  bool
	hints  map[glfw.Hint]int

	window  *glfw.Window
	display *Display
	log     *slog.Logger
}

func NewManager() *Manager {
	m := &Manager{log: slog.With("module", "display")}
	m.Reset()
	return m
}

// Reset restores the default size, title and window hints. A display that
// was already built is left alone.
func (m *Manager) Reset() *Manager {
	m.hints = make(map[glfw.Hint]int)
	m.SetGLContextVersion(DefaultGLMajor, DefaultGLMinor)
	// core profiles need forward compatibility on macOS
	m.SetWindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	m.SetWindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	m.width = DefaultWidth
	m.height = DefaultHeight
	m.title = DefaultTitle
	m.vsync = false
	return m
}

func (m *Manager) SetTitle(title string) *Manager {
	m.title = title
	return m
}

func (m *Manager) SetWidth(width int) *Manager {
	m.width = width
	return m
}

func (m *Manager) SetHeight(height int) *Manager {
	m.height = height
	return m
}

func (m *Manager) SetGLContextVersion(major, minor int) *Manager {
	m.SetWindowHint(glfw.ContextVersionMajor, major)
	m.SetWindowHint(glfw.ContextVersionMinor, minor)
	return m
}

func (m *Manager) SetResizable(resizable bool) *Manager {
	return m.ToggleWindowHint(glfw.Resizable, resizable)
}

func (m *Manager) SetVisible(visible bool) *Manager {
	return m.ToggleWindowHint(glfw.Visible, visible)
}

func (m *Manager) SetFocused(focused bool) *Manager {
	return m.ToggleWindowHint(glfw.Focused, focused)
}

func (m *Manager) EnableAutoIconify(enabled bool) *Manager {
	return m.ToggleWindowHint(glfw.AutoIconify, enabled)
}

func (m *Manager) EnableFloating(enabled bool) *Manager {
	return m.ToggleWindowHint(glfw.Floating, enabled)
}

// SetVSync chooses whether buffer swaps wait for the monitor refresh.
func (m *Manager) SetVSync(enabled bool) *Manager {
	m.vsync = enabled
	return m
}

func (m *Manager) SetWindowHint(hint glfw.Hint, value int) *Manager {
	m.hints[hint] = value
	return m
}

// ToggleWindowHint stores an explicit GLFW true or false for a boolean hint.
func (m *Manager) ToggleWindowHint(hint glfw.Hint, on bool) *Manager {
	if on {
		return m.SetWindowHint(hint, glfw.True)
	}
	return m.SetWindowHint(hint, glfw.False)
}

// Hint returns the stored value of a hint.
func (m *Manager) Hint(hint glfw.Hint) (int, bool) {
	v, ok := m.hints[hint]
	return v, ok
}

// Hints returns a copy of all stored hints.
func (m *Manager) Hints() map[glfw.Hint]int {
	return maps.Clone(m.hints)
}

// FromConfig applies a config window section.
func (m *Manager) FromConfig(cfg config.WindowCfg) *Manager {
	return m.SetTitle(cfg.Title).
		SetWidth(cfg.Width).
		SetHeight(cfg.Height).
		SetGLContextVersion(cfg.GLMajor, cfg.GLMinor).
		SetResizable(cfg.Resizable).
		SetVisible(cfg.Visible).
		SetFocused(cfg.Focused).
		EnableAutoIconify(cfg.AutoIconify).
		EnableFloating(cfg.Floating).
		SetVSync(cfg.VSync)
}

// Display returns the display built last, or nil.
func (m *Manager) Display() *Display {
	return m.display
}

// Build creates the window, makes its context current and loads the OpenGL
// function pointers. The builder is reset afterwards so it can describe
// another window once this one is cleaned.
func (m *Manager) Build() (*Display, error) {
	if m.display != nil {
		return nil, &Error{Op: "build", Err: ErrAlreadyBuilt}
	}

	glfw.DefaultWindowHints()
	// apply in a stable order so runs are reproducible
	for _, hint := range slices.Sorted(maps.Keys(m.hints)) {
		glfw.WindowHint(hint, m.hints[hint])
	}

	m.log.Debug("creating window", "title", m.title, "width", m.width, "height", m.height)
	window, err := glfw.CreateWindow(m.width, m.height, m.title, nil, nil)
	if err != nil {
		return nil, &Error{Op: "create window", Err: err}
	}
	if window == nil {
		return nil, &Error{Op: "create window", Err: ErrNoWindow}
	}

	display := newDisplay(window, m.title)
	display.Enable()

	if err := gl.Init(); err != nil {
		display.Disable()
		window.Destroy()
		return nil, &Error{Op: "load OpenGL", Err: err}
	}
	if m.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	vendor := gl.GoStr(gl.GetString(gl.VENDOR))
	renderer := gl.GoStr(gl.GetString(gl.RENDERER))
	version := gl.GoStr(gl.GetString(gl.VERSION))
	m.log.Info("OpenGL ready", "vendor", vendor, "renderer", renderer, "version", version)

	m.window = window
	m.display = display
	m.Reset()
	return display, nil
}

// Clean releases the display and its window, then resets the builder.
func (m *Manager) Clean() {
	m.Reset()

	if m.display != nil {
		m.display.Disable()
		m.display = nil
	}
	if m.window != nil {
		m.window.Destroy()
		m.window = nil
	}
}
