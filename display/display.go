package display

import (
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	// smallest size SetSize will give the window
	minWindowSize = 1
	// smallest viewport kept while the user drags the window
	minViewportSize = 10
)

// window is the part of *glfw.Window a Display drives.
type window interface {
	GetSize() (int, int)
	SetSize(width, height int)
	GetFramebufferSize() (int, int)
	SetTitle(title string)
	MakeContextCurrent()
	SetFramebufferSizeCallback(cb glfw.FramebufferSizeCallback) glfw.FramebufferSizeCallback
	SetKeyCallback(cb glfw.KeyCallback) glfw.KeyCallback
	SwapBuffers()
	ShouldClose() bool
	SetShouldClose(value bool)
}

// GLFW and GL entry points that are not methods on the window.
var (
	pollEvents           = glfw.PollEvents
	detachCurrentContext = glfw.DetachCurrentContext
	viewport             = func(width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
	}
)

// Display wraps a GLFW window and its OpenGL context.
type Display struct {
	window window
	title  string
	log    *slog.Logger
}

func newDisplay(w window, title string) *Display {
	return &Display{
		window: w,
		title:  title,
		log:    slog.With("module", "display"),
	}
}

// ShouldClose reports whether the user asked to close the window.
func (d *Display) ShouldClose() bool {
	return d.window.ShouldClose()
}

// Close asks the render loop to stop.
func (d *Display) Close() {
	d.window.SetShouldClose(true)
}

// Update shows the frame that was just rendered and processes pending events.
func (d *Display) Update() {
	d.window.SwapBuffers()
	pollEvents()
}

func (d *Display) Title() string {
	return d.title
}

func (d *Display) SetTitle(title string) *Display {
	d.title = title
	d.window.SetTitle(title)
	return d
}

// Width returns the window width in screen coordinates.
func (d *Display) Width() int {
	width, _ := d.window.GetSize()
	return width
}

// Height returns the window height in screen coordinates.
func (d *Display) Height() int {
	_, height := d.window.GetSize()
	return height
}

func (d *Display) Size() (int, int) {
	return d.window.GetSize()
}

func (d *Display) SetWidth(width int) *Display {
	return d.SetSize(width, d.Height())
}

func (d *Display) SetHeight(height int) *Display {
	return d.SetSize(d.Width(), height)
}

// SetSize resizes the window and the GL viewport. Both dimensions are
// clamped to at least one pixel.
func (d *Display) SetSize(width, height int) *Display {
	width = max(width, minWindowSize)
	height = max(height, minWindowSize)
	d.window.SetSize(width, height)
	viewport(width, height)
	return d
}

// Enable makes this display the current OpenGL context and keeps the
// viewport in sync with the framebuffer while it is resized.
func (d *Display) Enable() {
	d.window.MakeContextCurrent()
	viewport(d.window.GetFramebufferSize())
	d.window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		viewport(max(width, minViewportSize), max(height, minViewportSize))
	})
	d.log.Debug("context enabled", "title", d.title)
}

// Disable detaches the OpenGL context from this display.
func (d *Display) Disable() {
	d.window.SetFramebufferSizeCallback(nil)
	detachCurrentContext()
}

// OnKey registers fn to receive key presses, repeats and releases. A nil fn
// removes the handler.
func (d *Display) OnKey(fn func(key glfw.Key, action glfw.Action)) {
	if fn == nil {
		d.window.SetKeyCallback(nil)
		return
	}
	d.window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		fn(key, action)
	})
}
