package main

import "github.com/go-gl/glfw/v3.3/glfw"

type closer interface {
	Close()
}

// input handles key presses for the render loop.
type input struct {
	display  closer
	snapshot bool
}

func (in *input) onKey(key glfw.Key, action glfw.Action) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape:
		in.display.Close()
	case glfw.KeyF2:
		in.snapshot = true
	}
}

// takeSnapshot reports and clears a pending snapshot request.
func (in *input) takeSnapshot() bool {
	requested := in.snapshot
	in.snapshot = false
	return requested
}
