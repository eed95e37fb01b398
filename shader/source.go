package shader

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
)

// Source provides the GLSL text of one shader stage.
type Source interface {
	Name() string
	Read() (string, error)
	// Changed reports whether Read would return something new.
	Changed() bool
}

// StringSource is GLSL held in memory. It never changes.
type StringSource struct {
	name   string
	source string
}

func NewStringSource(name, source string) *StringSource {
	return &StringSource{name: name, source: source}
}

func (s *StringSource) Name() string          { return s.name }
func (s *StringSource) Read() (string, error) { return s.source, nil }
func (s *StringSource) Changed() bool         { return false }

// FileSource is GLSL read from disk. It is marked changed by Watch, or by
// MarkChanged, and cleared by Read.
type FileSource struct {
	path  string
	dirty atomic.Bool
}

// NewFileSource fails if path does not exist.
func NewFileSource(path string) (*FileSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("shader source: %w", err)
	}
	// watch events carry the resolved path
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return &FileSource{path: abs}, nil
}

// Name returns the absolute path of the file.
func (s *FileSource) Name() string {
	return s.path
}

func (s *FileSource) Read() (string, error) {
	s.dirty.Store(false)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("shader source: %w", err)
	}
	return string(data), nil
}

func (s *FileSource) Changed() bool {
	return s.dirty.Load()
}

func (s *FileSource) MarkChanged() {
	s.dirty.Store(true)
}
