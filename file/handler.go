// Package file binds the codec to an import/export surface.
//
// The host environment that prompts for file names, owns the clipboard,
// or mediates plugin storage is external to the codec; this package only
// defines the contract it plugs into. A Handler is an explicit value
// passed to each call, never a process-wide singleton, so independent
// hosts can coexist in one process.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arloliu/vpack"
	"github.com/arloliu/vpack/format"
	"github.com/arloliu/vpack/value"
)

// ErrBinaryPayload reports a Level-3 payload routed at a text-only sink.
// Level-3 output contains arbitrary bytes and is not safe to embed in a
// text transport.
var ErrBinaryPayload = errors.New("file: level 3 payload is not text-safe")

// Sink stores and retrieves named payloads. Implementations decide what a
// name means (path, clipboard slot, plugin storage key).
type Sink interface {
	Store(name string, data []byte) error
	Fetch(name string) ([]byte, error)
}

// TextSink marks sinks that can only carry text. Handlers refuse Level-3
// payloads for sinks implementing it with TextOnly() == true.
type TextSink interface {
	Sink
	TextOnly() bool
}

// Handler wraps a sink with compress-and-save / load-and-decompress
// semantics.
type Handler struct {
	sink Sink
}

// NewHandler creates a handler over the given sink.
func NewHandler(sink Sink) *Handler {
	return &Handler{sink: sink}
}

// Save compresses v at the given level and stores it under name.
// A text-only sink rejects Level 3 before any bytes are produced.
func (h *Handler) Save(name string, v *value.Value, level format.Level, opts ...vpack.Option) error {
	if level == format.LevelEntropy {
		if ts, ok := h.sink.(TextSink); ok && ts.TextOnly() {
			return ErrBinaryPayload
		}
	}

	data, err := vpack.Compress(v, level, opts...)
	if err != nil {
		return fmt.Errorf("compress %q: %w", name, err)
	}
	if err := h.sink.Store(name, data); err != nil {
		return fmt.Errorf("store %q: %w", name, err)
	}

	return nil
}

// Load fetches the payload stored under name and decompresses it.
func (h *Handler) Load(name string, opts ...vpack.Option) (*value.Value, error) {
	data, err := h.sink.Fetch(name)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", name, err)
	}
	v, err := vpack.Decompress(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("decompress %q: %w", name, err)
	}

	return v, nil
}

// OSSink stores payloads as files relative to a base directory. It
// accepts binary payloads.
type OSSink struct {
	Dir string
}

// Store writes data to Dir/name with 0644 permissions.
func (s OSSink) Store(name string, data []byte) error {
	return os.WriteFile(s.path(name), data, 0o644)
}

// Fetch reads Dir/name.
func (s OSSink) Fetch(name string) ([]byte, error) {
	return os.ReadFile(s.path(name))
}

func (s OSSink) path(name string) string {
	if s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}
