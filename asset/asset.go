// Package asset implements the engine's layered, content-addressable asset
// loader: an abstract byte source composed from multiple overlay layers,
// and a typed cache in front of it that deduplicates concurrent loads for
// the same (type, path, args) key.
package asset

import (
	"fmt"
	"io"
	"io/fs"
)

// Io is an abstract byte source keyed by "/"-separated paths, independent
// of whether the backing store is a loose directory, a ROM archive, or
// something else entirely.
type Io interface {
	// Open returns a reader for the file at path, or an error satisfying
	// errors.Is(err, fs.ErrNotExist) if it isn't present in this layer.
	Open(path string) (io.ReadCloser, error)
	// Exists reports whether path is present in this layer, without
	// opening it.
	Exists(path string) bool
}

// DirIo is an Io backed by a loose directory on disk.
type DirIo struct {
	fsys fs.FS
}

// NewDirIo wraps an fs.FS (typically os.DirFS(root)) as an Io layer.
func NewDirIo(fsys fs.FS) *DirIo {
	return &DirIo{fsys: fsys}
}

func (d *DirIo) Open(path string) (io.ReadCloser, error) {
	f, err := d.fsys.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (d *DirIo) Exists(path string) bool {
	f, err := d.fsys.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// LayeredIo composes several Io layers: a path resolves against the first
// layer (in order) that contains it, letting earlier layers act as patch
// overlays that shadow later ones. Layer 0 therefore has the highest
// priority.
type LayeredIo struct {
	layers []Io
}

// NewLayeredIo builds a LayeredIo from layers in priority order, layers[0]
// winning ties.
func NewLayeredIo(layers ...Io) *LayeredIo {
	return &LayeredIo{layers: layers}
}

func (l *LayeredIo) Open(path string) (io.ReadCloser, error) {
	for _, layer := range l.layers {
		if layer.Exists(path) {
			return layer.Open(path)
		}
	}
	return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
}

func (l *LayeredIo) Exists(path string) bool {
	for _, layer := range l.layers {
		if layer.Exists(path) {
			return true
		}
	}
	return false
}

// ReadAll is a convenience that opens path and reads it fully.
func ReadAll(io Io, path string) ([]byte, error) {
	r, err := io.Open(path)
	if err != nil {
		return nil, fmt.Errorf("asset: open %s: %w", path, err)
	}
	defer r.Close()
	data, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("asset: read %s: %w", path, err)
	}
	return data, nil
}

func readAll(r io.Reader) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, 32*1024)
	for {
		n, err := r.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err == io.EOF {
			return buf, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
