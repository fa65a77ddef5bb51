// Package rom reads the engine's archive container: a directory tree of
// named entries pointing at byte ranges in one backing file, indexed once
// and then served as stateless, concurrency-safe file handles.
package rom

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// IndexEntry describes one file reachable in the archive, addressed by its
// full `/`-joined path from the archive root.
type IndexEntry struct {
	Path   string
	Offset uint32
	Size   uint32
}

const entryTypeFile = 0
const entryTypeDir = 1

var magic = [4]byte{'R', 'O', 'M', '\x00'}

// Reader parses the archive header and directory tree once at Open time
// and serves files from the flattened result. A Reader is immutable after
// construction: OpenFile never mutates shared state, so multiple goroutines
// may call it concurrently against the same backing io.ReaderAt.
type Reader struct {
	backing io.ReaderAt
	files   []IndexEntry
	byPath  map[string]int
}

// Open parses the archive header and directory tree from backing.
func Open(backing io.ReaderAt) (*Reader, error) {
	// magic(4) + version(4) + index_offset(4) + file_data_offset(4).
	var header [16]byte
	if _, err := backing.ReadAt(header[:], 0); err != nil {
		return nil, fmt.Errorf("rom: read header: %w", err)
	}
	if !bytes.Equal(header[:4], magic[:]) {
		return nil, fmt.Errorf("rom: bad magic % x", header[:4])
	}
	version := binary.LittleEndian.Uint32(header[4:8])
	if version != 1 {
		return nil, fmt.Errorf("rom: unsupported version %d", version)
	}
	indexOffset := binary.LittleEndian.Uint32(header[8:12])

	p := &indexParser{backing: backing, pos: int64(indexOffset)}
	var files []IndexEntry
	if err := p.parseDir("", &files); err != nil {
		return nil, err
	}

	byPath := make(map[string]int, len(files))
	for i, f := range files {
		byPath[f.Path] = i
	}
	return &Reader{backing: backing, files: files, byPath: byPath}, nil
}

type indexParser struct {
	backing io.ReaderAt
	pos     int64
}

func (p *indexParser) readByte() (byte, error) {
	var b [1]byte
	if _, err := p.backing.ReadAt(b[:], p.pos); err != nil {
		return 0, err
	}
	p.pos++
	return b[0], nil
}

func (p *indexParser) readN(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := p.backing.ReadAt(buf, p.pos); err != nil {
		return nil, err
	}
	p.pos += int64(n)
	return buf, nil
}

func (p *indexParser) readU16() (uint16, error) {
	b, err := p.readN(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (p *indexParser) readU32() (uint32, error) {
	b, err := p.readN(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// parseDir reads one directory's entries at the parser's current position
// and recurses into sub-directories, appending every file entry found (with
// its full path) to out.
func (p *indexParser) parseDir(prefix string, out *[]IndexEntry) error {
	childCount, err := p.readU32()
	if err != nil {
		return fmt.Errorf("rom: read dir child count: %w", err)
	}
	childOffsets := make([]uint32, childCount)
	for i := range childOffsets {
		o, err := p.readU32()
		if err != nil {
			return fmt.Errorf("rom: read dir child offset: %w", err)
		}
		childOffsets[i] = o
	}
	for _, off := range childOffsets {
		child := &indexParser{backing: p.backing, pos: int64(off)}
		if err := child.parseEntry(prefix, out); err != nil {
			return err
		}
	}
	return nil
}

func (p *indexParser) parseEntry(prefix string, out *[]IndexEntry) error {
	typ, err := p.readByte()
	if err != nil {
		return fmt.Errorf("rom: read entry type: %w", err)
	}
	nameLen, err := p.readU16()
	if err != nil {
		return fmt.Errorf("rom: read name length: %w", err)
	}
	nameBytes, err := p.readN(int(nameLen))
	if err != nil {
		return fmt.Errorf("rom: read name: %w", err)
	}
	name := string(nameBytes)
	full := name
	if prefix != "" {
		full = prefix + "/" + name
	}

	switch typ {
	case entryTypeFile:
		dataOffset, err := p.readU32()
		if err != nil {
			return fmt.Errorf("rom: read file data offset: %w", err)
		}
		size, err := p.readU32()
		if err != nil {
			return fmt.Errorf("rom: read file size: %w", err)
		}
		*out = append(*out, IndexEntry{Path: full, Offset: dataOffset, Size: size})
		return nil
	case entryTypeDir:
		return p.parseDir(full, out)
	default:
		return fmt.Errorf("rom: invalid entry type %d", typ)
	}
}

// Traverse calls fn once per file entry, in DFS index order. fn's boolean
// return stops iteration early when false.
func (r *Reader) Traverse(fn func(IndexEntry) bool) {
	for _, e := range r.files {
		if !fn(e) {
			return
		}
	}
}

// FindFile looks up a file entry by its full `/`-joined archive path.
func (r *Reader) FindFile(path string) (IndexEntry, bool) {
	if i, ok := r.byPath[path]; ok {
		return r.files[i], true
	}
	return IndexEntry{}, false
}

// OpenFile returns a stateless handle over entry's byte range. Each call
// returns a fresh *io.SectionReader, so the same entry can be opened
// concurrently from multiple goroutines without contention.
func (r *Reader) OpenFile(entry IndexEntry) *io.SectionReader {
	return io.NewSectionReader(r.backing, int64(entry.Offset), int64(entry.Size))
}
