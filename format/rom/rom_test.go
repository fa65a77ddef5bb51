package rom

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// buildArchive assembles a minimal valid archive with files at the given
// paths (single path segment or "dir/name"), mapping each path to its
// content bytes. Entries are laid out leaf-first so a parent directory's
// child_offsets can reference already-written absolute offsets.
func buildArchive(t *testing.T, files map[string][]byte) ([]byte, []byte) {
	t.Helper()
	buf := new(bytes.Buffer)

	// file_data section: concatenate all file contents first; everything
	// before this point in the final layout is the header, so data offsets
	// are fixed up once we know the header size.
	type placed struct {
		name       string
		dataOffset uint32
		size       uint32
	}
	dataSection := new(bytes.Buffer)
	var placedFiles []placed
	var order []string
	for name := range files {
		order = append(order, name)
	}
	for _, name := range order {
		content := files[name]
		placedFiles = append(placedFiles, placed{name: name, dataOffset: uint32(dataSection.Len()), size: uint32(len(content))})
		dataSection.Write(content)
	}

	const headerSize = 16

	// Write a "a.txt"-style flat root (no subdirectories) for simplicity in
	// this synthetic fixture: one root directory whose children are all
	// file entries, offsets relative to end of header + data section.
	indexSection := new(bytes.Buffer)
	childOffsets := make([]uint32, len(placedFiles))
	base := uint32(headerSize + dataSection.Len())
	for i, pf := range placedFiles {
		childOffsets[i] = base + uint32(indexSection.Len())
		writeU8(indexSection, entryTypeFile)
		writeU16(indexSection, uint16(len(pf.name)))
		indexSection.WriteString(pf.name)
		writeU32(indexSection, headerSize+pf.dataOffset)
		writeU32(indexSection, pf.size)
	}
	rootOffset := base + uint32(indexSection.Len())
	writeU32(indexSection, uint32(len(childOffsets)))
	for _, off := range childOffsets {
		writeU32(indexSection, off)
	}

	buf.Write(magic[:])
	writeU32(buf, 1)
	writeU32(buf, rootOffset)
	writeU32(buf, base) // file_data_offset, informational only
	buf.Write(dataSection.Bytes())
	buf.Write(indexSection.Bytes())

	return buf.Bytes(), dataSection.Bytes()
}

func writeU8(w *bytes.Buffer, v uint8)   { w.WriteByte(v) }
func writeU16(w *bytes.Buffer, v uint16) { var b [2]byte; binary.LittleEndian.PutUint16(b[:], v); w.Write(b[:]) }
func writeU32(w *bytes.Buffer, v uint32) { var b [4]byte; binary.LittleEndian.PutUint32(b[:], v); w.Write(b[:]) }

func TestReaderTraverseAndOpen(t *testing.T) {
	archive, _ := buildArchive(t, map[string][]byte{
		"a.txt": []byte("hello"),
		"b.txt": []byte("world!"),
	})

	r, err := Open(bytes.NewReader(archive))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	seen := map[string]string{}
	r.Traverse(func(e IndexEntry) bool {
		data, err := io.ReadAll(r.OpenFile(e))
		if err != nil {
			t.Fatalf("OpenFile(%s): %v", e.Path, err)
		}
		seen[e.Path] = string(data)
		return true
	})

	want := map[string]string{"a.txt": "hello", "b.txt": "world!"}
	if len(seen) != len(want) {
		t.Fatalf("got %v, want %v", seen, want)
	}
	for k, v := range want {
		if seen[k] != v {
			t.Errorf("%s = %q, want %q", k, seen[k], v)
		}
	}

	entry, ok := r.FindFile("a.txt")
	if !ok {
		t.Fatal("FindFile(a.txt) not found")
	}
	data, err := io.ReadAll(r.OpenFile(entry))
	if err != nil || string(data) != "hello" {
		t.Fatalf("FindFile+OpenFile round trip = %q, %v", data, err)
	}

	if _, ok := r.FindFile("missing.txt"); ok {
		t.Fatal("FindFile(missing.txt) should not be found")
	}
}

func TestReaderRejectsBadMagic(t *testing.T) {
	bad := make([]byte, 16)
	copy(bad, "NOPE")
	if _, err := Open(bytes.NewReader(bad)); err == nil {
		t.Fatal("expected error for bad magic")
	}
}
