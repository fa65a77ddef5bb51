// Package texarchive decodes texture archives: a named table of
// picture.Block entries packed into one file, the format the asset loader
// uses for UI atlases and other many-small-images resources.
package texarchive

import (
	"encoding/binary"
	"fmt"

	"github.com/DCNick3/shin-go/format/picture"
)

var magic = [4]byte{'T', 'X', 'A', '1'}

// Entry names one picture block within the archive.
type Entry struct {
	Name  string
	Block picture.Block
}

// Archive is a decoded texture archive.
type Archive struct {
	Entries []Entry
	byName  map[string]int
}

// Lookup returns the named entry's block.
func (a *Archive) Lookup(name string) (picture.Block, bool) {
	if i, ok := a.byName[name]; ok {
		return a.Entries[i].Block, true
	}
	return picture.Block{}, false
}

// Decode parses a texture archive: magic, entry count, then for each entry
// a u16-length-prefixed name followed by one picture.Block in the same
// encoding picture.Decode's block reader uses.
func Decode(data []byte) (*Archive, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("texarchive: file too short")
	}
	if string(data[:4]) != string(magic[:]) {
		return nil, fmt.Errorf("texarchive: bad magic % x", data[:4])
	}
	count := binary.LittleEndian.Uint32(data[4:8])
	pos := 8

	entries := make([]Entry, count)
	byName := make(map[string]int, count)
	for i := range entries {
		if pos+2 > len(data) {
			return nil, fmt.Errorf("texarchive: truncated entry %d name length", i)
		}
		nameLen := int(binary.LittleEndian.Uint16(data[pos : pos+2]))
		pos += 2
		if pos+nameLen > len(data) {
			return nil, fmt.Errorf("texarchive: truncated entry %d name", i)
		}
		name := string(data[pos : pos+nameLen])
		pos += nameLen

		block, next, err := picture.DecodeBlockAt(data, pos)
		if err != nil {
			return nil, fmt.Errorf("texarchive: entry %d (%s): %w", i, name, err)
		}
		entries[i] = Entry{Name: name, Block: block}
		byName[name] = i
		pos = next
	}

	return &Archive{Entries: entries, byName: byName}, nil
}
