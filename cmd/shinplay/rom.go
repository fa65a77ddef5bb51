package main

import (
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DCNick3/shin-go/format/rom"
)

// romIo adapts a *rom.Reader to asset.Io, so the ROM's file tree can serve
// as an asset-loading layer exactly like a loose directory would.
type romIo struct {
	r *rom.Reader
}

func (z *romIo) Open(path string) (io.ReadCloser, error) {
	entry, ok := z.r.FindFile(path)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return io.NopCloser(z.r.OpenFile(entry)), nil
}

func (z *romIo) Exists(path string) bool {
	_, ok := z.r.FindFile(path)
	return ok
}

func openRom(path string) (*rom.Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open rom: %w", err)
	}
	r, err := rom.Open(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("parse rom: %w", err)
	}
	return r, f, nil
}

// runList implements sdu's `list`: print every file entry's path.
func runList(args []string) error {
	fset := flag.NewFlagSet("list", flag.ExitOnError)
	fset.Parse(args)
	if fset.NArg() != 1 {
		return fmt.Errorf("usage: shinplay list <rom>")
	}

	r, f, err := openRom(fset.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	r.Traverse(func(e rom.IndexEntry) bool {
		fmt.Printf("FILE %s (%d bytes)\n", e.Path, e.Size)
		return true
	})
	return nil
}

// runExtractOne implements sdu's `extract-one`: pull a single named file
// out of the archive and write it to output_path.
func runExtractOne(args []string) error {
	fset := flag.NewFlagSet("extract-one", flag.ExitOnError)
	fset.Parse(args)
	if fset.NArg() != 3 {
		return fmt.Errorf("usage: shinplay extract-one <rom> <name> <output-file>")
	}
	romPath, name, outputPath := fset.Arg(0), fset.Arg(1), fset.Arg(2)

	r, f, err := openRom(romPath)
	if err != nil {
		return err
	}
	defer f.Close()

	entry, ok := r.FindFile(name)
	if !ok {
		return fmt.Errorf("extract-one: %q not found in %s", name, romPath)
	}

	data, err := io.ReadAll(r.OpenFile(entry))
	if err != nil {
		return fmt.Errorf("extract-one: read %q: %w", name, err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("extract-one: write %s: %w", outputPath, err)
	}
	return nil
}

// runExtract implements sdu's `extract`: unpack every entry (or only the
// named ones, if given) into output_dir, recreating its directory tree.
func runExtract(args []string) error {
	fset := flag.NewFlagSet("extract", flag.ExitOnError)
	fset.Parse(args)
	if fset.NArg() < 2 {
		return fmt.Errorf("usage: shinplay extract <rom> <output-dir> [names...]")
	}
	romPath, outputDir := fset.Arg(0), fset.Arg(1)
	wanted := map[string]bool{}
	for _, n := range fset.Args()[2:] {
		wanted[n] = true
	}

	r, f, err := openRom(romPath)
	if err != nil {
		return err
	}
	defer f.Close()

	var extractErr error
	r.Traverse(func(e rom.IndexEntry) bool {
		if len(wanted) > 0 && !wanted[e.Path] {
			return true
		}
		outPath := filepath.Join(outputDir, filepath.FromSlash(e.Path))
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			extractErr = fmt.Errorf("extract: mkdir for %s: %w", e.Path, err)
			return false
		}
		data, err := io.ReadAll(r.OpenFile(e))
		if err != nil {
			extractErr = fmt.Errorf("extract: read %s: %w", e.Path, err)
			return false
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			extractErr = fmt.Errorf("extract: write %s: %w", outPath, err)
			return false
		}
		fmt.Printf("wrote %s (%d bytes)\n", outPath, len(data))
		return true
	})
	return extractErr
}
