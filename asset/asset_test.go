package asset

import (
	"context"
	"sync/atomic"
	"testing"
	"testing/fstest"
)

func TestLayeredIoOverlayPriority(t *testing.T) {
	base := NewDirIo(fstest.MapFS{
		"a.txt": {Data: []byte("base")},
		"b.txt": {Data: []byte("base-only")},
	})
	patch := NewDirIo(fstest.MapFS{
		"a.txt": {Data: []byte("patch")},
	})
	layered := NewLayeredIo(patch, base)

	data, err := ReadAll(layered, "a.txt")
	if err != nil || string(data) != "patch" {
		t.Fatalf("a.txt: got %q, %v, want patch", data, err)
	}

	data, err = ReadAll(layered, "b.txt")
	if err != nil || string(data) != "base-only" {
		t.Fatalf("b.txt: got %q, %v, want base-only", data, err)
	}

	if layered.Exists("missing.txt") {
		t.Error("missing.txt should not exist")
	}
}

func TestServerLoadCachesAndDedups(t *testing.T) {
	io := NewDirIo(fstest.MapFS{"x.txt": {Data: []byte("hello")}})
	srv := NewServer(io, 2)

	var calls int32
	loader := func(ctx context.Context, io Io, path string, args int) (string, error) {
		atomic.AddInt32(&calls, 1)
		data, err := ReadAll(io, path)
		return string(data), err
	}

	v, err := Load(context.Background(), srv, "x.txt", 0, loader)
	if err != nil || v != "hello" {
		t.Fatalf("got %q, %v", v, err)
	}
	v, err = Load(context.Background(), srv, "x.txt", 0, loader)
	if err != nil || v != "hello" {
		t.Fatalf("second load: got %q, %v", v, err)
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1 (cache hit expected)", calls)
	}

	v, err = Load(context.Background(), srv, "x.txt", 1, loader)
	if err != nil || v != "hello" {
		t.Fatalf("different args load: got %q, %v", v, err)
	}
	if calls != 2 {
		t.Errorf("loader called %d times, want 2 (different args key)", calls)
	}
}

func TestServerEvictForcesReload(t *testing.T) {
	io := NewDirIo(fstest.MapFS{"x.txt": {Data: []byte("v1")}})
	srv := NewServer(io, 1)

	loader := func(ctx context.Context, io Io, path string, args int) (string, error) {
		data, err := ReadAll(io, path)
		return string(data), err
	}

	v, _ := Load(context.Background(), srv, "x.txt", 0, loader)
	if v != "v1" {
		t.Fatalf("got %q", v)
	}

	Evict[string](srv, "x.txt", 0)

	v, _ = Load(context.Background(), srv, "x.txt", 0, loader)
	if v != "v1" {
		t.Fatalf("after evict: got %q", v)
	}
}
