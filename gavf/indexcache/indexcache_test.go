/*
NAME
  indexcache_test.go

DESCRIPTION
  indexcache_test.go provides testing to validate utilities found in
  indexcache.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package indexcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCachePutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "index.db")
	gavfPath := filepath.Join(dir, "stream.gavf")
	if err := os.WriteFile(gavfPath, []byte("not really gavf"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	if _, ok := c.Get(gavfPath); ok {
		t.Fatal("Get on empty cache returned ok=true")
	}

	want := []byte("serialized pidx bytes")
	if err := c.Put(gavfPath, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := c.Get(gavfPath)
	if !ok {
		t.Fatal("Get after Put returned ok=false")
	}
	if string(got) != string(want) {
		t.Errorf("Get = %q, want %q", got, want)
	}
}

func TestCacheStaleOnRewrite(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "index.db")
	gavfPath := filepath.Join(dir, "stream.gavf")
	if err := os.WriteFile(gavfPath, []byte("v1"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	if err := c.Put(gavfPath, []byte("index for v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Rewrite the file with different content/size/mtime so the cache key
	// no longer matches the stored entry.
	time.Sleep(10 * time.Millisecond)
	if err := os.WriteFile(gavfPath, []byte("v2 is longer than v1"), 0o644); err != nil {
		t.Fatalf("rewriting file: %v", err)
	}

	if _, ok := c.Get(gavfPath); ok {
		t.Error("Get returned a hit for a file rewritten since caching, want a miss")
	}
}

func TestCacheMissOnUnknownPath(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(filepath.Join(dir, "index.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	if _, ok := c.Get(filepath.Join(dir, "does-not-exist.gavf")); ok {
		t.Error("Get on nonexistent path returned ok=true")
	}
}
