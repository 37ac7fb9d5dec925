/*
NAME
  indexcache.go

DESCRIPTION
  indexcache.go caches a serialized GAVFPIDX chunk per on-disk .gavf file,
  keyed by path, mtime and size, so a reader opening a large file doesn't
  have to read the on-disk index chunk every time. Strictly an optimization: a cache miss or an unreachable
  cache changes nothing observable except how long Open takes, matching
  the core library's stance that a missing PIDX is never an error.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package indexcache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var bucketName = []byte("pidx")

// Cache is a bbolt-backed store mapping a .gavf file's identity to the
// raw bytes of its encoded PacketIndex.
type Cache struct {
	db *bolt.DB
}

// Open opens (creating if necessary) a Cache backed by the bbolt file at
// dbPath.
func Open(dbPath string) (*Cache, error) {
	db, err := bolt.Open(dbPath, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening index cache %s", dbPath)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating pidx bucket")
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying bbolt database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// key identifies a .gavf file by its absolute path, modification time and
// size, so a stale cache entry from before the file was rewritten never
// matches.
func key(path string, info os.FileInfo) []byte {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return []byte(fmt.Sprintf("%s|%d|%d", abs, info.ModTime().UnixNano(), info.Size()))
}

// Get returns the cached serialized PIDX bytes for the file at path, if
// present and not stale relative to path's current mtime/size. ok is
// false on a miss, a stat failure, or any cache error — all treated
// identically by callers, which fall back to the file's own GAVFPIDX
// chunk (the index is never rebuilt by scanning the file).
func (c *Cache) Get(path string) (data []byte, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	k := key(path, info)

	err = c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if v := b.Get(k); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || data == nil {
		return nil, false
	}
	return data, true
}

// Put stores the serialized PIDX bytes for the file at path, replacing
// any entry for a prior version of the file.
func (c *Cache) Put(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}
	k := key(path, info)
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put(k, data)
	})
}
