/*
NAME
  file.go

DESCRIPTION
  A file-backed IO, plus a from-filename constructor that picks read or
  write mode, and optional replacement detection via fsnotify so a
  long-lived reader of a growing on-disk .gavf file notices if the
  underlying file is removed or renamed out from under it; in-place
  truncation is not detected (teacher convention: see
  cmd/rv's config hot-reload use of fsnotify).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package io

import (
	stdio "io"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// FileIO wraps an *os.File as an IO.
type FileIO struct {
	state
	f        *os.File
	watcher  *fsnotify.Watcher
	replaced bool
}

// FromFile wraps f. canSeek controls whether CanSeek is advertised;
// pipes and ttys opened as *os.File are not seekable even though they
// share the type.
func FromFile(f *os.File, canSeek bool) *FileIO {
	fl := CanRead | CanWrite
	if canSeek {
		fl |= CanSeek
	}
	if fi, err := f.Stat(); err == nil {
		if fi.Mode().IsRegular() {
			fl |= IsRegular
		}
		if fi.Mode()&os.ModeNamedPipe != 0 {
			fl |= IsPipe
		}
	}
	return &FileIO{state: state{flags: fl}, f: f}
}

// FromFilename opens name for reading (write=false) or creates/truncates
// it for writing (write=true).
func FromFilename(name string, write bool) (*FileIO, error) {
	var f *os.File
	var err error
	if write {
		f, err = os.Create(name)
	} else {
		f, err = os.Open(name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", name)
	}
	return FromFile(f, true), nil
}

// WatchTruncation arms fsnotify on the file's path so a subsequent Read
// after the file is removed or renamed returns ErrReplaced. Truncation of
// the file in place is not detected.
func (fio *FileIO) WatchTruncation() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(fio.f.Name()); err != nil {
		w.Close()
		return err
	}
	fio.watcher = w
	go func() {
		for ev := range w.Events {
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				fio.replaced = true
			}
		}
	}()
	return nil
}

// ErrReplaced is returned once the watched file has been removed or
// renamed out from under a reader.
var ErrReplaced = errors.New("io: file replaced or removed")

func (fio *FileIO) Read(p []byte) (int, error) {
	if err := fio.latched(); err != nil {
		return 0, err
	}
	if fio.replaced {
		fio.setErr(ErrReplaced)
		return 0, ErrReplaced
	}
	n, err := fio.f.Read(p)
	if err == stdio.EOF {
		fio.setEOF()
	} else if err != nil {
		fio.setErr(err)
	}
	return n, err
}

func (fio *FileIO) Write(p []byte) (int, error) {
	if err := fio.latched(); err != nil {
		return 0, err
	}
	n, err := fio.f.Write(p)
	if err != nil {
		fio.setErr(err)
	}
	return n, err
}

func (fio *FileIO) Seek(offset int64, whence int) (int64, error) {
	return fio.f.Seek(offset, whence)
}

func (fio *FileIO) Flush() error { return fio.f.Sync() }

func (fio *FileIO) Close() error {
	if fio.watcher != nil {
		fio.watcher.Close()
	}
	return fio.f.Close()
}
