/*
NAME
  primitives.go

DESCRIPTION
  Fixed-width integer, variable-length integer, float and length-prefixed
  string/buffer primitives shared by the dictionary wire format and the
  GAVF packet/chunk framing (package gavf). These operate on any
  io.Reader/io.Writer, not just this package's IO, so they compose with
  bytes.Buffer in tests as well as with the backends in this package.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package io

import (
	"bufio"
	"encoding/binary"
	stdio "io"
	"math"

	"github.com/pkg/errors"
)

// ErrLineTooLong is returned by ReadLine when no LF is found within maxLen.
var ErrLineTooLong = errors.New("io: line exceeds maximum length")

// ErrVarintOverflow is returned when a variable-length integer exceeds 64
// bits of payload (10 bytes that all carry the continuation bit).
var ErrVarintOverflow = errors.New("io: varint overflow")

// --- fixed-width integers, both endiannesses ---

func WriteUint8(w stdio.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func ReadUint8(r stdio.Reader) (uint8, error) {
	var b [1]byte
	if _, err := stdio.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func WriteUint16BE(w stdio.Writer, v uint16) error { return writeFixed(w, 2, true, uint64(v)) }
func WriteUint16LE(w stdio.Writer, v uint16) error { return writeFixed(w, 2, false, uint64(v)) }
func WriteUint24BE(w stdio.Writer, v uint32) error { return writeFixed(w, 3, true, uint64(v)) }
func WriteUint24LE(w stdio.Writer, v uint32) error { return writeFixed(w, 3, false, uint64(v)) }
func WriteUint32BE(w stdio.Writer, v uint32) error { return writeFixed(w, 4, true, uint64(v)) }
func WriteUint32LE(w stdio.Writer, v uint32) error { return writeFixed(w, 4, false, uint64(v)) }
func WriteUint64BE(w stdio.Writer, v uint64) error { return writeFixed(w, 8, true, v) }
func WriteUint64LE(w stdio.Writer, v uint64) error { return writeFixed(w, 8, false, v) }

func ReadUint16BE(r stdio.Reader) (uint16, error) { v, err := readFixed(r, 2, true); return uint16(v), err }
func ReadUint16LE(r stdio.Reader) (uint16, error) { v, err := readFixed(r, 2, false); return uint16(v), err }
func ReadUint24BE(r stdio.Reader) (uint32, error) { v, err := readFixed(r, 3, true); return uint32(v), err }
func ReadUint24LE(r stdio.Reader) (uint32, error) { v, err := readFixed(r, 3, false); return uint32(v), err }
func ReadUint32BE(r stdio.Reader) (uint32, error) { v, err := readFixed(r, 4, true); return uint32(v), err }
func ReadUint32LE(r stdio.Reader) (uint32, error) { v, err := readFixed(r, 4, false); return uint32(v), err }
func ReadUint64BE(r stdio.Reader) (uint64, error) { return readFixed(r, 8, true) }
func ReadUint64LE(r stdio.Reader) (uint64, error) { return readFixed(r, 8, false) }

func WriteInt64LE(w stdio.Writer, v int64) error { return WriteUint64LE(w, uint64(v)) }
func ReadInt64LE(r stdio.Reader) (int64, error) {
	v, err := ReadUint64LE(r)
	return int64(v), err
}

// writeFixed writes the low n bytes of v in the given byte order. n is one
// of 2, 3, 4, 8.
func writeFixed(w stdio.Writer, n int, bigEndian bool, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	if bigEndian {
		_, err := w.Write(buf[8-n:])
		return err
	}
	// Reverse the big-endian encoding of the low n bytes to get little-endian.
	src := buf[8-n:]
	le := make([]byte, n)
	for i := 0; i < n; i++ {
		le[i] = src[n-1-i]
	}
	_, err := w.Write(le)
	return err
}

func readFixed(r stdio.Reader, n int, bigEndian bool) (uint64, error) {
	buf := make([]byte, n)
	if _, err := stdio.ReadFull(r, buf); err != nil {
		return 0, err
	}
	var v uint64
	if bigEndian {
		for i := 0; i < n; i++ {
			v = v<<8 | uint64(buf[i])
		}
		return v, nil
	}
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[i])
	}
	return v, nil
}

// --- variable-length integers ---
//
// Unsigned: 7 bits per byte, little-endian group order, high bit set on
// all but the last byte. Signed: zigzag ((n<<1)^(n>>63)) then unsigned.

func WriteUvarint(w stdio.Writer, v uint64) error {
	var buf [10]byte
	i := 0
	for v >= 0x80 {
		buf[i] = byte(v) | 0x80
		v >>= 7
		i++
	}
	buf[i] = byte(v)
	_, err := w.Write(buf[:i+1])
	return err
}

func ReadUvarint(r stdio.Reader) (uint64, error) {
	var v uint64
	var shift uint
	for i := 0; i < 10; i++ {
		b, err := ReadUint8(r)
		if err != nil {
			return 0, err
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v, nil
		}
		shift += 7
	}
	return 0, ErrVarintOverflow
}

func zigzagEncode(n int64) uint64 { return uint64((n << 1) ^ (n >> 63)) }
func zigzagDecode(u uint64) int64 { return int64(u>>1) ^ -int64(u&1) }

func WriteVarint(w stdio.Writer, v int64) error { return WriteUvarint(w, zigzagEncode(v)) }

func ReadVarint(r stdio.Reader) (int64, error) {
	u, err := ReadUvarint(r)
	if err != nil {
		return 0, err
	}
	return zigzagDecode(u), nil
}

// --- IEEE-754, portable (big-endian) byte order ---

func WriteFloat32(w stdio.Writer, f float32) error {
	return WriteUint32BE(w, math.Float32bits(f))
}

func ReadFloat32(r stdio.Reader) (float32, error) {
	u, err := ReadUint32BE(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(u), nil
}

func WriteFloat64(w stdio.Writer, f float64) error {
	return WriteUint64BE(w, math.Float64bits(f))
}

func ReadFloat64(r stdio.Reader) (float64, error) {
	u, err := ReadUint64BE(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

// --- length-prefixed strings and buffers ---

func WriteString(w stdio.Writer, s string) error {
	if err := WriteUvarint(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := stdio.WriteString(w, s)
	return err
}

func ReadString(r stdio.Reader) (string, error) {
	b, err := ReadBuffer(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func WriteBuffer(w stdio.Writer, b []byte) error {
	if err := WriteUvarint(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func ReadBuffer(r stdio.Reader) ([]byte, error) {
	n, err := ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := stdio.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// --- line reader ---

// ReadLine reads up to an LF, stripping a trailing CR, and fails with
// ErrLineTooLong if maxLen bytes are consumed without finding one.
func ReadLine(r *bufio.Reader, maxLen int) (string, error) {
	var line []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '\n' {
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			return string(line), nil
		}
		line = append(line, b)
		if len(line) > maxLen {
			return "", ErrLineTooLong
		}
	}
}

// --- alignment ---

// AlignWrite emits up to 7 zero bytes so the next write starts on an
// 8-byte boundary, given the number of bytes written so far from the
// alignment origin.
func AlignWrite(w stdio.Writer, bytesWritten int64) error {
	pad := (8 - int(bytesWritten%8)) % 8
	if pad == 0 {
		return nil
	}
	_, err := w.Write(make([]byte, pad))
	return err
}

// AlignRead skips up to 7 bytes to bring the reader to an 8-byte boundary.
func AlignRead(r stdio.Reader, bytesRead int64) error {
	pad := (8 - int(bytesRead%8)) % 8
	if pad == 0 {
		return nil
	}
	_, err := stdio.CopyN(stdio.Discard, r, int64(pad))
	return err
}
