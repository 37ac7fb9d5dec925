/*
NAME
  valuecodec.go

DESCRIPTION
  Wire encoding for gavl.Dictionary and gavl.Value:
  [u32v entry_count][entry]*, entry = [string name][value], value =
  [u8 type_tag][payload]. The program header (GAVFPHDR) and footer
  (GAVFFOOT) chunks are exactly one serialized Dictionary each. Audio and
  video formats are serialized as nested dictionaries, never as their
  in-memory fixed layout — the dictionary form is the on-disk form.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package gavf implements the chunked GAVF container: a program header,
// a multiplexed packet stream, an optional packet index and a footer,
// carried over the io package's polymorphic stream abstraction.
package gavf

import (
	stdio "io"

	"github.com/pkg/errors"

	"github.com/ausocean/gavf/gavl"
	gio "github.com/ausocean/gavf/io"
)

// ErrParse wraps any malformed-structure error encountered while decoding
// a chunk, dictionary or packet.
var ErrParse = errors.New("gavf: parse error")

func parseErrorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrParse, format, args...)
}

// EncodeDictionary writes d's wire form to w.
func EncodeDictionary(w stdio.Writer, d *gavl.Dictionary) error {
	names := d.Names()
	if err := gio.WriteUvarint(w, uint64(len(names))); err != nil {
		return err
	}
	for _, name := range names {
		v, _ := d.Get(name)
		if err := gio.WriteString(w, name); err != nil {
			return err
		}
		if err := EncodeValue(w, v); err != nil {
			return err
		}
	}
	return nil
}

// DecodeDictionary reads a dictionary previously written by
// EncodeDictionary.
func DecodeDictionary(r stdio.Reader) (*gavl.Dictionary, error) {
	n, err := gio.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	d := gavl.NewDictionary()
	for i := uint64(0); i < n; i++ {
		name, err := gio.ReadString(r)
		if err != nil {
			return nil, err
		}
		v, err := DecodeValue(r)
		if err != nil {
			return nil, err
		}
		d.Set(name, v)
	}
	return d, nil
}

// EncodeValue writes v's wire form (type tag + payload) to w.
func EncodeValue(w stdio.Writer, v *gavl.Value) error {
	if err := gio.WriteUint8(w, byte(v.Type())); err != nil {
		return err
	}
	switch v.Type() {
	case gavl.TypeUndefined:
		return nil
	case gavl.TypeInt32:
		i, _ := v.GetInt()
		return gio.WriteVarint(w, int64(i))
	case gavl.TypeInt64:
		l, _ := v.GetLong()
		return gio.WriteVarint(w, l)
	case gavl.TypeFloat64:
		f, _ := v.GetFloat()
		return gio.WriteFloat64(w, f)
	case gavl.TypeString:
		s, _ := v.GetString()
		return gio.WriteString(w, s)
	case gavl.TypeColorRGB:
		r, g, b, _ := v.GetColorRGB()
		return writeFloats(w, r, g, b)
	case gavl.TypeColorRGBA:
		r, g, b, a, _ := v.GetColorRGBA()
		return writeFloats(w, r, g, b, a)
	case gavl.TypePosition:
		x, y, _ := v.GetPosition()
		return writeFloats(w, x, y)
	case gavl.TypeBinary:
		b, _ := v.GetBinary()
		return gio.WriteBuffer(w, b)
	case gavl.TypeAudioFormat:
		af, _ := v.GetAudioFormat()
		return EncodeDictionary(w, af.ToDictionary())
	case gavl.TypeVideoFormat:
		vf, _ := v.GetVideoFormat()
		return EncodeDictionary(w, vf.ToDictionary())
	case gavl.TypeDictionary:
		sub, _ := v.GetDictionary()
		return EncodeDictionary(w, sub)
	case gavl.TypeArray:
		a, _ := v.GetArray()
		return encodeArray(w, a)
	default:
		return parseErrorf("encode: unknown value type %d", v.Type())
	}
}

// DecodeValue reads a value previously written by EncodeValue.
func DecodeValue(r stdio.Reader) (gavl.Value, error) {
	var v gavl.Value
	tag, err := gio.ReadUint8(r)
	if err != nil {
		return v, err
	}
	switch gavl.Type(tag) {
	case gavl.TypeUndefined:
		return v, nil
	case gavl.TypeInt32:
		n, err := gio.ReadVarint(r)
		if err != nil {
			return v, err
		}
		v.SetInt(int32(n))
	case gavl.TypeInt64:
		n, err := gio.ReadVarint(r)
		if err != nil {
			return v, err
		}
		v.SetLong(n)
	case gavl.TypeFloat64:
		f, err := gio.ReadFloat64(r)
		if err != nil {
			return v, err
		}
		v.SetFloat(f)
	case gavl.TypeString:
		s, err := gio.ReadString(r)
		if err != nil {
			return v, err
		}
		v.SetString(s)
	case gavl.TypeColorRGB:
		fs, err := readFloats(r, 3)
		if err != nil {
			return v, err
		}
		v.SetColorRGB(fs[0], fs[1], fs[2])
	case gavl.TypeColorRGBA:
		fs, err := readFloats(r, 4)
		if err != nil {
			return v, err
		}
		v.SetColorRGBA(fs[0], fs[1], fs[2], fs[3])
	case gavl.TypePosition:
		fs, err := readFloats(r, 2)
		if err != nil {
			return v, err
		}
		v.SetPosition(fs[0], fs[1])
	case gavl.TypeBinary:
		b, err := gio.ReadBuffer(r)
		if err != nil {
			return v, err
		}
		v.SetBinary(b)
	case gavl.TypeAudioFormat:
		d, err := DecodeDictionary(r)
		if err != nil {
			return v, err
		}
		af := gavl.AudioFormatFromDictionary(d)
		if af == nil {
			return v, parseErrorf("decode: invalid audio_format dictionary")
		}
		v.SetAudioFormat(af)
	case gavl.TypeVideoFormat:
		d, err := DecodeDictionary(r)
		if err != nil {
			return v, err
		}
		vf := gavl.VideoFormatFromDictionary(d)
		if vf == nil {
			return v, parseErrorf("decode: invalid video_format dictionary")
		}
		v.SetVideoFormat(vf)
	case gavl.TypeDictionary:
		d, err := DecodeDictionary(r)
		if err != nil {
			return v, err
		}
		v.SetDictionary(d)
	case gavl.TypeArray:
		a, err := decodeArray(r)
		if err != nil {
			return v, err
		}
		v.SetArray(a)
	default:
		return v, parseErrorf("decode: unknown type tag %d", tag)
	}
	return v, nil
}

func encodeArray(w stdio.Writer, a *gavl.Array) error {
	if err := gio.WriteUvarint(w, uint64(a.Len())); err != nil {
		return err
	}
	var encErr error
	a.Foreach(func(idx int, v *gavl.Value) {
		if encErr != nil {
			return
		}
		encErr = EncodeValue(w, v)
	})
	return encErr
}

func decodeArray(r stdio.Reader) (*gavl.Array, error) {
	n, err := gio.ReadUvarint(r)
	if err != nil {
		return nil, err
	}
	a := gavl.NewArray()
	for i := uint64(0); i < n; i++ {
		v, err := DecodeValue(r)
		if err != nil {
			return nil, err
		}
		a.Push(v)
	}
	return a, nil
}

func writeFloats(w stdio.Writer, fs ...float64) error {
	for _, f := range fs {
		if err := gio.WriteFloat64(w, f); err != nil {
			return err
		}
	}
	return nil
}

func readFloats(r stdio.Reader, n int) ([]float64, error) {
	fs := make([]float64, n)
	for i := range fs {
		f, err := gio.ReadFloat64(r)
		if err != nil {
			return nil, err
		}
		fs[i] = f
	}
	return fs, nil
}
