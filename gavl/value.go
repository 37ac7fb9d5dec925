/*
NAME
  value.go

DESCRIPTION
  Package gavl implements the dynamic value, dictionary and array model that
  is the lingua franca for track/stream descriptions, metadata and messages
  exchanged by the GAVF transport (see package gavf). Value is a tagged
  union over thirteen types; composite values (dictionary, array, the format
  descriptors, binary) are exclusively owned by the enclosing Value and are
  always deep-copied, never shared.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package gavl provides the dynamic value/dictionary/array model and the
// track/stream description conventions layered on top of it.
package gavl

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Type identifies the variant held by a Value.
type Type int

// Value variants. Undefined is the zero value.
const (
	TypeUndefined Type = iota
	TypeInt32
	TypeInt64
	TypeFloat64
	TypeString
	TypeAudioFormat
	TypeVideoFormat
	TypeColorRGB
	TypeColorRGBA
	TypePosition
	TypeDictionary
	TypeArray
	TypeBinary
)

// typeNames gives the short-string diagnostic name for each Type. Used
// only in dump output, never on the wire.
var typeNames = map[Type]string{
	TypeUndefined:   "undefined",
	TypeInt32:       "i",
	TypeInt64:       "l",
	TypeFloat64:     "f",
	TypeString:      "s",
	TypeAudioFormat: "af",
	TypeVideoFormat: "vf",
	TypeColorRGB:    "rgb",
	TypeColorRGBA:   "rgba",
	TypePosition:    "pos",
	TypeDictionary:  "d",
	TypeArray:       "a",
	TypeBinary:      "b",
}

// String returns the short diagnostic name of t.
func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "?"
}

// TypeFromString maps a short diagnostic name back to a Type, returning
// TypeUndefined if name is not recognised.
func TypeFromString(name string) Type {
	for t, n := range typeNames {
		if n == name {
			return t
		}
	}
	return TypeUndefined
}

// Value is a tagged union over scalars, strings, binary blobs, nested
// dictionaries, ordered arrays and the audio/video format descriptors.
// The zero Value is TypeUndefined.
type Value struct {
	kind Type

	i32   int32
	i64   int64
	f64   float64
	str   string
	color [4]float64 // used by rgb (3), rgba (4) and position (2)

	af  *AudioFormat
	vf  *VideoFormat
	d   *Dictionary
	arr *Array
	bin []byte
}

// Type returns the variant currently held by v.
func (v *Value) Type() Type { return v.kind }

// IsUndefined reports whether v holds no value.
func (v *Value) IsUndefined() bool { return v.kind == TypeUndefined }

// Reset frees v's contents and returns it to the undefined state.
func (v *Value) Reset() {
	*v = Value{}
}

// setKind clears any existing contents before installing a new variant;
// writing into a Value of a different type frees prior contents first.
func (v *Value) setKind(k Type) {
	if v.kind != k {
		*v = Value{}
		v.kind = k
	}
}

// --- Setters ---

func (v *Value) SetInt(i int32) {
	v.setKind(TypeInt32)
	v.i32 = i
}

func (v *Value) SetLong(l int64) {
	v.setKind(TypeInt64)
	v.i64 = l
}

func (v *Value) SetFloat(f float64) {
	v.setKind(TypeFloat64)
	v.f64 = f
}

// SetString stores s normalized to NFC, so that string values compare and
// serialize consistently regardless of the composed/decomposed form the
// caller happened to build them in.
func (v *Value) SetString(s string) {
	v.setKind(TypeString)
	v.str = norm.NFC.String(s)
}

func (v *Value) SetColorRGB(r, g, b float64) {
	v.setKind(TypeColorRGB)
	v.color = [4]float64{r, g, b, 0}
}

func (v *Value) SetColorRGBA(r, g, b, a float64) {
	v.setKind(TypeColorRGBA)
	v.color = [4]float64{r, g, b, a}
}

func (v *Value) SetPosition(x, y float64) {
	v.setKind(TypePosition)
	v.color = [4]float64{x, y, 0, 0}
}

// SetBinary takes ownership of a copy of data.
func (v *Value) SetBinary(data []byte) {
	v.setKind(TypeBinary)
	v.bin = append([]byte(nil), data...)
}

// SetBinaryNocopy takes ownership of data without copying it; the caller
// must not retain or mutate data afterwards.
func (v *Value) SetBinaryNocopy(data []byte) {
	v.setKind(TypeBinary)
	v.bin = data
}

// SetAudioFormat deep-copies af into v.
func (v *Value) SetAudioFormat(af *AudioFormat) {
	v.setKind(TypeAudioFormat)
	cp := *af
	v.af = &cp
}

// SetVideoFormat deep-copies vf into v.
func (v *Value) SetVideoFormat(vf *VideoFormat) {
	v.setKind(TypeVideoFormat)
	cp := *vf
	v.vf = &cp
}

// SetDictionary takes ownership of d (no copy); use GetDictionaryCreate or
// Copy at the call site if an independent copy is required.
func (v *Value) SetDictionary(d *Dictionary) {
	v.setKind(TypeDictionary)
	v.d = d
}

// SetArray takes ownership of a (no copy).
func (v *Value) SetArray(a *Array) {
	v.setKind(TypeArray)
	v.arr = a
}

// --- Getters ---
//
// Numeric getters accept cross-type conversion when lossless-ish:
// int<->long<->float<->string, provided the string parses completely.

// GetInt returns v as an int32, converting from long/float/string if
// necessary. ok is false if v cannot be meaningfully read as a number.
func (v *Value) GetInt() (int32, bool) {
	l, ok := v.GetLong()
	return int32(l), ok
}

// GetLong returns v as an int64, converting from int/float/string.
func (v *Value) GetLong() (int64, bool) {
	switch v.kind {
	case TypeInt32:
		return int64(v.i32), true
	case TypeInt64:
		return v.i64, true
	case TypeFloat64:
		return int64(v.f64), true
	case TypeString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.str), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// GetFloat returns v as a float64, converting from int/long/string.
func (v *Value) GetFloat() (float64, bool) {
	switch v.kind {
	case TypeInt32:
		return float64(v.i32), true
	case TypeInt64:
		return float64(v.i64), true
	case TypeFloat64:
		return v.f64, true
	case TypeString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// GetString returns v formatted as a string. Unlike the numeric getters
// this always succeeds for scalar types (it is the to_string coercion);
// ok is false only for composite/undefined values.
func (v *Value) GetString() (string, bool) {
	switch v.kind {
	case TypeString:
		return v.str, true
	case TypeInt32, TypeInt64, TypeFloat64:
		return v.ToString(), true
	default:
		return "", false
	}
}

func (v *Value) GetColorRGB() (r, g, b float64, ok bool) {
	if v.kind != TypeColorRGB {
		return 0, 0, 0, false
	}
	return v.color[0], v.color[1], v.color[2], true
}

func (v *Value) GetColorRGBA() (r, g, b, a float64, ok bool) {
	if v.kind != TypeColorRGBA {
		return 0, 0, 0, 0, false
	}
	return v.color[0], v.color[1], v.color[2], v.color[3], true
}

func (v *Value) GetPosition() (x, y float64, ok bool) {
	if v.kind != TypePosition {
		return 0, 0, false
	}
	return v.color[0], v.color[1], true
}

func (v *Value) GetBinary() ([]byte, bool) {
	if v.kind != TypeBinary {
		return nil, false
	}
	return v.bin, true
}

func (v *Value) GetAudioFormat() (*AudioFormat, bool) {
	if v.kind != TypeAudioFormat {
		return nil, false
	}
	return v.af, true
}

func (v *Value) GetVideoFormat() (*VideoFormat, bool) {
	if v.kind != TypeVideoFormat {
		return nil, false
	}
	return v.vf, true
}

func (v *Value) GetDictionary() (*Dictionary, bool) {
	if v.kind != TypeDictionary {
		return nil, false
	}
	return v.d, true
}

func (v *Value) GetArray() (*Array, bool) {
	if v.kind != TypeArray {
		return nil, false
	}
	return v.arr, true
}

// --- Scalar/array polymorphism ---

// NumItems returns 1 for scalar (and other non-array) values, the array
// length for array values, and 0 for undefined values.
func (v *Value) NumItems() int {
	switch v.kind {
	case TypeUndefined:
		return 0
	case TypeArray:
		return v.arr.Len()
	default:
		return 1
	}
}

// Item returns element idx under the uniform scalar/array treatment: index
// 0 on a scalar returns the scalar itself; on an array, the element at idx.
// ok is false for an out-of-range index.
func (v *Value) Item(idx int) (*Value, bool) {
	switch v.kind {
	case TypeUndefined:
		return nil, false
	case TypeArray:
		return v.arr.Get(idx)
	default:
		if idx != 0 {
			return nil, false
		}
		return v, true
	}
}

// Append adds other to v, implementing the promote-to-array convention: if
// v is undefined it becomes other; if v is a scalar it is wrapped into a
// two-element array; if v is already an array, other is pushed onto it.
func (v *Value) Append(other Value) {
	switch v.kind {
	case TypeUndefined:
		*v = other
	case TypeArray:
		v.arr.Push(other)
	default:
		arr := NewArray()
		arr.Push(*v)
		arr.Push(other)
		v.setKind(TypeArray)
		v.arr = arr
	}
}

// --- Copy / Move / Compare / Dump ---

// Copy returns a deep copy of v.
func (v *Value) Copy() Value {
	cp := Value{kind: v.kind, i32: v.i32, i64: v.i64, f64: v.f64, str: v.str, color: v.color}
	switch v.kind {
	case TypeAudioFormat:
		f := *v.af
		cp.af = &f
	case TypeVideoFormat:
		f := *v.vf
		cp.vf = &f
	case TypeDictionary:
		cp.d = v.d.Copy()
	case TypeArray:
		cp.arr = v.arr.Copy()
	case TypeBinary:
		cp.bin = append([]byte(nil), v.bin...)
	}
	return cp
}

// Move transfers ownership of src's contents to v and resets src to the
// undefined state, without deep-copying composite contents.
func Move(dst, src *Value) {
	*dst = *src
	src.Reset()
}

// Compare returns 0 if v and other are equal, non-zero otherwise. Numeric
// comparisons use ordering; composite comparisons recurse.
func (v *Value) Compare(other *Value) int {
	if v == nil && other == nil {
		return 0
	}
	if v == nil || other == nil {
		return 1
	}
	if v.kind != other.kind {
		return 1
	}
	switch v.kind {
	case TypeUndefined:
		return 0
	case TypeInt32:
		return cmpNum(v.i32, other.i32)
	case TypeInt64:
		return cmpNum(v.i64, other.i64)
	case TypeFloat64:
		return cmpNum(v.f64, other.f64)
	case TypeString:
		return strings.Compare(v.str, other.str)
	case TypeAudioFormat:
		if *v.af == *other.af {
			return 0
		}
		return 1
	case TypeVideoFormat:
		if *v.vf == *other.vf {
			return 0
		}
		return 1
	case TypeColorRGB:
		return cmpArr(v.color[:3], other.color[:3])
	case TypeColorRGBA:
		return cmpArr(v.color[:4], other.color[:4])
	case TypePosition:
		return cmpArr(v.color[:2], other.color[:2])
	case TypeDictionary:
		return v.d.Compare(other.d)
	case TypeArray:
		return v.arr.Compare(other.arr)
	case TypeBinary:
		return bytesCompare(v.bin, other.bin)
	default:
		return 1
	}
}

func cmpNum[T int32 | int64 | float64](a, b T) int {
	switch {
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

func cmpArr(a, b []float64) int {
	for i := range a {
		if r := cmpNum(a[i], b[i]); r != 0 {
			return r
		}
	}
	return 0
}

func bytesCompare(a, b []byte) int {
	if len(a) != len(b) {
		return 1
	}
	for i := range a {
		if a[i] != b[i] {
			return 1
		}
	}
	return 0
}

// ToString renders v's scalar contents in printf style. Composite and
// undefined values render as their type name.
func (v *Value) ToString() string {
	switch v.kind {
	case TypeInt32:
		return strconv.FormatInt(int64(v.i32), 10)
	case TypeInt64:
		return strconv.FormatInt(v.i64, 10)
	case TypeFloat64:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case TypeString:
		return v.str
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

// FromString parses s into v as the given target type. Returns false if s
// could not be parsed as that type.
func (v *Value) FromString(s string, t Type) bool {
	switch t {
	case TypeInt32:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return false
		}
		v.SetInt(int32(n))
		return true
	case TypeInt64:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return false
		}
		v.SetLong(n)
		return true
	case TypeFloat64:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return false
		}
		v.SetFloat(f)
		return true
	case TypeString:
		v.SetString(s)
		return true
	default:
		return false
	}
}

// Dump renders v as an indented, human-readable tree, for diagnostics only
// (this format never appears on the wire).
func (v *Value) Dump(indent int) string {
	pad := strings.Repeat("  ", indent)
	switch v.kind {
	case TypeUndefined:
		return pad + "undefined"
	case TypeDictionary:
		return pad + v.d.Dump(indent)
	case TypeArray:
		return pad + v.arr.Dump(indent)
	case TypeBinary:
		return fmt.Sprintf("%s<binary, %d bytes>", pad, len(v.bin))
	default:
		return pad + v.ToString()
	}
}
