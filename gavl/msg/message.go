/*
NAME
  message.go

DESCRIPTION
  message.go implements the generic message type used to carry events and
  commands between a source, a sink and any number of clients: a namespace,
  an id, a header dictionary for routing/correlation metadata, and up to
  MaxArgs positional arguments of arbitrary gavl.Value type.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package msg implements the gavl message catalogue: generic, namespaced
// notifications and commands exchanged between sources, sinks, GUIs and
// gavf transport endpoints.
package msg

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ausocean/gavf/gavl"
)

// MaxArgs is the maximum number of positional arguments a message may
// carry.
const MaxArgs = 16

// None is the reserved id for a message with no valid id.
const None = -1

// Header field keys.
const (
	HeaderID          = "ID"
	HeaderNS          = "NS"
	HeaderClientID    = "ClientID"
	HeaderContextID   = "ContextID"
	HeaderTimestamp   = "TS"
	HeaderNotLast     = "NotLast"
	HeaderFunctionTag = "FunctionTag"
)

// ErrArgOutOfRange is returned by SetArg/SetArgNocopy when idx is outside
// [0, MaxArgs).
var ErrArgOutOfRange = errors.New("msg: argument index out of range")

// Message is a namespaced, identified event or command carrying up to
// MaxArgs arguments plus a header dictionary for routing metadata.
type Message struct {
	Header *gavl.Dictionary

	NS int32
	ID int32

	numArgs int
	args    [MaxArgs]gavl.Value
}

// New returns a new, empty message with id None.
func New() *Message {
	m := &Message{}
	m.Init()
	return m
}

// Init resets m to the empty state with id None, discarding all args and
// header fields.
func (m *Message) Init() {
	m.Header = gavl.NewDictionary()
	m.NS = 0
	m.ID = None
	m.numArgs = 0
	for i := range m.args {
		m.args[i] = gavl.Value{}
	}
}

// SetID sets the message's namespace and id.
func (m *Message) SetID(ns, id int32) {
	m.NS = ns
	m.ID = id
}

// GetID returns the message's id and, via ns, its namespace.
func (m *Message) GetID() (id, ns int32) {
	return m.ID, m.NS
}

// Match reports whether m has the given namespace and id.
func (m *Message) Match(ns, id int32) bool {
	return m.NS == ns && m.ID == id
}

// NumArgs returns the number of arguments currently set. Gaps left by
// setting a high index directly are counted as set (zero/undefined).
func (m *Message) NumArgs() int {
	return m.numArgs
}

// SetArg sets (a copy of) val at argument index idx.
func (m *Message) SetArg(idx int, val gavl.Value) error {
	if idx < 0 || idx >= MaxArgs {
		return errors.Wrapf(ErrArgOutOfRange, "index %d", idx)
	}
	m.args[idx] = val.Copy()
	if idx+1 > m.numArgs {
		m.numArgs = idx + 1
	}
	return nil
}

// SetArgNocopy sets val at argument index idx without copying, taking
// ownership of any dictionary/array/binary payload it holds.
func (m *Message) SetArgNocopy(idx int, val gavl.Value) error {
	if idx < 0 || idx >= MaxArgs {
		return errors.Wrapf(ErrArgOutOfRange, "index %d", idx)
	}
	m.args[idx] = val
	if idx+1 > m.numArgs {
		m.numArgs = idx + 1
	}
	return nil
}

// GetArg returns the argument at idx. The returned Value shares any
// dictionary/array/format/binary payload with m; it is not deep-copied.
func (m *Message) GetArg(idx int) (gavl.Value, bool) {
	if idx < 0 || idx >= m.numArgs {
		return gavl.Value{}, false
	}
	return m.args[idx], true
}

func (m *Message) SetArgInt(idx int, v int32) {
	var val gavl.Value
	val.SetInt(v)
	m.SetArgNocopy(idx, val)
}

func (m *Message) GetArgInt(idx int) (int32, bool) {
	v, ok := m.GetArg(idx)
	if !ok {
		return 0, false
	}
	return v.GetInt()
}

func (m *Message) SetArgLong(idx int, v int64) {
	var val gavl.Value
	val.SetLong(v)
	m.SetArgNocopy(idx, val)
}

func (m *Message) GetArgLong(idx int) (int64, bool) {
	v, ok := m.GetArg(idx)
	if !ok {
		return 0, false
	}
	return v.GetLong()
}

func (m *Message) SetArgFloat(idx int, v float64) {
	var val gavl.Value
	val.SetFloat(v)
	m.SetArgNocopy(idx, val)
}

func (m *Message) GetArgFloat(idx int) (float64, bool) {
	v, ok := m.GetArg(idx)
	if !ok {
		return 0, false
	}
	return v.GetFloat()
}

func (m *Message) SetArgString(idx int, v string) {
	var val gavl.Value
	val.SetString(v)
	m.SetArgNocopy(idx, val)
}

func (m *Message) GetArgString(idx int) (string, bool) {
	v, ok := m.GetArg(idx)
	if !ok {
		return "", false
	}
	return v.GetString()
}

func (m *Message) SetArgColorRGB(idx int, r, g, b float64) {
	var val gavl.Value
	val.SetColorRGB(r, g, b)
	m.SetArgNocopy(idx, val)
}

func (m *Message) GetArgColorRGB(idx int) (r, g, b float64, ok bool) {
	v, ok := m.GetArg(idx)
	if !ok {
		return 0, 0, 0, false
	}
	return v.GetColorRGB()
}

func (m *Message) SetArgColorRGBA(idx int, r, g, b, a float64) {
	var val gavl.Value
	val.SetColorRGBA(r, g, b, a)
	m.SetArgNocopy(idx, val)
}

func (m *Message) GetArgColorRGBA(idx int) (r, g, b, a float64, ok bool) {
	v, ok := m.GetArg(idx)
	if !ok {
		return 0, 0, 0, 0, false
	}
	return v.GetColorRGBA()
}

func (m *Message) SetArgPosition(idx int, x, y float64) {
	var val gavl.Value
	val.SetPosition(x, y)
	m.SetArgNocopy(idx, val)
}

func (m *Message) GetArgPosition(idx int) (x, y float64, ok bool) {
	v, ok := m.GetArg(idx)
	if !ok {
		return 0, 0, false
	}
	return v.GetPosition()
}

func (m *Message) SetArgAudioFormat(idx int, af *gavl.AudioFormat) {
	var val gavl.Value
	val.SetAudioFormat(af)
	m.SetArgNocopy(idx, val)
}

func (m *Message) GetArgAudioFormat(idx int) (*gavl.AudioFormat, bool) {
	v, ok := m.GetArg(idx)
	if !ok {
		return nil, false
	}
	return v.GetAudioFormat()
}

func (m *Message) SetArgVideoFormat(idx int, vf *gavl.VideoFormat) {
	var val gavl.Value
	val.SetVideoFormat(vf)
	m.SetArgNocopy(idx, val)
}

func (m *Message) GetArgVideoFormat(idx int) (*gavl.VideoFormat, bool) {
	v, ok := m.GetArg(idx)
	if !ok {
		return nil, false
	}
	return v.GetVideoFormat()
}

func (m *Message) SetArgDictionary(idx int, d *gavl.Dictionary) {
	var val gavl.Value
	val.SetDictionary(d.Copy())
	m.SetArgNocopy(idx, val)
}

func (m *Message) GetArgDictionary(idx int) (*gavl.Dictionary, bool) {
	v, ok := m.GetArg(idx)
	if !ok {
		return nil, false
	}
	return v.GetDictionary()
}

func (m *Message) SetArgArray(idx int, a *gavl.Array) {
	var val gavl.Value
	val.SetArray(a.Copy())
	m.SetArgNocopy(idx, val)
}

func (m *Message) GetArgArray(idx int) (*gavl.Array, bool) {
	v, ok := m.GetArg(idx)
	if !ok {
		return nil, false
	}
	return v.GetArray()
}

// Copy returns a deep copy of m.
func (m *Message) Copy() *Message {
	cp := &Message{
		Header:  m.Header.Copy(),
		NS:      m.NS,
		ID:      m.ID,
		numArgs: m.numArgs,
	}
	for i := 0; i < m.numArgs; i++ {
		cp.args[i] = m.args[i].Copy()
	}
	return cp
}

// ApplyHeader writes m's namespace and id into its header dictionary, so
// the header alone is sufficient to route the message once serialized.
func (m *Message) ApplyHeader() {
	m.Header.SetInt(HeaderNS, m.NS)
	m.Header.SetInt(HeaderID, m.ID)
}

// NewClientID generates a fresh, random client id suitable for
// SetClientID; one is typically minted once per connection.
func NewClientID() string {
	return uuid.New().String()
}

// SetClientID / ClientID manage the header's ClientID field, identifying
// which connection sent or should receive the message.
func (m *Message) SetClientID(id string) {
	m.Header.SetString(HeaderClientID, id)
}

func (m *Message) ClientID() (string, bool) {
	return m.Header.GetString(HeaderClientID)
}

// SetContextID / ContextID manage the header's ContextID field, naming
// the object (stream, resource) the message concerns.
func (m *Message) SetContextID(id string) {
	m.Header.SetString(HeaderContextID, id)
}

func (m *Message) ContextID() (string, bool) {
	return m.Header.GetString(HeaderContextID)
}

// SetTimestamp / Timestamp manage the header's TS field.
func (m *Message) SetTimestamp(ts int64) {
	m.Header.SetLong(HeaderTimestamp, ts)
}

func (m *Message) Timestamp() (int64, bool) {
	return m.Header.GetLong(HeaderTimestamp)
}

// SetLast / GetLast manage whether further messages are expected to
// follow this one in a multi-message response (e.g. a paginated listing).
// The header stores the inverse (NotLast) to match the wire convention.
func (m *Message) SetLast(last bool) {
	if last {
		m.Header.SetInt(HeaderNotLast, 0)
	} else {
		m.Header.SetInt(HeaderNotLast, 1)
	}
}

func (m *Message) GetLast() bool {
	notLast, ok := m.Header.GetInt(HeaderNotLast)
	if !ok {
		return true
	}
	return notLast == 0
}

// SetRespForReq copies the header fields needed to correlate dst (a
// response) with src (the request it answers): ClientID, ContextID and
// FunctionTag.
func SetRespForReq(dst, src *Message) {
	for _, key := range []string{HeaderClientID, HeaderContextID, HeaderFunctionTag} {
		if v, ok := src.Header.Get(key); ok {
			dst.Header.Set(key, *v)
		}
	}
}

// Dump renders m as an indented, human-readable string for debugging.
func (m *Message) Dump(indent int) string {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += " "
	}
	out := pad + "message:\n"
	out += pad + "  ns: " + itoa(m.NS) + "\n"
	out += pad + "  id: " + itoa(m.ID) + "\n"
	out += pad + "  header:\n" + m.Header.Dump(indent+4) + "\n"
	for i := 0; i < m.numArgs; i++ {
		out += pad + "  arg[" + itoa(int32(i)) + "]:\n" + m.args[i].Dump(indent+4) + "\n"
	}
	return out
}

func itoa(n int32) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
