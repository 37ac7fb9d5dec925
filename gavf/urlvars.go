/*
NAME
  urlvars.go

DESCRIPTION
  urlvars.go splits `?k=v&k=v` query variables off a URI and recomposes
  them, and implements the `gavlhttpvars` convention: an application that
  needs to smuggle HTTP headers through an intermediate URI carrier (one
  that only forwards query variables, not headers) serializes those
  headers as a Dictionary, base64url-encodes it, and stores it under the
  private `gavlhttpvars` key so it survives the hop looking like an
  ordinary query parameter.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavf

import (
	"bytes"
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/ausocean/gavf/gavl"
)

// httpVarsKey is the private query key under which AppendHTTPVars stores
// the base64url-encoded variables dictionary.
const httpVarsKey = "gavlhttpvars"

// SplitURLVars splits path at its last '?' and parses the remainder as
// `k1=v1&k2=v2...` into a Dictionary. A key with no '=' is set to the
// int 1 (a bare flag). Keys are kept in the order they appear. Returns
// the path with the query string removed, and the parsed vars (never
// nil, possibly empty if path has no '?').
func SplitURLVars(path string) (string, *gavl.Dictionary) {
	vars := gavl.NewDictionary()

	i := strings.LastIndex(path, "?")
	if i < 0 {
		return path, vars
	}
	query := path[i+1:]
	path = path[:i]

	for _, kv := range strings.Split(query, "&") {
		if kv == "" {
			continue
		}
		eq := strings.Index(kv, "=")
		if eq < 0 {
			vars.SetInt(kv, 1)
			continue
		}
		key := kv[:eq]
		if key == "" {
			continue
		}
		vars.SetString(key, kv[eq+1:])
	}
	return path, vars
}

// AppendURLVars recomposes path with vars appended as a query string,
// one entry per `&k=v` (or the bare `?k=v` for the first). Only scalar
// values with a string form (as ToString renders them) are appended;
// dictionary, array and binary values are skipped.
func AppendURLVars(path string, vars *gavl.Dictionary) string {
	if vars.NumEntries() == 0 {
		return path
	}
	var b strings.Builder
	b.WriteString(path)
	for _, name := range vars.Names() {
		v, ok := vars.Get(name)
		if !ok || v.Type() == gavl.TypeDictionary || v.Type() == gavl.TypeArray || v.Type() == gavl.TypeBinary {
			continue
		}
		if !strings.Contains(b.String(), "?") {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(v.ToString())
	}
	return b.String()
}

// AddURLVarString appends a single string variable to uri, preserving
// any existing query variables.
func AddURLVarString(uri, key, val string) string {
	path, vars := SplitURLVars(uri)
	vars.SetString(key, val)
	return AppendURLVars(path, vars)
}

// AddURLVarLong appends a single int64 variable to uri.
func AddURLVarLong(uri, key string, val int64) string {
	return AddURLVarString(uri, key, strconv.FormatInt(val, 10))
}

// ExtractURLVarString removes key from uri's query variables, returning
// the cleaned uri and the prior value (ok is false if key was absent).
func ExtractURLVarString(uri, key string) (string, string, bool) {
	path, vars := SplitURLVars(uri)
	val, ok := vars.GetString(key)
	vars.Delete(key)
	return AppendURLVars(path, vars), val, ok
}

// ExtractHTTPVars pulls the gavlhttpvars-encoded dictionary out of url's
// query variables (if present), decodes it, and returns the url with
// the private key stripped out alongside the decoded dictionary. If
// gavlhttpvars is absent, vars is empty and url is returned unchanged.
func ExtractHTTPVars(url string) (string, *gavl.Dictionary, error) {
	path, urlVars := SplitURLVars(url)

	encoded, ok := urlVars.GetString(httpVarsKey)
	if !ok {
		return AppendURLVars(path, urlVars), gavl.NewDictionary(), nil
	}

	raw, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(encoded)
	if err != nil {
		return "", nil, errors.Wrap(err, "decoding gavlhttpvars base64")
	}
	vars, err := DecodeDictionary(bytes.NewReader(raw))
	if err != nil {
		return "", nil, errors.Wrap(err, "decoding gavlhttpvars dictionary")
	}

	urlVars.Delete(httpVarsKey)
	return AppendURLVars(path, urlVars), vars, nil
}

// AppendHTTPVars merges vars into any gavlhttpvars dictionary already
// encoded in url, re-encodes the result, and stores it back under
// gavlhttpvars. If vars is empty, url is returned unchanged.
func AppendHTTPVars(url string, vars *gavl.Dictionary) (string, error) {
	if vars.NumEntries() == 0 {
		return url, nil
	}

	path, urlVars := SplitURLVars(url)

	httpVars := gavl.NewDictionary()
	if encoded, ok := urlVars.GetString(httpVarsKey); ok {
		raw, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(encoded)
		if err != nil {
			return "", errors.Wrap(err, "decoding existing gavlhttpvars base64")
		}
		decoded, err := DecodeDictionary(bytes.NewReader(raw))
		if err == nil {
			httpVars = decoded
		}
	}

	gavl.Merge2(httpVars, vars)

	var buf bytes.Buffer
	if err := EncodeDictionary(&buf, httpVars); err != nil {
		return "", errors.Wrap(err, "encoding gavlhttpvars dictionary")
	}
	urlVars.SetString(httpVarsKey, base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(buf.Bytes()))

	return AppendURLVars(path, urlVars), nil
}
