/*
NAME
  urlvars_test.go

DESCRIPTION
  urlvars_test.go provides testing to validate utilities found in
  urlvars.go.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package gavf

import (
	"strings"
	"testing"
)

func TestSplitURLVarsParsesKeyValuePairs(t *testing.T) {
	path, vars := SplitURLVars("rtsp://host/stream?user=alice&token=abc123&debug")
	if path != "rtsp://host/stream" {
		t.Errorf("path = %q, want rtsp://host/stream", path)
	}
	if s, ok := vars.GetString("user"); !ok || s != "alice" {
		t.Errorf("user = (%q, %v), want (alice, true)", s, ok)
	}
	if s, ok := vars.GetString("token"); !ok || s != "abc123" {
		t.Errorf("token = (%q, %v), want (abc123, true)", s, ok)
	}
	if n, ok := vars.GetInt("debug"); !ok || n != 1 {
		t.Errorf("debug = (%d, %v), want (1, true) for a bare flag", n, ok)
	}
}

func TestSplitURLVarsNoQuery(t *testing.T) {
	path, vars := SplitURLVars("plain/path.gavf")
	if path != "plain/path.gavf" {
		t.Errorf("path = %q, want unchanged", path)
	}
	if vars.NumEntries() != 0 {
		t.Errorf("vars.NumEntries() = %d, want 0", vars.NumEntries())
	}
}

func TestAppendURLVarsRoundTrip(t *testing.T) {
	path, vars := SplitURLVars("host/path?a=1&b=two")
	out := AppendURLVars(path, vars)

	_, got := SplitURLVars(out)
	if s, _ := got.GetString("a"); s != "1" {
		t.Errorf("a = %q, want 1", s)
	}
	if s, _ := got.GetString("b"); s != "two" {
		t.Errorf("b = %q, want two", s)
	}
}

func TestAddAndExtractURLVar(t *testing.T) {
	uri := AddURLVarString("gavf-tcp://host:1234", "session", "xyz")
	if !strings.Contains(uri, "session=xyz") {
		t.Fatalf("uri = %q, want it to contain session=xyz", uri)
	}

	cleaned, val, ok := ExtractURLVarString(uri, "session")
	if !ok || val != "xyz" {
		t.Errorf("ExtractURLVarString = (%q, %v), want (xyz, true)", val, ok)
	}
	if strings.Contains(cleaned, "session") {
		t.Errorf("cleaned uri %q still contains session", cleaned)
	}
}

func TestHTTPVarsRoundTrip(t *testing.T) {
	_, vars := SplitURLVars("?x=1")
	vars.SetString("Authorization", "Bearer secret")
	vars.SetString("X-Request-Id", "req-42")

	url, err := AppendHTTPVars("http://relay/stream.gavf", vars)
	if err != nil {
		t.Fatalf("AppendHTTPVars: %v", err)
	}
	if !strings.Contains(url, "gavlhttpvars=") {
		t.Fatalf("url = %q, want it to contain gavlhttpvars=", url)
	}
	if strings.Contains(url, "Authorization") {
		t.Errorf("url = %q, leaks Authorization header in plain query text", url)
	}

	cleaned, got, err := ExtractHTTPVars(url)
	if err != nil {
		t.Fatalf("ExtractHTTPVars: %v", err)
	}
	if strings.Contains(cleaned, "gavlhttpvars") {
		t.Errorf("cleaned url = %q, still contains gavlhttpvars", cleaned)
	}
	if s, ok := got.GetString("Authorization"); !ok || s != "Bearer secret" {
		t.Errorf("Authorization = (%q, %v), want (Bearer secret, true)", s, ok)
	}
	if s, ok := got.GetString("X-Request-Id"); !ok || s != "req-42" {
		t.Errorf("X-Request-Id = (%q, %v), want (req-42, true)", s, ok)
	}
}

func TestExtractHTTPVarsAbsent(t *testing.T) {
	cleaned, got, err := ExtractHTTPVars("http://relay/stream.gavf?a=1")
	if err != nil {
		t.Fatalf("ExtractHTTPVars: %v", err)
	}
	if got.NumEntries() != 0 {
		t.Errorf("got.NumEntries() = %d, want 0 when gavlhttpvars is absent", got.NumEntries())
	}
	if cleaned != "http://relay/stream.gavf?a=1" {
		t.Errorf("cleaned = %q, want unchanged", cleaned)
	}
}
