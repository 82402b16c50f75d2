package query

import (
	"net/url"
	"strings"
)

// Param is a single key/value occurrence in a query string.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered multi-map of query parameters. Unlike url.Values it
// keeps the order the parameters appeared in, and keys may repeat.
type Params struct {
	entries []Param
}

// Parse reads a raw query string, with or without the leading '?'.
func Parse(raw string) Params {
	raw = strings.TrimPrefix(raw, "?")
	p := Params{}
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		p.entries = append(p.entries, Param{Key: decode(key), Value: decode(value)})
	}
	return p
}

func FromEntries(entries ...Param) Params {
	return Params{entries: append([]Param(nil), entries...)}
}

func decode(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return strings.ReplaceAll(s, "+", " ")
}

// Clone returns a copy that shares no storage with p.
func (p Params) Clone() Params {
	return Params{entries: append([]Param(nil), p.entries...)}
}

func (p Params) Len() int {
	return len(p.entries)
}

// Entries returns a copy of all parameters in order.
func (p Params) Entries() []Param {
	return append([]Param(nil), p.entries...)
}

func (p Params) Has(key string) bool {
	for _, e := range p.entries {
		if e.Key == key {
			return true
		}
	}
	return false
}

// Get returns the first value for key.
func (p Params) Get(key string) (string, bool) {
	for _, e := range p.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func (p Params) GetAll(key string) []string {
	values := []string{}
	for _, e := range p.entries {
		if e.Key == key {
			values = append(values, e.Value)
		}
	}
	return values
}

func (p Params) Contains(key, value string) bool {
	for _, e := range p.entries {
		if e.Key == key && e.Value == value {
			return true
		}
	}
	return false
}

// Set replaces the first occurrence of key and drops the rest, or appends
// when key is absent.
func (p *Params) Set(key, value string) {
	result := p.entries[:0:0]
	found := false
	for _, e := range p.entries {
		if e.Key != key {
			result = append(result, e)
			continue
		}
		if !found {
			result = append(result, Param{Key: key, Value: value})
			found = true
		}
	}
	if !found {
		result = append(result, Param{Key: key, Value: value})
	}
	p.entries = result
}

func (p *Params) Append(key, value string) {
	p.entries = append(p.entries, Param{Key: key, Value: value})
}

// Delete removes every occurrence of key.
func (p *Params) Delete(key string) {
	p.deleteWhere(func(e Param) bool { return e.Key == key })
}

// DeleteValue removes the occurrences of key that carry value.
func (p *Params) DeleteValue(key, value string) {
	p.deleteWhere(func(e Param) bool { return e.Key == key && e.Value == value })
}

func (p *Params) deleteWhere(match func(Param) bool) {
	result := p.entries[:0:0]
	for _, e := range p.entries {
		if !match(e) {
			result = append(result, e)
		}
	}
	p.entries = result
}

// Encode serializes the parameters in order using form encoding.
func (p Params) Encode() string {
	var sb strings.Builder
	for i, e := range p.entries {
		if i > 0 {
			sb.WriteByte('&')
		}
		writeEscaped(&sb, e.Key)
		sb.WriteByte('=')
		writeEscaped(&sb, e.Value)
	}
	return sb.String()
}

func (p Params) String() string {
	return p.Encode()
}

const upperhex = "0123456789ABCDEF"

func shouldKeep(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '*', c == '-', c == '.', c == '_':
		return true
	}
	return false
}

func writeEscaped(sb *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case shouldKeep(c):
			sb.WriteByte(c)
		case c == ' ':
			sb.WriteByte('+')
		default:
			sb.WriteByte('%')
			sb.WriteByte(upperhex[c>>4])
			sb.WriteByte(upperhex[c&15])
		}
	}
}
