package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Attrs is an insertion-ordered attribute map. Serialization must render
// attributes in document order, which a plain Go map cannot preserve, so the
// JSON codec records key order explicitly.
type Attrs struct {
	keys   []string
	values map[string]string
}

// NewAttrs returns an empty attribute map.
func NewAttrs() *Attrs {
	return &Attrs{values: make(map[string]string)}
}

// AttrsFromPairs builds an attribute map from alternating key/value pairs,
// preserving the given order. Convenient for tests and builders.
func AttrsFromPairs(pairs ...string) *Attrs {
	a := NewAttrs()
	for i := 0; i+1 < len(pairs); i += 2 {
		a.Set(pairs[i], pairs[i+1])
	}
	return a
}

// Set writes an attribute, keeping the key's original position when it
// already exists.
func (a *Attrs) Set(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value for key and whether it is present.
func (a *Attrs) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a.values[key]
	return v, ok
}

// Value returns the value for key, or an empty string.
func (a *Attrs) Value(key string) string {
	v, _ := a.Get(key)
	return v
}

// Has reports whether key is present.
func (a *Attrs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Delete removes key if present.
func (a *Attrs) Delete(key string) {
	if a == nil {
		return
	}
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Rename moves the value under from to the key to, keeping the original
// position. No-op when from is absent.
func (a *Attrs) Rename(from, to string) {
	if a == nil {
		return
	}
	v, ok := a.values[from]
	if !ok {
		return
	}
	delete(a.values, from)
	a.values[to] = v
	for i, k := range a.keys {
		if k == from {
			a.keys[i] = to
			break
		}
	}
}

// Len returns the number of attributes. Safe on a nil receiver.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Keys returns the attribute names in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Each visits attributes in insertion order.
func (a *Attrs) Each(fn func(key, value string)) {
	if a == nil {
		return
	}
	for _, k := range a.keys {
		fn(k, a.values[k])
	}
}

// Clone returns an independent copy. Safe on a nil receiver.
func (a *Attrs) Clone() *Attrs {
	if a == nil {
		return nil
	}
	c := &Attrs{
		keys:   make([]string, len(a.keys)),
		values: make(map[string]string, len(a.values)),
	}
	copy(c.keys, a.keys)
	for k, v := range a.values {
		c.values[k] = v
	}
	return c
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (a *Attrs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("attributes: expected object, got %v", tok)
	}

	a.keys = nil
	a.values = make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("attributes: value of %q must be a string: %w", key, err)
		}
		a.Set(key, value)
	}
	_, err = dec.Token() // closing brace
	return err
}

// MarshalJSON encodes the attributes in insertion order.
func (a *Attrs) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(a.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		b.Write(vb)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
