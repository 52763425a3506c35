package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"

	"go.trai.ch/zerr"
)

// DependencyKind names one of the dependency blocks of a manifest.
type DependencyKind string

const (
	// Dependencies holds runtime dependencies.
	Dependencies DependencyKind = "dependencies"
	// DevDependencies holds development-only dependencies.
	DevDependencies DependencyKind = "devDependencies"
	// PeerDependencies holds dependencies the host project must provide.
	PeerDependencies DependencyKind = "peerDependencies"
	// OptionalDependencies holds dependencies whose installation may fail.
	OptionalDependencies DependencyKind = "optionalDependencies"
)

// DependencyKinds lists the merged blocks in the order they are appended to a
// manifest that lacks them.
var DependencyKinds = []DependencyKind{
	Dependencies,
	DevDependencies,
	PeerDependencies,
	OptionalDependencies,
}

// Manifest is a package manifest kept as an ordered record of raw JSON fields.
// Field order follows the source document; values pass through verbatim.
type Manifest struct {
	keys   []string
	fields map[string]json.RawMessage
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{fields: make(map[string]json.RawMessage)}
}

// Keys returns the field names in document order.
func (m *Manifest) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Len returns the number of fields.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the raw value of a field.
func (m *Manifest) Get(key string) (json.RawMessage, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.fields[key]
	return v, ok
}

// Set stores a field. Existing fields keep their position, new fields are appended.
func (m *Manifest) Set(key string, value json.RawMessage) {
	if m.fields == nil {
		m.fields = make(map[string]json.RawMessage)
	}
	if _, ok := m.fields[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.fields[key] = value
}

// Clone returns a shallow copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	out := NewManifest()
	if m == nil {
		return out
	}
	out.keys = slices.Clone(m.keys)
	for k, v := range m.fields {
		out.fields[k] = v
	}
	return out
}

// DependencyBlock decodes one dependency block. A missing or null block is empty.
func (m *Manifest) DependencyBlock(kind DependencyKind) (DependencyBlock, error) {
	raw, ok := m.Get(string(kind))
	if !ok {
		return nil, nil
	}
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, zerr.With(zerr.Wrap(ErrDependencyBlockNotObject, "invalid dependency block"), "field", string(kind))
	}

	var block DependencyBlock
	if err := json.Unmarshal(trimmed, &block); err != nil {
		return nil, zerr.With(errors.Join(ErrManifestParseFailed, err), "field", string(kind))
	}
	return block, nil
}

// SetDependencyBlock replaces one dependency block.
func (m *Manifest) SetDependencyBlock(kind DependencyKind, block DependencyBlock) error {
	raw, err := block.MarshalJSON()
	if err != nil {
		return zerr.With(errors.Join(ErrManifestMarshalFailed, err), "field", string(kind))
	}
	m.Set(string(kind), raw)
	return nil
}

// MergeManifests merges extra into base. Every field of base is kept as is,
// except the four dependency blocks which are replaced by merged blocks.
// Other fields of extra are ignored.
func MergeManifests(base, extra *Manifest) (*Manifest, error) {
	merged := base.Clone()
	for _, kind := range DependencyKinds {
		baseBlock, err := base.DependencyBlock(kind)
		if err != nil {
			return nil, zerr.With(err, "source", "base")
		}
		extraBlock, err := extra.DependencyBlock(kind)
		if err != nil {
			return nil, zerr.With(err, "source", "extra")
		}
		if err := merged.SetDependencyBlock(kind, MergeBlocks(baseBlock, extraBlock)); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// MarshalJSON writes the manifest as a compact object in field order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalString(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if err := json.Compact(&buf, m.fields[key]); err != nil {
			return nil, zerr.With(errors.Join(ErrManifestMarshalFailed, err), "field", key)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object preserving field order.
// Duplicate keys keep their first position and their last value.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrManifestNotObject
	}

	parsed := NewManifest()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return ErrManifestParseFailed
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		parsed.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = *parsed
	return nil
}
