package domain

import (
	"bytes"
	"slices"
)

// DependencyBlock maps dependency names to their version specs.
type DependencyBlock map[string]VersionSpec

// Names returns the dependency names in ascending byte order.
func (b DependencyBlock) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MergeBlocks merges two dependency blocks. Names present in only one block keep
// that block's spec; names present in both are resolved with PickVersion.
// Nil blocks are treated as empty.
func MergeBlocks(base, extra DependencyBlock) DependencyBlock {
	out := make(DependencyBlock, len(base)+len(extra))
	for name, spec := range base {
		out[name] = spec
	}
	for name, spec := range extra {
		if current, ok := out[name]; ok {
			out[name] = PickVersion(current, spec)
			continue
		}
		out[name] = spec
	}
	return out
}

// MarshalJSON writes the block as an object with sorted keys.
func (b DependencyBlock) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range b.Names() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalString(name)
		if err != nil {
			return nil, err
		}
		value, err := b[name].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
