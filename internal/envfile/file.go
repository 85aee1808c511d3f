// SPDX-License-Identifier: MPL-2.0

package envfile

import (
	"iter"
	"slices"
)

// File is the ordered mapping read from an env file. Keys keep the position of
// their first declaration; a later declaration of the same key replaces the value
// (last write wins).
type File struct {
	// Path is the file the mapping was read from, if any.
	Path string

	keys   []string
	values map[string]Value
}

// New returns an empty File.
func New() *File {
	return &File{values: make(map[string]Value)}
}

// Set stores raw under key.
func (f *File) Set(key, raw string) {
	if f.values == nil {
		f.values = make(map[string]Value)
	}
	if _, exists := f.values[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.values[key] = NewValue(raw)
}

// Get returns the value stored under key.
func (f *File) Get(key string) (Value, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Lookup returns the raw value stored under key, or "" when absent.
func (f *File) Lookup(key string) string {
	return f.values[key].String()
}

// Has reports whether key was declared.
func (f *File) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Len returns the number of distinct keys.
func (f *File) Len() int { return len(f.keys) }

// Keys returns the keys in file order.
func (f *File) Keys() []string { return slices.Clone(f.keys) }

// All iterates over key/value pairs in file order.
func (f *File) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range f.keys {
			if !yield(k, f.values[k]) {
				return
			}
		}
	}
}

// Map returns the raw values keyed by name.
func (f *File) Map() map[string]string {
	m := make(map[string]string, len(f.keys))
	for _, k := range f.keys {
		m[k] = f.values[k].raw
	}
	return m
}
