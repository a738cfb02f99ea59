// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package provider

import (
	"sort"
	"strings"
)

// DraftPair is one key/value row of a map under edit. Value is kept
// as a pointer so that a row the operator never touched remains
// distinguishable from a row cleared to empty.
type DraftPair struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

// DraftMap is the editable representation of a map valued field. The
// console edits maps as an ordered list of rows, always keeping one
// trailing blank row anchoring the "add new" affordance. Duplicate or
// blank keys are tolerated while editing and resolved only when the
// draft is collapsed back into a canonical map.
type DraftMap []DraftPair

// NewDraft converts a canonical map into its draft representation.
// Keys are emitted in sorted order so that rebuilding a draft from the
// same map always yields the same rows. An empty or nil map produces a
// single blank row.
func NewDraft(m map[string]string) DraftMap {
	d := make(DraftMap, 0, len(m)+1)
	for _, k := range sortedKeys(m) {
		v := m[k]
		d = append(d, DraftPair{Key: k, Value: &v})
	}
	return append(d, DraftPair{})
}

// Resolve collapses the draft into a canonical key unique map. Rows
// with a blank key are editing artifacts and dropped silently, for
// duplicate keys the last row wins. Keys and values are trimmed.
func (d DraftMap) Resolve() map[string]string {
	m := map[string]string{}
	for _, p := range d {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			continue
		}
		var val string
		if p.Value != nil {
			val = strings.TrimSpace(*p.Value)
		}
		m[key] = val
	}
	return m
}

// Get returns the trimmed value of the first row carrying the given
// key, and whether such a row exists.
func (d DraftMap) Get(key string) (string, bool) {
	for _, p := range d {
		if strings.TrimSpace(p.Key) != key {
			continue
		}
		if p.Value == nil {
			return "", true
		}
		return strings.TrimSpace(*p.Value), true
	}
	return "", false
}

// Set updates the first row carrying the given key, or appends a new
// row ahead of the trailing blank one when the key is not present yet.
func (d DraftMap) Set(key, value string) DraftMap {
	for i, p := range d {
		if strings.TrimSpace(p.Key) == key {
			v := value
			d[i].Value = &v
			return d
		}
	}
	v := value
	row := DraftPair{Key: key, Value: &v}
	if n := len(d); n > 0 && strings.TrimSpace(d[n-1].Key) == "" {
		return append(d[:n-1], row, d[n-1])
	}
	return append(d, row)
}

// blankDraft builds a draft seeded with one empty row per given field
// descriptor, so a freshly opened form immediately exposes the inputs
// the provider kind calls for.
func blankDraft(fields []FieldMeta) DraftMap {
	d := make(DraftMap, 0, len(fields)+1)
	for _, f := range fields {
		d = append(d, DraftPair{Key: f.ID, Value: new(string)})
	}
	return append(d, DraftPair{})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
