// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

// Units holds the per-unit metadata of a stream of results.
type Units struct {
	// Metadata is the unit metadata in the order it should be
	// written. Writer emits each entry once.
	Metadata []UnitMetadata
}

// UnitMetadata is a single piece of unit metadata, such as
// "better=lower" for unit "ms/op".
type UnitMetadata struct {
	Unit       string
	Key, Value string
}

// Get returns the value of key for unit, if any.
func (u *Units) Get(unit, key string) (string, bool) {
	for _, m := range u.Metadata {
		if m.Unit == unit && m.Key == key {
			return m.Value, true
		}
	}
	return "", false
}
