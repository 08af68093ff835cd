// Copyright 2026 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sl

import "errors"

// ErrDiscarded is the panic value of Discard on the host.
var ErrDiscarded = errors.New("sl: fragment discarded")

// Discard abandons the current fragment. On the host it panics with
// ErrDiscarded; RunFragment recovers it.
func Discard() {
	panic(ErrDiscarded)
}

// RunFragment calls fs on the host and reports whether the fragment
// survived.
func RunFragment[T any](fs func() T) (out T, kept bool) {
	defer func() {
		if r := recover(); r != nil {
			if r != ErrDiscarded {
				panic(r)
			}
			kept = false
		}
	}()
	return fs(), true
}
