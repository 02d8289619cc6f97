// Copyright Chrono Technologies LLC
// SPDX-License-Identifier: MIT

package art

// View is a non-owning reference to the bytes of a value stored in the
// tree. It is returned by Tree.Search and is only valid until the next call
// that mutates the tree (Insert or Remove): a caller that needs the bytes to
// outlive a mutation must copy them first.
//
// View exists as a distinct type, rather than a bare []byte, to keep the
// "this is a borrowed view, not a copy you own" contract explicit at call
// sites; Bytes still returns the underlying slice directly since Go slices
// are themselves non-owning references and copying them again would be
// pointless overhead.
type View struct {
	data []byte
}

// Len returns the number of bytes in the view.
func (v View) Len() int {
	return len(v.data)
}

// Bytes returns the underlying byte slice. The returned slice aliases the
// tree's internal storage and must not be modified by the caller.
func (v View) Bytes() []byte {
	return v.data
}

// String returns the view's bytes converted to a string. This allocates a
// copy, same as any []byte-to-string conversion in Go.
func (v View) String() string {
	return string(v.data)
}
