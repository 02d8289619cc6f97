// Copyright Chrono Technologies LLC
// SPDX-License-Identifier: MIT

// Package art provides an in-memory, ordered key-value index implemented as
// an Adaptive Radix Tree (ART). It maps variable-length byte-string keys to
// variable-length byte-string values with point lookup, insertion, and
// removal.
//
// The tree adapts the width of each inner node (4, 16, 48, or 256 children)
// to the number of distinct bytes actually in use at that point in the key
// space, and compresses runs of single-child inner nodes into one node
// carrying a shared key prefix. Inner nodes are not created until two keys
// collide on the same path, so a tree holding a single long key allocates a
// single leaf rather than one inner node per byte.
//
// This package does not provide persistence, range scans, snapshots, or an
// iterator interface. A *Tree is safe for concurrent use: all reads and
// writes go through an internal sync.RWMutex, so callers do not need to
// coordinate access themselves.
package art
