// Copyright Chrono Technologies LLC
// SPDX-License-Identifier: MIT

package art

import "sync"

// Tree is an in-memory Adaptive Radix Tree mapping byte-string keys to
// byte-string values. The zero value is an empty tree ready for use, as is
// the one New returns. A *Tree is safe for concurrent use: Insert takes an exclusive lock
// and Search takes a shared one, so any number of goroutines may search
// concurrently with each other, and concurrent mutation is serialized
// against both reads and other writes.
type Tree struct {
	root any // nil, *leafNode, or one of *node4/*node16/*node48/*node256
	size int
	mu   sync.RWMutex
}

// New returns an empty Tree ready for use.
func New() *Tree {
	return &Tree{}
}

// Size returns the number of keys currently stored in the tree.
func (t *Tree) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.size
}

// Search returns the value stored under key. The returned View is valid
// only until the next call to Insert or Remove. The second return value is
// false if the key is not present.
func (t *Tree) Search(key []byte) (View, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	lf := searchNode(t.root, key, 0)

	if lf == nil {
		return View{}, false
	}

	return View{data: lf.value}, true
}

// searchNode implements the core ART search algorithm (SPEC_FULL.md §4.4):
// it verifies only the cheap inline prefix comparison, then advances depth
// by the node's full logical prefixLen regardless of how much of it was
// actually checked, and relies on the final full-key leaf comparison to
// catch any wrong turn taken because a compressed prefix longer than
// prefixCap was not fully verified. It never mutates the tree and never
// allocates.
func searchNode(ref any, key []byte, depth int) *leafNode {
	for {
		switch n := ref.(type) {
		case nil:
			return nil
		case *leafNode:
			if n.matches(key, depth) {
				return n
			}

			return nil
		default:
			h := headerOf(n)

			if !h.checkPrefix(key, depth) {
				return nil
			}

			depth += h.prefixLen

			if depth >= len(key) {
				return nil
			}

			ref = findChildGeneric(n, key[depth])
			depth++
		}
	}
}

// Insert adds key with the given value to the tree, or replaces the value
// of an existing equal key. It returns ErrNilKey if key is nil, and
// ErrKeyIsPrefix if key is a proper prefix of an already-stored key, or an
// already-stored key is a proper prefix of key: this implementation, like
// the structure it is grounded on, requires every stored key to be a
// maximal byte sequence with respect to the rest of the key set, since
// leaves carry no end-of-key sentinel.
func (t *Tree) Insert(key, value []byte) error {
	if key == nil {
		return ErrNilKey
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	newRoot, created, err := insertNode(t.root, key, value, 0)
	if err != nil {
		return err
	}

	t.root = newRoot

	if created {
		t.size++
	}

	return nil
}

// insertNode implements the core ART insertion algorithm (SPEC_FULL.md
// §4.5). Rather than returning a mutable reference to a child slot, it
// returns the (possibly new) subtree that should be written into the
// caller's slot, which keeps every mutation point explicit instead of
// threading pointer-to-pointer state through the recursion.
func insertNode(ref any, key, value []byte, depth int) (any, bool, error) {
	switch n := ref.(type) {
	case nil:
		// Case A: the slot is empty.
		return newLeafNode(key, value), true, nil

	case *leafNode:
		// Case B: collision with an existing leaf.
		if n.matches(key, depth) {
			return newLeafNode(key, value), false, nil
		}

		m := commonBytesFrom(n.key, key, depth)

		if depth+m >= len(n.key) || depth+m >= len(key) {
			return ref, false, ErrKeyIsPrefix
		}

		split := newNode4(key[depth : depth+m])
		split.addChild(n.key[depth+m], n)
		split.addChild(key[depth+m], newLeafNode(key, value))

		return split, true, nil

	default:
		// Case C: descending through an inner node.
		h := headerOf(n)
		p := prefixMismatch(n, key, depth)

		if p != h.prefixLen {
			if depth+p >= len(key) {
				return ref, false, ErrKeyIsPrefix
			}

			return splitPrefix(n, h, key, value, depth, p), true, nil
		}

		depth += h.prefixLen

		if depth >= len(key) {
			return ref, false, ErrKeyIsPrefix
		}

		b := key[depth]
		child := findChildGeneric(n, b)

		if child != nil {
			newChild, created, err := insertNode(child, key, value, depth+1)
			if err != nil {
				return ref, false, err
			}

			setChildGeneric(n, b, newChild)

			return n, created, nil
		}

		leaf := newLeafNode(key, value)

		if isFullGeneric(n) {
			grown := growGeneric(n)
			addChildGeneric(grown, b, leaf)

			return grown, true, nil
		}

		addChildGeneric(n, b, leaf)

		return n, true, nil
	}
}

// splitPrefix handles the prefix-mismatch branch of Case C: it carves off
// the p bytes that n and key still agree on into a new node4, attaches n
// (with its own prefix shortened by p+1 bytes) under the byte at which they
// diverge, and attaches a new leaf for key under key's byte at that same
// position.
func splitPrefix(n any, h *header, key, value []byte, depth, p int) any {
	newPrefix := nodePrefixSlice(n, depth, 0, p)
	splitByte := nodePrefixByte(n, depth, p)
	oldSuffix := nodePrefixSlice(n, depth, p+1, h.prefixLen)

	h.setPrefix(oldSuffix)

	parent := newNode4(newPrefix)
	parent.addChild(splitByte, n)
	parent.addChild(key[depth+p], newLeafNode(key, value))

	return parent
}

// commonBytesFrom returns the number of bytes a and b agree on starting at
// position depth in both slices (both are assumed equal up to depth
// already, by construction of the traversal that reached this point).
func commonBytesFrom(a, b []byte, depth int) int {
	i := depth
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}

	return i - depth
}

// Remove deletes key from the tree if present. It reports whether an entry
// was actually removed; removing an absent key is a no-op and leaves Size
// unchanged.
func (t *Tree) Remove(key []byte) bool {
	if key == nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	newRoot, removed := removeNode(t.root, key, 0)
	if !removed {
		return false
	}

	t.root = newRoot
	t.size--

	return true
}

// removeNode implements the core ART removal algorithm (SPEC_FULL.md
// §4.6). It descends exactly as searchNode does (optimistic prefix checks
// only; a wrong turn is caught by the final full-key leaf comparison and
// simply reported as "not found"), then unwinds back up the call stack
// deleting the matched leaf's slot and shrinking or collapsing any inner
// node whose child count has dropped below its variant's lower bound.
func removeNode(ref any, key []byte, depth int) (any, bool) {
	switch n := ref.(type) {
	case nil:
		return nil, false

	case *leafNode:
		if n.matches(key, depth) {
			return nil, true
		}

		return ref, false

	default:
		h := headerOf(n)

		if !h.checkPrefix(key, depth) {
			return ref, false
		}

		entryDepth := depth
		depth += h.prefixLen

		if depth >= len(key) {
			return ref, false
		}

		b := key[depth]
		child := findChildGeneric(n, b)

		if child == nil {
			return ref, false
		}

		newChild, removed := removeNode(child, key, depth+1)
		if !removed {
			return ref, false
		}

		if newChild == nil {
			removeChildGeneric(n, b)
			return shrinkNode(n, entryDepth), true
		}

		setChildGeneric(n, b, newChild)

		return n, true
	}
}

// shrinkNode applies the post-removal shrink/collapse rule for whichever
// inner-node variant n is, given that a child slot was just freed. depth is
// the key position at which n's own compressed prefix begins.
func shrinkNode(n any, depth int) any {
	switch t := n.(type) {
	case *node4:
		if t.count != 1 {
			return t
		}

		child := t.onlyChild()

		if lf, ok := child.(*leafNode); ok {
			return lf
		}

		return mergeSingleChild(t, t.onlyChildByte(), child, depth)

	case *node16:
		if t.count < 4 {
			return t.shrink()
		}

		return t

	case *node48:
		if t.count < 16 {
			return t.shrink()
		}

		return t

	case *node256:
		if t.count < 48 {
			return t.shrink()
		}

		return t

	default:
		assertf(false, "art: shrinkNode on unknown node type %T", n)
		return nil
	}
}

// mergeSingleChild collapses a node4 whose single remaining child is
// itself an inner node: the parent's compressed prefix, the key byte under
// which the child was stored, and the child's own compressed prefix are
// concatenated into the child's prefix, and the child replaces the parent
// in its grandparent slot.
func mergeSingleChild(parent *node4, b byte, child any, depth int) any {
	childHeader := headerOf(child)
	mergedLen := parent.prefixLen + 1 + childHeader.prefixLen

	buildLen := mergedLen
	if buildLen > prefixCap {
		buildLen = prefixCap
	}

	merged := make([]byte, 0, buildLen)

	n1 := parent.prefixLen
	if n1 > buildLen {
		n1 = buildLen
	}

	merged = append(merged, nodePrefixSlice(parent, depth, 0, n1)...)

	if len(merged) < buildLen {
		merged = append(merged, b)
	}

	if len(merged) < buildLen {
		remaining := buildLen - len(merged)
		childDepth := depth + parent.prefixLen + 1
		merged = append(merged, nodePrefixSlice(child, childDepth, 0, remaining)...)
	}

	childHeader.setPrefixLogical(merged, mergedLen)

	return child
}
