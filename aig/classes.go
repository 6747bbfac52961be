// Copyright 2021 The CEC Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package aig

// Void marks a node as having no representative or no successor.
const Void = -1

// Classes partitions node ids into candidate equivalence classes.
// Each class is a singly linked chain of ids rooted at a head which
// is its own representative.  Chains are strictly increasing in id.
// The structure is a pair of parallel index arrays, keeping the node
// arena itself free of class bookkeeping.
type Classes struct {
	repr []int32
	next []int32
}

// NewClasses creates an empty class structure over n node ids.
func NewClasses(n int) *Classes {
	c := &Classes{
		repr: make([]int32, n),
		next: make([]int32, n),
	}
	for i := range c.repr {
		c.repr[i] = Void
		c.next[i] = Void
	}
	return c
}

// Len gives the number of node ids covered.
func (c *Classes) Len() int {
	return len(c.repr)
}

// Repr gives the representative of id, or Void.
func (c *Classes) Repr(id int) int {
	return int(c.repr[id])
}

// SetRepr sets the representative of id.
func (c *Classes) SetRepr(id, repr int) {
	c.repr[id] = int32(repr)
}

// Next gives the next chain member after id, or Void.
func (c *Classes) Next(id int) int {
	return int(c.next[id])
}

// SetNext sets the next chain member after id.
func (c *Classes) SetNext(id, next int) {
	c.next[id] = int32(next)
}

// IsHead tells whether id is the head of a class with at least two
// members.
func (c *Classes) IsHead(id int) bool {
	return c.repr[id] == Void && c.next[id] != Void
}

// InClass tells whether id belongs to any class.
func (c *Classes) InClass(id int) bool {
	return c.repr[id] != Void || c.next[id] != Void
}

// Counts gives the number of classes and the number of non-head
// members over all classes.
func (c *Classes) Counts() (classes, members int) {
	for id := range c.repr {
		if c.IsHead(id) {
			classes++
		}
		if c.repr[id] != Void {
			members++
		}
	}
	return classes, members
}
