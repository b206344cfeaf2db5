package rc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type node struct {
	SelfRef[node]
	name string

	// seen during Close
	selfValid   bool
	selfExpired bool
}

func (n *node) Close() error {
	self := n.SharedFromThis()
	n.selfValid = self.Valid()
	n.selfExpired = n.this.Expired()
	return self.Reset()
}

func TestSelfRefUnwired(t *testing.T) {
	n := new(node)
	s := n.SharedFromThis()
	require.False(t, s.Valid())
	w := n.WeakFromThis()
	require.True(t, w.Expired())
}

func TestSelfRef(t *testing.T) {
	l := useLedger(t)

	n := &node{name: "a"}
	s := New(n)
	_, weak := counts(s)
	require.Equal(t, uint32(1), weak, "marker holds a weak reference")

	self := n.SharedFromThis()
	require.True(t, self.Equal(s))
	require.True(t, SameOwner(self, s))
	require.Equal(t, 2, self.UseCount())
	require.Equal(t, s.UseCount(), self.UseCount())

	w := n.WeakFromThis()
	require.True(t, SameOwner(w, s))

	// copies do not rewire a live marker
	c := s.Clone()
	_, weak = counts(s)
	require.Equal(t, uint32(2), weak)

	require.NoError(t, c.Reset())
	require.NoError(t, self.Reset())
	require.NoError(t, s.Reset())

	require.True(t, w.Expired())
	require.True(t, n.this.Expired())
	require.Nil(t, n.this.owner(), "marker released on destruction")
	require.Equal(t, 0, l.freed)

	w.Reset()
	require.Equal(t, 1, l.freed)
}

// TestSelfRefDuringDestruction pins the order: the destruction action sees
// an attached but expired marker, and the marker is released afterwards.
func TestSelfRefDuringDestruction(t *testing.T) {
	l := useLedger(t)

	n := new(node)
	s := New(n)
	require.NoError(t, s.Reset())

	require.False(t, n.selfValid)
	require.True(t, n.selfExpired)
	require.Nil(t, n.this.owner())
	require.Equal(t, []string{"allocated pointer", "destroyed pointer", "freed pointer"}, l.events)
}

func TestSelfRefMake(t *testing.T) {
	l := useLedger(t)

	s, err := Make(func(n *node) error {
		n.name = "emplaced"
		return nil
	})
	require.NoError(t, err)

	self := s.Get().SharedFromThis()
	require.True(t, self.Equal(s))
	require.Equal(t, 2, s.UseCount())

	require.NoError(t, self.Reset())
	require.NoError(t, s.Reset())
	require.Equal(t, 1, l.freed)
}

func TestSelfRefPromote(t *testing.T) {
	useLedger(t)

	n := new(node)
	s := New(n)
	w := s.Weak()

	p, err := w.Promote()
	require.NoError(t, err)
	require.True(t, p.Equal(s))

	self := n.SharedFromThis()
	require.Equal(t, 3, self.UseCount())
	require.NoError(t, self.Reset())

	require.NoError(t, p.Reset())
	require.NoError(t, s.Reset())
	w.Reset()
}

type holder struct {
	id    int
	child node
}

// TestSelfRefAlias wires a field's marker to the owner's block.
func TestSelfRefAlias(t *testing.T) {
	l := useLedger(t)

	h := new(holder)
	s := New(h)
	child := Alias(s, &h.child)

	self := h.child.SharedFromThis()
	require.Same(t, &h.child, self.Get())
	require.True(t, SameOwner(self, s))
	require.Equal(t, 3, s.UseCount())

	require.NoError(t, self.Reset())
	require.NoError(t, child.Reset())
	require.NoError(t, s.Reset())
	require.Equal(t, 1, l.destroyed)
	require.Equal(t, 1, l.freed, "marker wired by the alias is released with the owner")
}

// TestSelfRefRewire wires a marker again after its first owner died.
func TestSelfRefRewire(t *testing.T) {
	useLedger(t)

	n := new(node)
	first := NewFunc(n, func(*node) error { return nil })
	require.NoError(t, first.Reset())
	require.True(t, n.this.Expired())

	second := New(n)
	self := n.SharedFromThis()
	require.True(t, SameOwner(self, second))
	require.NoError(t, self.Reset())
	require.NoError(t, second.Reset())
}
