//go:build debug

package rc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssertOverRelease(t *testing.T) {
	s := New(new(object))
	c := s // copied with =, not Clone
	require.NoError(t, s.Reset())
	require.PanicsWithValue(t, "rc.releaseStrong: too many releases", func() {
		_ = c.Reset()
	})
}

func TestAssertAcquireDestroyed(t *testing.T) {
	s := New(new(object))
	w := s.Weak()
	c := s
	require.NoError(t, s.Reset())
	require.Equal(t, destroyed, blockState(w))
	require.PanicsWithValue(t, "rc.acquireStrong: block destroyed, want live", func() {
		c.Clone()
	})
	w.Reset()
}
