package unique

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

type file struct {
	closed int
}

func (f *file) Close() error {
	f.closed++
	return nil
}

func TestPtrClose(t *testing.T) {
	f := new(file)
	u := New[file, Closer[*file]](f)
	require.True(t, u.Valid())
	require.Same(t, f, u.Get())

	require.NoError(t, u.Close())
	require.Equal(t, 1, f.closed)
	require.False(t, u.Valid())

	require.NoError(t, u.Close())
	require.Equal(t, 1, f.closed)
}

func TestPtrRelease(t *testing.T) {
	f := new(file)
	u := New[file, Closer[*file]](f)
	require.Same(t, f, u.Release())
	require.False(t, u.Valid())
	require.NoError(t, u.Close())
	require.Equal(t, 0, f.closed)
}

func TestPtrReset(t *testing.T) {
	a, b := new(file), new(file)
	u := New[file, Closer[*file]](a)

	require.NoError(t, u.Reset(a))
	require.Equal(t, 0, a.closed)

	require.NoError(t, u.Reset(b))
	require.Equal(t, 1, a.closed)
	require.Same(t, b, u.Get())

	require.NoError(t, u.Reset(nil))
	require.Equal(t, 1, b.closed)
}

func TestPtrMove(t *testing.T) {
	a, b := new(file), new(file)
	u := New[file, Closer[*file]](a)
	v := u.Move()
	require.False(t, u.Valid())
	require.Same(t, a, v.Get())

	w := New[file, Closer[*file]](b)
	require.NoError(t, w.MoveAssign(&v))
	require.Equal(t, 1, b.closed)
	require.Same(t, a, w.Get())
	require.False(t, v.Valid())

	require.NoError(t, w.MoveAssign(&w))
	require.Same(t, a, w.Get())

	require.NoError(t, w.Close())
	require.Equal(t, 1, a.closed)
}

func TestPtrFunc(t *testing.T) {
	errDelete := errors.New("delete")
	var deleted []*file
	deleter := Func[*file](func(f *file) error {
		deleted = append(deleted, f)
		return errDelete
	})

	a, b := new(file), new(file)
	u := NewWith(a, deleter)
	v := NewWith(b, Func[*file](func(*file) error { return nil }))

	u.Swap(&v)
	require.Same(t, b, u.Get())
	require.NoError(t, u.Close())
	require.Empty(t, deleted, "deleter moved with the object")

	require.ErrorIs(t, v.Close(), errDelete)
	require.Equal(t, []*file{a}, deleted)
	require.Equal(t, 0, a.closed)
}

func TestPtrSize(t *testing.T) {
	var ptr *file
	require.Equal(t, unsafe.Sizeof(ptr), unsafe.Sizeof(Ptr[file, Closer[*file]]{}))
	require.Equal(t, unsafe.Sizeof(ptr), unsafe.Sizeof(Ptr[file, Nop[*file]]{}))
	require.Greater(t, unsafe.Sizeof(Ptr[file, Func[*file]]{}), unsafe.Sizeof(ptr))
}

func TestSlice(t *testing.T) {
	var freed [][]int
	deleter := Func[[]int](func(s []int) error {
		freed = append(freed, s)
		return nil
	})

	u := NewSliceWith([]int{1, 2, 3}, deleter)
	require.True(t, u.Valid())
	*u.At(1) = 20
	require.Equal(t, []int{1, 20, 3}, u.Get())

	require.NoError(t, u.Reset(u.Get()))
	require.Empty(t, freed, "resetting to the owned array keeps it")
	require.True(t, u.Valid())

	v := u.Move()
	require.False(t, u.Valid())

	require.NoError(t, v.Reset([]int{4}))
	require.Equal(t, [][]int{{1, 20, 3}}, freed)

	r := v.Release()
	require.Equal(t, []int{4}, r)
	require.NoError(t, v.Close())
	require.Len(t, freed, 1)

	var empty Slice[byte, Nop[[]byte]]
	require.False(t, empty.Valid())
	require.NoError(t, empty.Close())

	n := NewSlice[byte, Nop[[]byte]](make([]byte, 0))
	require.True(t, n.Valid())
	m := NewSlice[byte, Nop[[]byte]](nil)
	n.Swap(&m)
	require.False(t, n.Valid())
	require.True(t, m.Valid())
	require.NoError(t, n.MoveAssign(&m))
	require.True(t, n.Valid())
}
