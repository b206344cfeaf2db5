package unique

import "io"

// Deleter destroys an owned value of type P.
type Deleter[P any] interface {
	Delete(P) error
}

// Nop does nothing; the garbage collector reclaims the value.
type Nop[P any] struct{}

func (Nop[P]) Delete(P) error { return nil }

// Closer closes the owned value.
type Closer[P io.Closer] struct{}

func (Closer[P]) Delete(p P) error { return p.Close() }

// Func adapts a function to a Deleter.
type Func[P any] func(P) error

func (f Func[P]) Delete(p P) error { return f(p) }
