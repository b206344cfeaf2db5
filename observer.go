package rc

// Kind identifies a control block variant.
type Kind uint8

const (
	// KindPointer blocks own an object allocated apart from the block (New, NewFunc, ResetTo).
	KindPointer Kind = iota + 1
	// KindEmplace blocks embed the object in their own storage (Make, MakeValue).
	KindEmplace
)

func (k Kind) String() string {
	switch k {
	case KindPointer:
		return "pointer"
	case KindEmplace:
		return "emplace"
	default:
		return "unknown"
	}
}

// Observer receives lifecycle events of control blocks.
//
// Events are delivered synchronously from the goroutine running the
// handle operation. An Observer must not create or release handles.
type Observer interface {
	// Allocated is called when a block and its object come into existence.
	Allocated(kind Kind)
	// Destroyed is called after the destruction action of an object has run.
	// err is the error returned by that action.
	Destroyed(kind Kind, err error)
	// Freed is called when a block has no references left.
	Freed(kind Kind)
}

var observer Observer = nopObserver{}

// SetObserver installs o as the process-wide Observer.
// A nil o restores the default, which discards events.
//
// SetObserver must not be called concurrently with handle operations.
func SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	observer = o
}

// Observers returns an Observer that forwards every event to each of os in order.
func Observers(os ...Observer) Observer {
	return multiObserver(os)
}

type nopObserver struct{}

func (nopObserver) Allocated(Kind)        {}
func (nopObserver) Destroyed(Kind, error) {}
func (nopObserver) Freed(Kind)            {}

type multiObserver []Observer

func (m multiObserver) Allocated(kind Kind) {
	for _, o := range m {
		o.Allocated(kind)
	}
}

func (m multiObserver) Destroyed(kind Kind, err error) {
	for _, o := range m {
		o.Destroyed(kind, err)
	}
}

func (m multiObserver) Freed(kind Kind) {
	for _, o := range m {
		o.Freed(kind)
	}
}
