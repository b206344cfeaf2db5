package rc

import (
	"testing"
)

// ledger records block events in order.
type ledger struct {
	events    []string
	allocated int
	destroyed int
	freed     int
	errs      []error
}

func (l *ledger) Allocated(kind Kind) {
	l.allocated++
	l.events = append(l.events, "allocated "+kind.String())
}

func (l *ledger) Destroyed(kind Kind, err error) {
	l.destroyed++
	if err != nil {
		l.errs = append(l.errs, err)
	}
	l.events = append(l.events, "destroyed "+kind.String())
}

func (l *ledger) Freed(kind Kind) {
	l.freed++
	l.events = append(l.events, "freed "+kind.String())
}

// useLedger installs a fresh ledger for the duration of the test.
func useLedger(t *testing.T) *ledger {
	t.Helper()
	l := new(ledger)
	SetObserver(l)
	t.Cleanup(func() { SetObserver(nil) })
	return l
}

// object counts its own Close calls.
type object struct {
	id     int
	closed int
}

func (o *object) Close() error {
	o.closed++
	return nil
}

// counts returns the raw counters of the block behind h.
func counts(h Handle) (strong, weak uint32) {
	b := h.owner()
	if b == nil {
		return
	}
	ctrl := b.base()
	return ctrl.strong, ctrl.weak
}

func blockState(h Handle) state {
	return h.owner().base().state
}
