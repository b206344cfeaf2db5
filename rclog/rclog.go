// Package rclog reports control block lifecycle events to a logr.Logger.
//
//	rc.SetObserver(rclog.New(logger))
//
// Allocations and frees are logged at V(1). Destruction is logged at V(1)
// on success, and as an error when the destruction action fails.
package rclog

import (
	"github.com/go-logr/logr"

	"github.com/dacapoday/rc"
)

// Observer implements rc.Observer on top of a logr.Logger.
type Observer struct {
	log logr.Logger
}

var _ rc.Observer = Observer{}

// New returns an Observer writing to log.
func New(log logr.Logger) Observer {
	return Observer{log: log.WithName("rc")}
}

func (o Observer) Allocated(kind rc.Kind) {
	o.log.V(1).Info("allocated", "kind", kind.String())
}

func (o Observer) Destroyed(kind rc.Kind, err error) {
	if err != nil {
		o.log.Error(err, "destroy failed", "kind", kind.String())
		return
	}
	o.log.V(1).Info("destroyed", "kind", kind.String())
}

func (o Observer) Freed(kind rc.Kind) {
	o.log.V(1).Info("freed", "kind", kind.String())
}
