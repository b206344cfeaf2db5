package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dacapoday/rc"
	"github.com/dacapoday/rc/scope"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errArgs           = errors.New("wrong number of arguments")
	errUnknownHandle  = errors.New("unknown handle")
	errHandleKind     = errors.New("handle kind mismatch")
)

// arity is the number of arguments of each command.
var arity = map[string]int{
	"new": 1, "make": 1, "reset": 1, "count": 1, "expired": 1,
	"clone": 2, "move": 2, "weak": 2, "lock": 2, "promote": 2, "swap": 2,
}

// item is the object managed by script handles.
type item struct {
	name string
	out  io.Writer
}

func (it *item) Close() error {
	fmt.Fprintf(it.out, "destroy %s\n", it.name)
	return nil
}

// machine holds the named handles of a script.
type machine struct {
	out    io.Writer
	strong map[string]*rc.Shared[item]
	weak   map[string]*rc.Weak[item]
	scope  scope.Scope
}

func newMachine(out io.Writer) *machine {
	return &machine{
		out:    out,
		strong: make(map[string]*rc.Shared[item]),
		weak:   make(map[string]*rc.Weak[item]),
	}
}

func run(r io.Reader, out io.Writer) (err error) {
	m := newMachine(out)
	defer func() {
		if cerr := m.close(); err == nil {
			err = cerr
		}
	}()

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text, _, _ := strings.Cut(scanner.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if err = m.exec(fields[0], fields[1:]); err != nil {
			return fmt.Errorf("line %d: %s: %w", line, fields[0], err)
		}
	}
	return scanner.Err()
}

func (m *machine) exec(cmd string, args []string) error {
	n, ok := arity[cmd]
	if !ok {
		return errUnknownCommand
	}
	if len(args) != n {
		return errArgs
	}

	switch cmd {
	case "new":
		return m.setStrong(args[0], rc.New(&item{name: args[0], out: m.out}))
	case "make":
		s, err := rc.Make(func(it *item) error {
			it.name, it.out = args[0], m.out
			return nil
		})
		if err != nil {
			return err
		}
		return m.setStrong(args[0], s)
	case "clone":
		src, err := m.getStrong(args[1])
		if err != nil {
			return err
		}
		return m.setStrong(args[0], src.Clone())
	case "move":
		src, err := m.getStrong(args[1])
		if err != nil {
			return err
		}
		return m.setStrong(args[0], src.Move())
	case "weak":
		src, err := m.getStrong(args[1])
		if err != nil {
			return err
		}
		return m.setWeak(args[0], src.Weak())
	case "lock":
		src, err := m.getWeak(args[1])
		if err != nil {
			return err
		}
		return m.setStrong(args[0], src.Lock())
	case "promote":
		src, err := m.getWeak(args[1])
		if err != nil {
			return err
		}
		s, err := src.Promote()
		if err != nil {
			return err
		}
		return m.setStrong(args[0], s)
	case "reset":
		if s, ok := m.strong[args[0]]; ok {
			return s.Reset()
		}
		w, err := m.getWeak(args[0])
		if err != nil {
			return err
		}
		w.Reset()
	case "swap":
		return m.swap(args[0], args[1])
	case "count":
		if s, ok := m.strong[args[0]]; ok {
			fmt.Fprintf(m.out, "%s: %d\n", args[0], s.UseCount())
			return nil
		}
		w, err := m.getWeak(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "%s: %d\n", args[0], w.UseCount())
	case "expired":
		w, err := m.getWeak(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "%s: %t\n", args[0], w.Expired())
	}
	return nil
}

// setStrong stores s under name, releasing the handle it replaces.
func (m *machine) setStrong(name string, s rc.Shared[item]) error {
	if _, ok := m.weak[name]; ok {
		return fmt.Errorf("%w: %s is weak", errHandleKind, name)
	}
	if dst, ok := m.strong[name]; ok {
		return dst.MoveAssign(&s)
	}
	dst := &s
	m.strong[name] = dst
	m.scope.Hold(dst)
	return nil
}

// setWeak stores w under name, releasing the handle it replaces.
func (m *machine) setWeak(name string, w rc.Weak[item]) error {
	if _, ok := m.strong[name]; ok {
		w.Reset()
		return fmt.Errorf("%w: %s is strong", errHandleKind, name)
	}
	if dst, ok := m.weak[name]; ok {
		dst.MoveAssign(&w)
		return nil
	}
	dst := &w
	m.weak[name] = dst
	m.scope.Watch(dst)
	return nil
}

func (m *machine) getStrong(name string) (*rc.Shared[item], error) {
	if s, ok := m.strong[name]; ok {
		return s, nil
	}
	if _, ok := m.weak[name]; ok {
		return nil, fmt.Errorf("%w: %s is weak", errHandleKind, name)
	}
	return nil, fmt.Errorf("%w: %s", errUnknownHandle, name)
}

func (m *machine) getWeak(name string) (*rc.Weak[item], error) {
	if w, ok := m.weak[name]; ok {
		return w, nil
	}
	if _, ok := m.strong[name]; ok {
		return nil, fmt.Errorf("%w: %s is strong", errHandleKind, name)
	}
	return nil, fmt.Errorf("%w: %s", errUnknownHandle, name)
}

func (m *machine) swap(a, b string) error {
	if x, ok := m.strong[a]; ok {
		y, err := m.getStrong(b)
		if err != nil {
			return err
		}
		x.Swap(y)
		return nil
	}
	x, err := m.getWeak(a)
	if err != nil {
		return err
	}
	y, err := m.getWeak(b)
	if err != nil {
		return err
	}
	x.Swap(y)
	return nil
}

func (m *machine) close() error {
	return m.scope.Close()
}
