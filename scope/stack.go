// stack.go — Ordered composition of scope guards with reverse-order teardown.
package scope

import (
	"errors"
	"fmt"
)

// Stack composes scope guards. Guards are pushed as they are set up and
// unwound in reverse order, unconditionally, so an inner failure still tears
// down every outer scope.
//
// Typical use:
//
//	var scopes scope.Stack
//	defer func() { err = errors.Join(err, scopes.Unwind()) }()
//	if err := scopes.Enter("panel", openPanel); err != nil {
//		return err
//	}
type Stack struct {
	guards []guard
}

type guard struct {
	name    string
	restore RestoreFunc
}

// Push registers a restore to run during Unwind. A nil restore is ignored.
func (s *Stack) Push(name string, restore RestoreFunc) {
	if restore == nil {
		return
	}
	s.guards = append(s.guards, guard{name: name, restore: restore})
}

// Enter runs setup and pushes the restore it returns. On setup failure
// nothing is pushed and the error is returned annotated with the scope name.
func (s *Stack) Enter(name string, setup func() (RestoreFunc, error)) error {
	restore, err := setup()
	if err != nil {
		return fmt.Errorf("%s scope: %w", name, err)
	}
	s.Push(name, restore)
	return nil
}

// Len returns the number of active guards.
func (s *Stack) Len() int { return len(s.guards) }

// Unwind runs all restores newest-first and clears the stack. Every restore
// runs even if earlier ones fail; failures are joined into one error.
func (s *Stack) Unwind() error {
	var unwindErr error
	for i := len(s.guards) - 1; i >= 0; i-- {
		g := s.guards[i]
		if err := g.restore(); err != nil {
			unwindErr = errors.Join(unwindErr, fmt.Errorf("%s scope: %w", g.name, err))
		}
	}
	s.guards = nil
	return unwindErr
}
