// Package scope implements the snapshot/apply/restore pattern used around a
// capture: apply desired settings to a target, run the enclosed work, then
// reapply the originals — on every exit path, in reverse order of setup.
//
// It is generic over get/set accessors, so panels, cameras, and global
// preferences all share one implementation instead of near-duplicates.
package scope

import (
	"errors"
	"fmt"
	"sort"

	"github.com/viewcap/viewcap/host"
)

// Accessor reads and writes named values on one target.
type Accessor interface {
	Get(name string) (host.Value, error)
	Set(name string, value host.Value) error
}

// Funcs adapts two closures into an Accessor.
type Funcs struct {
	GetFunc func(name string) (host.Value, error)
	SetFunc func(name string, value host.Value) error
}

func (f Funcs) Get(name string) (host.Value, error)     { return f.GetFunc(name) }
func (f Funcs) Set(name string, value host.Value) error { return f.SetFunc(name, value) }

// RestoreFunc undoes one scope's effect. Restores must be safe to call
// exactly once and should not depend on later scopes still being active.
type RestoreFunc func() error

// Applied snapshots the current value of every key in desired, applies the
// desired values in sorted key order, and returns a restore that reapplies
// the snapshot.
//
// If a set fails partway, the keys already applied are rolled back before
// the error returns, so the caller never observes a half-applied target.
func Applied(target Accessor, desired map[string]host.Value) (RestoreFunc, error) {
	keys := make([]string, 0, len(desired))
	for k := range desired {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	original := make(map[string]host.Value, len(keys))
	for _, k := range keys {
		v, err := target.Get(k)
		if err != nil {
			return nil, fmt.Errorf("snapshot %q: %w", k, err)
		}
		original[k] = v
	}

	applied := make([]string, 0, len(keys))
	for _, k := range keys {
		if err := target.Set(k, desired[k]); err != nil {
			err = fmt.Errorf("apply %q: %w", k, err)
			for i := len(applied) - 1; i >= 0; i-- {
				name := applied[i]
				if rerr := target.Set(name, original[name]); rerr != nil {
					err = errors.Join(err, fmt.Errorf("rollback %q: %w", name, rerr))
				}
			}
			return nil, err
		}
		applied = append(applied, k)
	}

	return func() error {
		var restoreErr error
		for i := len(keys) - 1; i >= 0; i-- {
			k := keys[i]
			if err := target.Set(k, original[k]); err != nil {
				restoreErr = errors.Join(restoreErr, fmt.Errorf("restore %q: %w", k, err))
			}
		}
		return restoreErr
	}, nil
}

// Snapshot reads the current value of every named key from the target.
func Snapshot(target Accessor, names []string) (map[string]host.Value, error) {
	out := make(map[string]host.Value, len(names))
	for _, name := range names {
		v, err := target.Get(name)
		if err != nil {
			return nil, fmt.Errorf("snapshot %q: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

// Apply writes every desired value to the target with no restore bookkeeping.
func Apply(target Accessor, desired map[string]host.Value) error {
	keys := make([]string, 0, len(desired))
	for k := range desired {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := target.Set(k, desired[k]); err != nil {
			return fmt.Errorf("apply %q: %w", k, err)
		}
	}
	return nil
}
