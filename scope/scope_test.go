package scope

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viewcap/viewcap/host"
)

// mapTarget is an Accessor over a plain map, with optional per-key set
// failures and a write log.
type mapTarget struct {
	values  map[string]host.Value
	failSet map[string]error
	writes  []string
}

func newMapTarget(values map[string]host.Value) *mapTarget {
	return &mapTarget{values: values, failSet: map[string]error{}}
}

func (m *mapTarget) Get(name string) (host.Value, error) {
	v, ok := m.values[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", host.ErrUnknownOption, name)
	}
	return v, nil
}

func (m *mapTarget) Set(name string, value host.Value) error {
	if err := m.failSet[name]; err != nil {
		return err
	}
	if _, ok := m.values[name]; !ok {
		return fmt.Errorf("%w: %s", host.ErrUnknownOption, name)
	}
	m.values[name] = value
	m.writes = append(m.writes, name)
	return nil
}

func TestAppliedRoundTrip(t *testing.T) {
	target := newMapTarget(map[string]host.Value{
		"grid":       true,
		"polymeshes": false,
		"overscan":   1.0,
	})

	restore, err := Applied(target, map[string]host.Value{
		"grid":     false,
		"overscan": 2.0,
	})
	require.NoError(t, err)

	assert.Equal(t, false, target.values["grid"])
	assert.Equal(t, 2.0, target.values["overscan"])
	// Untouched keys stay untouched.
	assert.Equal(t, false, target.values["polymeshes"])

	require.NoError(t, restore())
	assert.Equal(t, true, target.values["grid"])
	assert.Equal(t, 1.0, target.values["overscan"])
}

func TestAppliedAppliesInSortedOrder(t *testing.T) {
	target := newMapTarget(map[string]host.Value{
		"c": 1, "a": 2, "b": 3,
	})

	restore, err := Applied(target, map[string]host.Value{
		"c": 10, "a": 20, "b": 30,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, target.writes)

	target.writes = nil
	require.NoError(t, restore())
	assert.Equal(t, []string{"c", "b", "a"}, target.writes, "restore runs in reverse order")
}

func TestAppliedUnknownKeyFailsBeforeMutation(t *testing.T) {
	target := newMapTarget(map[string]host.Value{"grid": true})

	_, err := Applied(target, map[string]host.Value{"nope": 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, host.ErrUnknownOption)
	assert.Empty(t, target.writes, "snapshot failure must not write anything")
}

func TestAppliedPartialFailureRollsBack(t *testing.T) {
	target := newMapTarget(map[string]host.Value{
		"a": 1, "b": 2, "c": 3,
	})
	boom := errors.New("host rejected value")
	target.failSet["b"] = boom

	_, err := Applied(target, map[string]host.Value{
		"a": 10, "b": 20, "c": 30,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// "a" was applied before "b" failed and must be rolled back; "c" was
	// never reached.
	assert.Equal(t, 1, target.values["a"])
	assert.Equal(t, 2, target.values["b"])
	assert.Equal(t, 3, target.values["c"])
}

func TestAppliedRestoreReportsEveryFailure(t *testing.T) {
	target := newMapTarget(map[string]host.Value{"a": 1, "b": 2})

	restore, err := Applied(target, map[string]host.Value{"a": 10, "b": 20})
	require.NoError(t, err)

	target.failSet["a"] = errors.New("a is stuck")
	err = restore()
	require.Error(t, err)
	assert.ErrorContains(t, err, "a is stuck")
	// The other key still got restored.
	assert.Equal(t, 2, target.values["b"])
}

func TestSnapshotReadsNamedKeys(t *testing.T) {
	target := newMapTarget(map[string]host.Value{"a": 1, "b": 2, "c": 3})

	snap, err := Snapshot(target, []string{"a", "c"})
	require.NoError(t, err)
	assert.Equal(t, map[string]host.Value{"a": 1, "c": 3}, snap)
}

func TestStackUnwindsInReverseOrder(t *testing.T) {
	var order []string
	var s Stack
	s.Push("outer", func() error { order = append(order, "outer"); return nil })
	s.Push("middle", func() error { order = append(order, "middle"); return nil })
	s.Push("inner", func() error { order = append(order, "inner"); return nil })

	require.NoError(t, s.Unwind())
	assert.Equal(t, []string{"inner", "middle", "outer"}, order)
	assert.Zero(t, s.Len(), "unwind clears the stack")
}

func TestStackUnwindRunsAllRestoresOnError(t *testing.T) {
	var order []string
	var s Stack
	s.Push("outer", func() error { order = append(order, "outer"); return nil })
	s.Push("broken", func() error { return errors.New("restore failed") })
	s.Push("inner", func() error { order = append(order, "inner"); return nil })

	err := s.Unwind()
	require.Error(t, err)
	assert.ErrorContains(t, err, "broken scope")
	assert.Equal(t, []string{"inner", "outer"}, order,
		"a failing restore must not stop the unwind")
}

func TestStackEnterDoesNotPushOnSetupFailure(t *testing.T) {
	var s Stack
	err := s.Enter("panel", func() (RestoreFunc, error) {
		return nil, errors.New("no screen")
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "panel scope")
	assert.Zero(t, s.Len())
}

func TestStackIgnoresNilRestore(t *testing.T) {
	var s Stack
	require.NoError(t, s.Enter("camera", func() (RestoreFunc, error) {
		return nil, nil
	}))
	assert.Zero(t, s.Len())
}
