package scheduler

import (
	"cmp"
	"slices"
)

// delayKey orders employees by delay count, then id. The id tie-break keeps
// least-delay selection deterministic.
type delayKey struct {
	delays int
	id     int
}

func compareDelayKeys(a, b delayKey) int {
	if c := cmp.Compare(a.delays, b.delays); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

// delayIndex is a sorted slice of keys. The key of an employee changes with
// its delay count, so callers remove the old key before mutating and insert
// the new one after.
type delayIndex struct {
	keys []delayKey
}

func (x *delayIndex) insert(k delayKey) {
	i, found := slices.BinarySearchFunc(x.keys, k, compareDelayKeys)
	if found {
		return
	}
	x.keys = slices.Insert(x.keys, i, k)
}

func (x *delayIndex) remove(k delayKey) {
	i, found := slices.BinarySearchFunc(x.keys, k, compareDelayKeys)
	if !found {
		return
	}
	x.keys = slices.Delete(x.keys, i, i+1)
}

func (x *delayIndex) ids() []int {
	out := make([]int, len(x.keys))
	for i, k := range x.keys {
		out[i] = k.id
	}
	return out
}

// freeQueue holds candidate ids for FIFO assignment. Entries can go stale
// (the employee got assigned another way), so consumers must re-check.
type freeQueue struct {
	ids []int
}

// push moves id to the tail, dropping any earlier occurrence.
func (q *freeQueue) push(id int) {
	q.remove(id)
	q.ids = append(q.ids, id)
}

func (q *freeQueue) pop() (int, bool) {
	if len(q.ids) == 0 {
		return 0, false
	}
	id := q.ids[0]
	q.ids = q.ids[1:]
	return id, true
}

func (q *freeQueue) remove(id int) {
	q.ids = slices.DeleteFunc(q.ids, func(x int) bool { return x == id })
}

func (q *freeQueue) snapshot() []int {
	return slices.Clone(q.ids)
}
