package hashing

import (
	"sync"

	"github.com/lgbarn/cgtcase/internal/gamecase"
)

// ThreadSafeDuplicateDetector is a DuplicateDetector guarded by a mutex, for
// callers that check cases from several goroutines.
type ThreadSafeDuplicateDetector struct {
	mu sync.RWMutex
	d  *DuplicateDetector
}

// NewThreadSafeDuplicateDetector creates a detector; see NewDuplicateDetector.
func NewThreadSafeDuplicateDetector(exactMatch bool, maxCapacity int) *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{d: NewDuplicateDetector(exactMatch, maxCapacity)}
}

// CheckAndAdd checks c and records it in one step.
func (t *ThreadSafeDuplicateDetector) CheckAndAdd(c *gamecase.Case) (CaseSignature, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.d.CheckAndAdd(c)
}

func (t *ThreadSafeDuplicateDetector) DuplicateCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.d.DuplicateCount()
}

func (t *ThreadSafeDuplicateDetector) UniqueCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.d.UniqueCount()
}

func (t *ThreadSafeDuplicateDetector) IsFull() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.d.IsFull()
}

// Reset forgets every recorded case.
func (t *ThreadSafeDuplicateDetector) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.d.Reset()
}
