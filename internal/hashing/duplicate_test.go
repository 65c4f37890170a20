package hashing

import (
	"fmt"
	"sync"
	"testing"

	"github.com/lgbarn/cgtcase/internal/gamecase"
)

func newCase(hash string, player gamecase.Player, line int) *gamecase.Case {
	return &gamecase.Case{
		Hash:    hash,
		Command: gamecase.RunCommand{Player: player},
		Source:  "dup.test",
		Line:    line,
	}
}

func TestDuplicateDetector(t *testing.T) {
	d := NewDuplicateDetector(false, 0)

	if _, dup := d.CheckAndAdd(newCase("AAAA", gamecase.Black, 1)); dup {
		t.Error("first case reported as duplicate")
	}
	first, dup := d.CheckAndAdd(newCase("AAAA", gamecase.Black, 7))
	if !dup {
		t.Fatal("identical hash not reported as duplicate")
	}
	if first.Line != 1 || first.Source != "dup.test" {
		t.Errorf("first seen = %+v, want line 1 of dup.test", first)
	}
	if _, dup := d.CheckAndAdd(newCase("BBBB", gamecase.Black, 9)); dup {
		t.Error("different hash reported as duplicate")
	}

	if d.DuplicateCount() != 1 || d.UniqueCount() != 2 {
		t.Errorf("duplicates = %d, unique = %d; want 1, 2", d.DuplicateCount(), d.UniqueCount())
	}

	d.Reset()
	if d.DuplicateCount() != 0 || d.UniqueCount() != 0 {
		t.Error("Reset did not clear the detector")
	}
}

func TestDuplicateDetector_ExactMatch(t *testing.T) {
	d := NewDuplicateDetector(true, 0)
	d.CheckAndAdd(newCase("AAAA", gamecase.Black, 1))
	if _, dup := d.CheckAndAdd(newCase("AAAA", gamecase.White, 2)); dup {
		t.Error("exact match should compare the run command")
	}
	if _, dup := d.CheckAndAdd(newCase("AAAA", gamecase.White, 3)); !dup {
		t.Error("same hash and command should be a duplicate")
	}
}

func TestDuplicateDetector_IgnoresUnhashed(t *testing.T) {
	d := NewDuplicateDetector(false, 0)
	d.CheckAndAdd(newCase("", gamecase.Black, 1))
	if _, dup := d.CheckAndAdd(newCase("", gamecase.Black, 2)); dup {
		t.Error("cases without a hash are never duplicates")
	}
	if _, dup := d.CheckAndAdd(nil); dup {
		t.Error("nil case reported as duplicate")
	}
}

func TestDuplicateDetector_Capacity(t *testing.T) {
	d := NewDuplicateDetector(false, 2)
	for i := 0; i < 4; i++ {
		d.CheckAndAdd(newCase(fmt.Sprintf("H%d", i), gamecase.Black, i))
	}
	if !d.IsFull() {
		t.Error("IsFull() = false at capacity")
	}
	if d.UniqueCount() != 2 {
		t.Errorf("UniqueCount() = %d, want 2", d.UniqueCount())
	}
	// Stored hashes are still detected when full.
	if _, dup := d.CheckAndAdd(newCase("H0", gamecase.Black, 10)); !dup {
		t.Error("stored hash not detected once full")
	}
}

func TestThreadSafeDuplicateDetector_Concurrent(t *testing.T) {
	detector := NewThreadSafeDuplicateDetector(false, 0)

	const numCases = 100
	const numWorkers = 10
	perWorker := numCases / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				detector.CheckAndAdd(newCase("SAME", gamecase.Black, workerID*perWorker+j))
			}
		}(w)
	}
	wg.Wait()

	if detector.DuplicateCount() != numCases-1 {
		t.Errorf("Expected %d duplicates, got %d", numCases-1, detector.DuplicateCount())
	}
	if detector.UniqueCount() != 1 {
		t.Errorf("Expected 1 unique, got %d", detector.UniqueCount())
	}
	if detector.IsFull() {
		t.Error("unlimited detector reports full")
	}

	detector.Reset()
	if detector.UniqueCount() != 0 || detector.DuplicateCount() != 0 {
		t.Error("Reset should forget every case")
	}
}
