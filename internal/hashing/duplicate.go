// Package hashing provides the test case content hash and duplicate
// detection for parsed cases.
package hashing

import (
	"github.com/lgbarn/cgtcase/internal/gamecase"
)

// DuplicateDetector tracks seen case hashes for duplicate case detection.
type DuplicateDetector struct {
	// hashTable stores the first case seen for each hash
	hashTable map[string][]CaseSignature
	// useExactMatch also compares the run command, not just the hash
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
	// maxCapacity limits the number of stored signatures (0 = unlimited)
	maxCapacity int
	// size is the number of stored signatures
	size int
}

// CaseSignature stores identifying information about a case.
type CaseSignature struct {
	Hash    string
	Command string // Canonical run command entry, e.g. "B win"
	Source  string
	Line    int
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[string][]CaseSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// SignatureOf builds the signature of c.
func SignatureOf(c *gamecase.Case) CaseSignature {
	return CaseSignature{
		Hash:    c.Hash,
		Command: c.Command.String(),
		Source:  c.Source,
		Line:    c.Line,
	}
}

// CheckAndAdd checks if a case is a duplicate and records it otherwise.
// When the case is a duplicate, the signature of the first matching case is
// returned alongside true.
func (d *DuplicateDetector) CheckAndAdd(c *gamecase.Case) (CaseSignature, bool) {
	if c == nil || c.Hash == "" {
		return CaseSignature{}, false
	}

	sig := SignatureOf(c)
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return existing, true
		}
	}

	if d.IsFull() {
		return CaseSignature{}, false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.size++
	return CaseSignature{}, false
}

func (d *DuplicateDetector) signaturesMatch(a, b CaseSignature) bool {
	if a.Hash != b.Hash {
		return false
	}
	if d.useExactMatch && a.Command != b.Command {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique cases.
func (d *DuplicateDetector) UniqueCount() int {
	return d.size
}

// IsFull returns true if the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.size >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[string][]CaseSignature)
	d.duplicateCount = 0
	d.size = 0
}
