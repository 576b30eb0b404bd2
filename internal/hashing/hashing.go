// Package hashing detects repeated positions.
package hashing

import (
	"github.com/lgbarn/chessrules-go/internal/chess"
)

// Signature identifies a position for duplicate detection.
type Signature struct {
	// Hash is the Zobrist hash of the position
	Hash uint64
	// WeakHash is a placement checksum compared when hashes match
	WeakHash uint32
}

// NewSignature computes the signature of a position.
func NewSignature(pos *chess.Position) Signature {
	return Signature{Hash: GenerateZobristHash(pos), WeakHash: WeakHash(pos)}
}

// DuplicateDetector tracks seen positions.
type DuplicateDetector struct {
	hashTable      map[uint64][]Signature
	duplicateCount int
	uniqueCount    int
	// maxCapacity of 0 means unlimited.
	maxCapacity int
}

// NewDuplicateDetector creates a detector. maxCapacity of 0 means unlimited
// capacity; once full, new positions are no longer recorded.
func NewDuplicateDetector(maxCapacity int) *DuplicateDetector {
	if maxCapacity < 0 {
		maxCapacity = 0
	}
	return &DuplicateDetector{
		hashTable:   make(map[uint64][]Signature),
		maxCapacity: maxCapacity,
	}
}

// CheckAndAdd reports whether the position was seen before and records it
// if it was not.
func (d *DuplicateDetector) CheckAndAdd(pos *chess.Position) bool {
	if pos == nil {
		return false
	}
	return d.checkAndAddSignature(NewSignature(pos))
}

func (d *DuplicateDetector) checkAndAddSignature(sig Signature) bool {
	for _, existing := range d.hashTable[sig.Hash] {
		if existing == sig {
			d.duplicateCount++
			return true
		}
	}
	if d.IsFull() {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.uniqueCount++
	return false
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of distinct positions recorded.
func (d *DuplicateDetector) UniqueCount() int {
	return d.uniqueCount
}

// IsFull reports whether the capacity limit has been reached.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.uniqueCount >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]Signature)
	d.duplicateCount = 0
	d.uniqueCount = 0
}
