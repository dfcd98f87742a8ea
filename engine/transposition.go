package engine

import (
	"sync/atomic"

	"chess-ai/board"
)

const (
	// Flags
	AlphaFlag = iota // upper bound
	BetaFlag         // lower bound
	ExactFlag

	clusterSize = 4
	slotBytes   = 16
)

// TTEntry is a decoded transposition table slot.
type TTEntry struct {
	Depth int8
	Move  board.Move
	Score int16
	Flag  int8
}

// ttSlot stores key^data next to data so a torn write between two workers is
// detected on read instead of being returned as a bogus entry.
type ttSlot struct {
	key  atomic.Uint64
	data atomic.Uint64
}

// TransTable is a fixed-size hash table shared by every search worker.
// It is safe for concurrent use without locks.
type TransTable struct {
	entries      []ttSlot
	clusterCount uint64
}

// NewTransTable allocates a table of roughly sizeMB megabytes.
func NewTransTable(sizeMB int) *TransTable {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	clusterCount := uint64(sizeMB) * 1024 * 1024 / (slotBytes * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	return &TransTable{
		entries:      make([]ttSlot, clusterCount*clusterSize),
		clusterCount: clusterCount,
	}
}

// Clear empties the table. Not safe to call while a search is running.
func (TT *TransTable) Clear() {
	if TT == nil {
		return
	}
	for i := range TT.entries {
		TT.entries[i].key.Store(0)
		TT.entries[i].data.Store(0)
	}
}

const validBit = 1 << 26

func packEntry(depth int, move board.Move, score int, flag int) uint64 {
	if depth < 0 {
		depth = 0
	}
	if depth > 127 {
		depth = 127
	}
	d := uint64(uint16(int16(score)))
	d |= uint64(uint8(depth)) << 16
	d |= uint64(flag&3) << 24
	d |= validBit
	if !move.IsNull() {
		d |= uint64(move.From&63) << 27
		d |= uint64(move.To&63) << 33
		d |= uint64(move.Promotion&7) << 39
		d |= 1 << 42
	}
	return d
}

func unpackEntry(d uint64) TTEntry {
	e := TTEntry{
		Score: int16(uint16(d)),
		Depth: int8(uint8(d >> 16)),
		Flag:  int8((d >> 24) & 3),
		Move:  board.NullMove,
	}
	if d&(1<<42) != 0 {
		e.Move = board.Move{
			From:      board.Square((d >> 27) & 63),
			To:        board.Square((d >> 33) & 63),
			Promotion: board.PieceType((d >> 39) & 7),
		}
	}
	return e
}

// Probe looks up hash and returns the stored entry with mate scores still
// relative to the stored node.
func (TT *TransTable) Probe(hash uint64) (TTEntry, bool) {
	if TT == nil || TT.clusterCount == 0 {
		return TTEntry{}, false
	}
	base := int(hash%TT.clusterCount) * clusterSize
	for i := 0; i < clusterSize; i++ {
		s := &TT.entries[base+i]
		data := s.data.Load()
		if data&validBit == 0 {
			continue
		}
		if s.key.Load()^data == hash {
			return unpackEntry(data), true
		}
	}
	return TTEntry{}, false
}

// useEntry adjusts a probed entry for the current ply and reports whether it
// resolves the node outright. Otherwise the bound narrows alpha or beta.
func useEntry(e TTEntry, depth, ply int, alpha, beta *int) (usable bool, score int) {
	if int(e.Depth) < depth {
		return false, 0
	}
	score = int(e.Score)
	if score > MateThreshold {
		score -= ply
	} else if score < -MateThreshold {
		score += ply
	}
	switch e.Flag {
	case ExactFlag:
		return true, score
	case BetaFlag:
		if score >= *beta {
			return true, score
		}
		if score > *alpha {
			*alpha = score
		}
	case AlphaFlag:
		if score <= *alpha {
			return true, score
		}
		if score < *beta {
			*beta = score
		}
	}
	if *alpha >= *beta {
		return true, score
	}
	return false, 0
}

// Store saves a search result. Mate scores are converted to be relative to
// this node so they stay correct when reached at a different ply.
func (TT *TransTable) Store(hash uint64, depth, ply int, move board.Move, score int, flag int) {
	if TT == nil || TT.clusterCount == 0 {
		return
	}
	if score > MateThreshold {
		score += ply
	} else if score < -MateThreshold {
		score -= ply
	}
	base := int(hash%TT.clusterCount) * clusterSize
	target := -1

	// Prefer updating existing entry
	for i := 0; i < clusterSize; i++ {
		s := &TT.entries[base+i]
		if d := s.data.Load(); d&validBit != 0 && s.key.Load()^d == hash {
			target = base + i
			break
		}
	}

	// Next look for an empty slot
	if target == -1 {
		for i := 0; i < clusterSize; i++ {
			if TT.entries[base+i].data.Load()&validBit == 0 {
				target = base + i
				break
			}
		}
	}

	// Otherwise replace the shallowest entry in the cluster
	if target == -1 {
		target = base
		minDepth := unpackEntry(TT.entries[base].data.Load()).Depth
		for i := 1; i < clusterSize; i++ {
			if d := unpackEntry(TT.entries[base+i].data.Load()).Depth; d < minDepth {
				minDepth = d
				target = base + i
			}
		}
	}

	data := packEntry(depth, move, score, flag)
	s := &TT.entries[target]
	s.data.Store(data)
	s.key.Store(hash ^ data)
}
