package engine

import (
	"unsafe"

	"github.com/xoto10/laser-chess-engine/board"
)

// Node classes stored in the table.
const (
	PVNode uint8 = iota
	CutNode
	AllNode
)

const ttClusterSize = 4

// DefaultHashMB is the table size at engine start, adjustable over UCI.
const DefaultHashMB = 16

// ttEntry is one transposition table slot. The full key is kept for
// verification; score bounds depend on the node type (exact for PV, lower
// for cut, upper for all). age records the root move number at insert.
type ttEntry struct {
	key      uint64
	move     board.Move
	score    int16
	depth    int8
	nodeType uint8
	age      uint8
}

// TransTable is a fixed-size cache of search results, bucketed into
// four-entry clusters selected by the key modulo the cluster count.
type TransTable struct {
	entries      []ttEntry
	clusterCount uint64
	keys         uint64
}

// NewTransTable allocates a table of roughly the given size in megabytes.
func NewTransTable(megabytes int) *TransTable {
	tt := &TransTable{}
	tt.resize(megabytes)
	return tt
}

func (tt *TransTable) resize(megabytes int) {
	entrySize := uint64(unsafe.Sizeof(ttEntry{}))
	clusterCount := uint64(megabytes) * 1024 * 1024 / (entrySize * ttClusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	tt.clusterCount = clusterCount
	tt.entries = make([]ttEntry, clusterCount*ttClusterSize)
	tt.keys = 0
}

// Clear drops every entry but keeps the allocation.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = ttEntry{}
	}
	tt.keys = 0
}

// getSize returns the entry capacity.
func (tt *TransTable) getSize() uint64 {
	return tt.clusterCount * ttClusterSize
}

// hashfull reports the fill rate in permille for UCI output.
func (tt *TransTable) hashfull() uint64 {
	return 1000 * tt.keys / tt.getSize()
}

// get returns the entry whose key matches exactly, or nil.
func (tt *TransTable) get(key uint64) *ttEntry {
	base := key % tt.clusterCount * ttClusterSize
	for i := uint64(0); i < ttClusterSize; i++ {
		if entry := &tt.entries[base+i]; entry.key == key {
			return entry
		}
	}
	return nil
}

// add stores a search result. Same-key entries are updated in place; else
// an empty slot is taken; else the victim is the slot scoring worst on a
// single age-then-depth preference, which keeps one effectively
// always-replace slot per cluster for fresh entries.
func (tt *TransTable) add(key uint64, depth int, m board.Move, score int, nodeType uint8, age uint8, ply int) {
	base := key % tt.clusterCount * ttClusterSize

	target := -1
	for i := uint64(0); i < ttClusterSize; i++ {
		if tt.entries[base+i].key == key {
			target = int(base + i)
			break
		}
	}
	if target == -1 {
		for i := uint64(0); i < ttClusterSize; i++ {
			if tt.entries[base+i].key == 0 {
				target = int(base + i)
				tt.keys++
				break
			}
		}
	}
	if target == -1 {
		worst := int(base)
		worstScore := replaceScore(&tt.entries[base], age)
		for i := uint64(1); i < ttClusterSize; i++ {
			if s := replaceScore(&tt.entries[base+i], age); s < worstScore {
				worstScore = s
				worst = int(base + i)
			}
		}
		target = worst
	}

	stored := scoreToTT(score, ply)
	if stored > 32767 {
		stored = 32767
	} else if stored < -32767 {
		stored = -32767
	}
	tt.entries[target] = ttEntry{
		key:      key,
		move:     m,
		score:    int16(stored),
		depth:    int8(depth),
		nodeType: nodeType,
		age:      age,
	}
}

// replaceScore ranks an entry's right to stay: entries from an earlier root
// move are stale and go first, then the shallowest subtree loses.
func replaceScore(entry *ttEntry, currentAge uint8) int {
	score := int(entry.depth)
	if entry.age != currentAge {
		score -= 2 * MaxDepth
	}
	return score
}

// scoreToTT makes mate scores ply-independent before storing: a mate found
// at this node keeps its distance from the node, not from the root.
func scoreToTT(score, ply int) int {
	if score >= MateScore-MaxDepth {
		return score + ply
	}
	if score <= -MateScore+MaxDepth {
		return score - ply
	}
	return score
}

// scoreFromTT is the inverse adjustment at probe time.
func scoreFromTT(score, ply int) int {
	if score >= MateScore-MaxDepth {
		return score - ply
	}
	if score <= -MateScore+MaxDepth {
		return score + ply
	}
	return score
}
