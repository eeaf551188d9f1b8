package engine

import (
	"testing"

	"github.com/xoto10/laser-chess-engine/board"
)

func TestTransTableRoundTrip(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0xDEADBEEFCAFE1234)
	m := board.NewMove(board.SquareAt(4, 1), board.SquareAt(4, 3), board.Pawn, board.None, board.None, board.FlagNone)

	tt.add(key, 7, m, 42, CutNode, 3, 0)
	entry := tt.get(key)
	if entry == nil {
		t.Fatal("entry not found after add")
	}
	if entry.key != key || entry.move != m || entry.score != 42 ||
		entry.depth != 7 || entry.nodeType != CutNode || entry.age != 3 {
		t.Errorf("entry mismatch: %+v", *entry)
	}
	if tt.get(key^1) != nil {
		t.Error("lookup with a different key must miss")
	}
}

func TestTransTableSameKeyUpdatesInPlace(t *testing.T) {
	tt := NewTransTable(1)
	key := uint64(0x1111)
	tt.add(key, 3, board.NullMove, 10, AllNode, 1, 0)
	tt.add(key, 9, board.NullMove, -5, PVNode, 1, 0)
	entry := tt.get(key)
	if entry == nil || entry.depth != 9 || entry.score != -5 || entry.nodeType != PVNode {
		t.Errorf("second add did not update in place: %+v", entry)
	}
	if tt.keys != 1 {
		t.Errorf("keys: got %d want 1", tt.keys)
	}
}

func TestTransTableEvictsStaleAgeFirst(t *testing.T) {
	tt := NewTransTable(1)
	// Fill one cluster with entries from an old root move, varying depth.
	base := uint64(77)
	var keys []uint64
	for k := base; len(keys) < ttClusterSize; k += tt.clusterCount {
		keys = append(keys, k)
	}
	for i, k := range keys {
		age := uint8(1)
		if i == 2 {
			age = 5 // one fresh entry
		}
		tt.add(k, 20+i, board.NullMove, 0, CutNode, age, 0)
	}

	// A new entry at the current age must displace a stale one, never the
	// fresh deep entry.
	newKey := keys[ttClusterSize-1] + tt.clusterCount
	tt.add(newKey, 1, board.NullMove, 0, CutNode, 5, 0)
	if tt.get(newKey) == nil {
		t.Fatal("new entry was not stored")
	}
	if tt.get(keys[2]) == nil {
		t.Error("fresh entry was evicted ahead of stale ones")
	}
}

func TestMateScorePlyAdjustment(t *testing.T) {
	// A mate found 3 plies below a node at ply 2 is stored relative to the
	// node and must read back correctly at another ply.
	score := MateScore - 5 // mate at distance 5 from the root
	stored := scoreToTT(score, 2)
	if stored != MateScore-3 {
		t.Errorf("stored: got %d want %d", stored, MateScore-3)
	}
	if got := scoreFromTT(stored, 4); got != MateScore-7 {
		t.Errorf("retrieved at ply 4: got %d want %d", got, MateScore-7)
	}

	negScore := -MateScore + 5
	storedNeg := scoreToTT(negScore, 2)
	if storedNeg != -MateScore+3 {
		t.Errorf("stored negative: got %d want %d", storedNeg, -MateScore+3)
	}
	if got := scoreFromTT(storedNeg, 4); got != -MateScore+7 {
		t.Errorf("retrieved negative at ply 4: got %d want %d", got, -MateScore+7)
	}

	// Ordinary scores pass through untouched.
	if got := scoreToTT(123, 9); got != 123 {
		t.Errorf("plain score adjusted: %d", got)
	}
	if got := scoreFromTT(-77, 9); got != -77 {
		t.Errorf("plain score adjusted on read: %d", got)
	}
}

func TestHashfullGrows(t *testing.T) {
	tt := NewTransTable(1)
	if tt.hashfull() != 0 {
		t.Fatal("fresh table should be empty")
	}
	for k := uint64(1); k <= 1000; k++ {
		tt.add(k*7919, 1, board.NullMove, 0, AllNode, 0, 0)
	}
	if tt.hashfull() == 0 && tt.keys == 0 {
		t.Error("population counter never moved")
	}
	tt.Clear()
	if tt.keys != 0 || tt.get(7919) != nil {
		t.Error("Clear left entries behind")
	}
}
