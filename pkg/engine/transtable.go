package engine

import (
	. "github.com/ChizhovVadim/CounterDots/pkg/common"
)

const bucketSize = 4

//24 bytes
type transEntry struct {
	key   uint64
	move  Move
	value int32
	depth int32
}

// entries of a bucket are filled front to back, an empty key ends the used part.
type transBucket [bucketSize]transEntry

type transTable struct {
	megabytes int
	buckets   []transBucket
}

func newTransTable(megabytes int) *transTable {
	var size = Max(1, 1024*1024*megabytes/(24*bucketSize))
	return &transTable{
		megabytes: megabytes,
		buckets:   make([]transBucket, size),
	}
}

func (tt *transTable) Size() int {
	return tt.megabytes
}

func (tt *transTable) Clear() {
	for i := range tt.buckets {
		tt.buckets[i] = transBucket{}
	}
}

func (tt *transTable) bucket(key uint64) *transBucket {
	return &tt.buckets[key%uint64(len(tt.buckets))]
}

func (tt *transTable) Read(key uint64) (move Move, value, depth int, ok bool) {
	var bucket = tt.bucket(key)
	for i := range bucket {
		var entry = &bucket[i]
		if entry.key == 0 {
			return
		}
		if entry.key == key {
			return entry.move, int(entry.value), int(entry.depth), true
		}
	}
	return
}

// Update prefers deep entries: a new entry is inserted in front of the first
// entry searched no deeper, pushing the last one out. Otherwise it is dropped.
func (tt *transTable) Update(key uint64, move Move, value, depth int) {
	var bucket = tt.bucket(key)
	var newEntry = transEntry{
		key:   key,
		move:  move,
		value: int32(value),
		depth: int32(depth),
	}
	for i := range bucket {
		var entry = &bucket[i]
		if entry.key == 0 {
			*entry = newEntry
			return
		}
		if entry.key == key {
			if depth >= int(entry.depth) {
				*entry = newEntry
			}
			return
		}
	}
	for i := range bucket {
		if depth >= int(bucket[i].depth) {
			copy(bucket[i+1:], bucket[i:bucketSize-1])
			bucket[i] = newEntry
			return
		}
	}
}

// HashFull is the per mille of used entries in the first buckets.
func (tt *transTable) HashFull() int {
	var n = Min(1000, len(tt.buckets))
	var used = 0
	for i := 0; i < n; i++ {
		for j := range tt.buckets[i] {
			if tt.buckets[i][j].key != 0 {
				used++
			}
		}
	}
	return used * 1000 / (n * bucketSize)
}
