package lib3wl

import (
	"sync"

	"github.com/2x3systems/go3wl/go3wl"
)

// LabelDictionary is an in-memory go3wl.Dictionary.
//
// It is safe for concurrent use, though the kernel only ever shares one across goroutines during a merge.
type LabelDictionary struct {
	mu      sync.RWMutex
	toIndex map[go3wl.Color]uint32
	colors  []go3wl.Color // colors in the order their columns were issued
}

var _ go3wl.Dictionary = (*LabelDictionary)(nil)

func NewDictionary() *LabelDictionary {
	return &LabelDictionary{
		toIndex: make(map[go3wl.Color]uint32),
	}
}

func (dict *LabelDictionary) Insert(c go3wl.Color) uint32 {
	dict.mu.RLock()
	col, exists := dict.toIndex[c]
	dict.mu.RUnlock()
	if exists {
		return col
	}

	dict.mu.Lock()
	defer dict.mu.Unlock()
	if col, exists = dict.toIndex[c]; !exists {
		col = uint32(len(dict.colors))
		dict.toIndex[c] = col
		dict.colors = append(dict.colors, c)
	}
	return col
}

func (dict *LabelDictionary) Lookup(c go3wl.Color) (uint32, bool) {
	dict.mu.RLock()
	col, exists := dict.toIndex[c]
	dict.mu.RUnlock()
	return col, exists
}

func (dict *LabelDictionary) Contains(c go3wl.Color) bool {
	_, exists := dict.Lookup(c)
	return exists
}

func (dict *LabelDictionary) Size() uint32 {
	dict.mu.RLock()
	defer dict.mu.RUnlock()
	return uint32(len(dict.colors))
}

// Colors returns the inserted colors in the order their columns were issued; Colors()[col] is the color of column col.
func (dict *LabelDictionary) Colors() []go3wl.Color {
	dict.mu.RLock()
	defer dict.mu.RUnlock()
	return append([]go3wl.Color(nil), dict.colors...)
}

// MergeInto inserts this dictionary's colors into dst in issue order.
func (dict *LabelDictionary) MergeInto(dst go3wl.Dictionary) {
	for _, c := range dict.Colors() {
		dst.Insert(c)
	}
}

func (dict *LabelDictionary) Close() error {
	dict.mu.Lock()
	dict.toIndex = make(map[go3wl.Color]uint32)
	dict.colors = nil
	dict.mu.Unlock()
	return nil
}
