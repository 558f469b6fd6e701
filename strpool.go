package plot

import "sync"

// StringPool interns the string values of discrete fields. Columns store
// the pool index as a float64 so that all field data is numeric.
type StringPool struct {
	sync.Mutex
	pool []string
	idx  map[string]int
}

func NewStringPool() *StringPool {
	return &StringPool{
		pool: make([]string, 0, 100),
		idx:  make(map[string]int, 100),
	}
}

// Add interns s and returns its index. Adding a known string returns
// the original index.
func (sp *StringPool) Add(s string) int {
	sp.Lock()
	defer sp.Unlock()
	if i, ok := sp.idx[s]; ok {
		return i
	}
	sp.pool = append(sp.pool, s)
	i := len(sp.pool) - 1
	sp.idx[s] = i
	return i
}

// Find returns the index of s or -1 if s was never added.
func (sp *StringPool) Find(s string) int {
	sp.Lock()
	defer sp.Unlock()
	if i, ok := sp.idx[s]; ok {
		return i
	}
	return -1
}

// Get returns the string with index i.
func (sp *StringPool) Get(i int) string {
	sp.Lock()
	defer sp.Unlock()
	if i < 0 || i >= len(sp.pool) {
		return "--NA--"
	}
	return sp.pool[i]
}
