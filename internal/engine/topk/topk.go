// Package topk provides bounded-memory byte-weighted rankings of addresses
// and ports. Both structures follow the space-saving scheme: once the tracked
// set is full, the minimum-weight entry is evicted and the newcomer inherits
// its weight plus the new increment, so genuine heavy hitters survive an
// arbitrarily long stream while memory stays fixed at the configured capacity.
package topk

import (
	"bytes"
	"slices"
)

// DefaultCapacity bounds the tracked set when no capacity is configured.
const DefaultCapacity = 64

// AddrEntry is one ranked address: raw address bytes (4 or 16) and its
// cumulative byte weight.
type AddrEntry struct {
	Addr   []byte
	Weight uint64
}

// AddressTopN ranks addresses by cumulative weight, keeping at most capacity
// entries regardless of how many packets are ingested.
type AddressTopN struct {
	capacity int
	weights  map[string]uint64
	ingested uint64
	ranked   []AddrEntry // cached descending view, invalidated on write
}

// NewAddressTopN creates a ranking bounded to capacity entries. A capacity
// of zero or less falls back to DefaultCapacity.
func NewAddressTopN(capacity int) *AddressTopN {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &AddressTopN{
		capacity: capacity,
		weights:  make(map[string]uint64, capacity),
	}
}

// Add credits weight to the address formed by the first length bytes of addr.
func (t *AddressTopN) Add(addr []byte, length int, weight uint64) {
	if length > len(addr) {
		length = len(addr)
	}
	key := string(addr[:length])
	t.ingested += weight
	t.ranked = nil

	if _, ok := t.weights[key]; ok {
		t.weights[key] += weight
		return
	}
	if len(t.weights) < t.capacity {
		t.weights[key] = weight
		return
	}
	evicted := t.evictMin()
	t.weights[key] = evicted + weight
}

// evictMin removes the minimum-weight entry and returns its weight. Among
// equal weights the lexicographically largest key goes, keeping eviction
// deterministic.
func (t *AddressTopN) evictMin() uint64 {
	var minKey string
	var minWeight uint64
	first := true
	for k, w := range t.weights {
		if first || w < minWeight || (w == minWeight && k > minKey) {
			minKey, minWeight = k, w
			first = false
		}
	}
	delete(t.weights, minKey)
	return minWeight
}

// Size returns the number of tracked addresses, never above capacity.
func (t *AddressTopN) Size() int {
	return len(t.weights)
}

// IngestCount returns the total weight seen, including weight credited to
// entries that were later evicted.
func (t *AddressTopN) IngestCount() uint64 {
	return t.ingested
}

// At returns the entry at the given descending-weight rank. Ties rank the
// lexicographically smaller address first. Out-of-range ranks return a zero
// entry.
func (t *AddressTopN) At(rank int) AddrEntry {
	if rank < 0 || rank >= len(t.weights) {
		return AddrEntry{}
	}
	if t.ranked == nil {
		t.ranked = make([]AddrEntry, 0, len(t.weights))
		for k, w := range t.weights {
			t.ranked = append(t.ranked, AddrEntry{Addr: []byte(k), Weight: w})
		}
		slices.SortFunc(t.ranked, func(a, b AddrEntry) int {
			if a.Weight != b.Weight {
				if a.Weight > b.Weight {
					return -1
				}
				return 1
			}
			return bytes.Compare(a.Addr, b.Addr)
		})
	}
	return t.ranked[rank]
}

// PortEntry is one ranked port and its cumulative byte weight.
type PortEntry struct {
	Port   uint16
	Weight uint64
}

// PortTopN ranks ports by cumulative weight with the same bounded-memory
// eviction scheme as AddressTopN.
type PortTopN struct {
	capacity int
	weights  map[uint16]uint64
	ingested uint64
	ranked   []PortEntry
}

// NewPortTopN creates a ranking bounded to capacity entries.
func NewPortTopN(capacity int) *PortTopN {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &PortTopN{
		capacity: capacity,
		weights:  make(map[uint16]uint64, capacity),
	}
}

// Increment credits weight to port.
func (t *PortTopN) Increment(port uint16, weight uint64) {
	t.ingested += weight
	t.ranked = nil

	if _, ok := t.weights[port]; ok {
		t.weights[port] += weight
		return
	}
	if len(t.weights) < t.capacity {
		t.weights[port] = weight
		return
	}
	evicted := t.evictMin()
	t.weights[port] = evicted + weight
}

func (t *PortTopN) evictMin() uint64 {
	var minPort uint16
	var minWeight uint64
	first := true
	for p, w := range t.weights {
		if first || w < minWeight || (w == minWeight && p > minPort) {
			minPort, minWeight = p, w
			first = false
		}
	}
	delete(t.weights, minPort)
	return minWeight
}

// Size returns the number of tracked ports, never above capacity.
func (t *PortTopN) Size() int {
	return len(t.weights)
}

// IngestCount returns the total weight seen.
func (t *PortTopN) IngestCount() uint64 {
	return t.ingested
}

// At returns the entry at the given descending-weight rank. Ties rank the
// numerically smaller port first. Out-of-range ranks return a zero entry.
func (t *PortTopN) At(rank int) PortEntry {
	if rank < 0 || rank >= len(t.weights) {
		return PortEntry{}
	}
	if t.ranked == nil {
		t.ranked = make([]PortEntry, 0, len(t.weights))
		for p, w := range t.weights {
			t.ranked = append(t.ranked, PortEntry{Port: p, Weight: w})
		}
		slices.SortFunc(t.ranked, func(a, b PortEntry) int {
			if a.Weight != b.Weight {
				if a.Weight > b.Weight {
					return -1
				}
				return 1
			}
			return int(a.Port) - int(b.Port)
		})
	}
	return t.ranked[rank]
}
