package filter

import "github.com/cespare/xxhash/v2"

// interner dedups Fields (keyed on kind+payload) and Units (keyed on
// operator+left+right), grounded on spec.md §3's interning contract and
// filterAddField/filterGetFiledByDesc/filterAddUnit in qFilter.c. TDengine's
// taosHashPut custom table becomes a Go map plus xxhash.Sum64 as the
// content-hash function (domain dep, SPEC_FULL.md §5).
type interner struct {
	fieldBuckets map[uint64][]int32
	unitBuckets  map[uint64][]int32
}

func newInterner() *interner {
	return &interner{
		fieldBuckets: make(map[uint64][]int32),
		unitBuckets:  make(map[uint64][]int32),
	}
}

func fieldHash(f Field) uint64 {
	h := xxhash.New()
	h.Write([]byte{byte(f.Kind())})
	h.Write(f.hashPayload())
	return h.Sum64()
}

func unitHash(op byte, left, right int32) uint64 {
	h := xxhash.New()
	var b [9]byte
	b[0] = op
	b[1] = byte(left)
	b[2] = byte(left >> 8)
	b[3] = byte(left >> 16)
	b[4] = byte(left >> 24)
	b[5] = byte(right)
	b[6] = byte(right >> 8)
	b[7] = byte(right >> 16)
	b[8] = byte(right >> 24)
	h.Write(b[:])
	return h.Sum64()
}
