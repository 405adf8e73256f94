package bluetooth

import "math/bits"

// visit, when set, observes every byte index the comparisons read.
var visit func(i int)

// equalBytes compares two equal-length slices without branching on their
// contents.
func equalBytes(a, b []byte) bool {
	var diff byte
	for i := range a {
		if visit != nil {
			visit(i)
		}
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// compareBytes orders two equal-length big-endian slices without branching on
// their contents. It walks from the least significant byte up, so the most
// significant difference is the one left in result.
func compareBytes(a, b []byte) int {
	result := 0
	for i := len(a) - 1; i >= 0; i-- {
		if visit != nil {
			visit(i)
		}
		diff := int(a[i]) - int(b[i])
		// result = diff unless diff == 0.
		result = (result & (((diff - 1) &^ diff) >> 8)) | diff
	}
	return (result >> (bits.UintSize - 1)) | int(uint(-result)>>(bits.UintSize-1))
}
