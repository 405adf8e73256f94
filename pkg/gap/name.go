package gap

import "unicode/utf8"

// LocalName returns a complete local name element for name if it encodes in
// room bytes, and otherwise a shortened name element cut at a rune boundary
// so that it does. An element is never smaller than its two header bytes, so
// for room below 2 the result is an empty shortened name that still takes 2
// bytes; appending it to a buffer with less space fails with
// ErrCapacityExceeded.
func LocalName(name string, room int) DataType {
	max := room - 2
	if max < 0 {
		max = 0
	}
	if len(name) <= max {
		return CompleteLocalName(name)
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return ShortLocalName(name[:cut])
}
