package utils

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// OrderedMapString formats an ordered map into a single bracketed string in insertion order.
// Example: a map of foo=1 and bar=true gives "[foo=1 bar=true]". A nil map gives "[]".
func OrderedMapString[V any](m *orderedmap.OrderedMap[string, V]) string {
	if m == nil {
		return "[]"
	}
	var b strings.Builder
	b.WriteByte('[')
	for el := m.Front(); el != nil; el = el.Next() {
		if el != m.Front() {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", el.Key, el.Value)
	}
	b.WriteByte(']')
	return b.String()
}
