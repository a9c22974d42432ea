package printdoc

import (
	"strconv"
	"strings"
)

// numbering hands out hierarchical heading numbers ("1.", "1.1.", "2.").
// The first heading's level becomes depth 1; shallower headings later on
// also sit at depth 1. Skipped levels collapse, so an H1 followed by an H3
// numbers the H3 as a direct child.
type numbering struct {
	counters [3]int
	minLevel int
	last     int
}

// next returns the number string and the normalized depth for level.
func (n *numbering) next(level int) (string, int) {
	if n.minLevel == 0 {
		n.minLevel = level
	}

	depth := max(level-n.minLevel+1, 1)
	if n.last > 0 && depth > n.last+1 {
		depth = n.last + 1
	}

	for i := depth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.counters[depth-1]++
	n.last = depth

	parts := make([]string, depth)
	for i := range depth {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", depth
}
