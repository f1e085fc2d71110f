// Package priority maps spoken priority keywords to the canonical 1-5 scale.
package priority

import (
	"fmt"
	"strconv"
	"strings"
)

// keywordSets holds the recognized keywords in ascending severity. Matching
// is substring containment in array order, so a compound phrase resolves to
// the first set that matches. Known over-match: "medium-high" contains
// "medium" and maps to 2.
var keywordSets = []struct {
	level int
	words []string
}{
	{1, []string{"low", "minor", "optional"}},
	{2, []string{"normal", "medium", "standard", "regular"}},
	{3, []string{"high", "important", "elevated"}},
	{4, []string{"urgent", "pressing", "time-sensitive", "time sensitive"}},
	{5, []string{"critical", "severe", "blocking", "emergency"}},
}

var labels = map[int]string{
	1: "low",
	2: "normal",
	3: "high",
	4: "urgent",
	5: "critical",
}

// Parse maps input to an integer in [1,5]. Input may be a number, a numeric
// string or a keyword phrase, as delivered by the model's tool arguments.
// ok is false when input is nil, out of range or unrecognized; the caller
// decides the default.
func Parse(input any) (n int, ok bool) {
	switch v := input.(type) {
	case nil:
		return 0, false
	case int:
		return inRange(v)
	case float64:
		// JSON numbers arrive as float64.
		if v != float64(int(v)) {
			return 0, false
		}
		return inRange(int(v))
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if s == "" {
			return 0, false
		}
		if num, err := strconv.Atoi(s); err == nil {
			return inRange(num)
		}
		for _, set := range keywordSets {
			for _, w := range set.words {
				if strings.Contains(s, w) {
					return set.level, true
				}
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

func inRange(n int) (int, bool) {
	if n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

// Format returns the spoken label for a priority level. Levels outside [1,5]
// format as "Priority N".
func Format(n int) string {
	if label, ok := labels[n]; ok {
		return label
	}
	return fmt.Sprintf("Priority %d", n)
}
