package tier

import "strings"

// longestCommonPrefix returns the longest case-sensitive common prefix of the
// distinct strings in names, with trailing whitespace trimmed. Empty input
// yields "".
func longestCommonPrefix(names []string) string {
	distinct := names[:0:0]
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		distinct = append(distinct, n)
	}
	if len(distinct) == 0 {
		return ""
	}

	prefix := distinct[0]
	for _, n := range distinct[1:] {
		for !strings.HasPrefix(n, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return strings.TrimRight(prefix, " \t")
}

// romanFloor maps a name ending in a Roman numeral token to its raid floor.
// Returns 0 when the name carries no such suffix. Longer numerals are checked
// first so " II" does not shadow " III".
func romanFloor(name string) int {
	switch {
	case strings.HasSuffix(name, " III"):
		return 3
	case strings.HasSuffix(name, " IV"):
		return 4
	case strings.HasSuffix(name, " II"):
		return 2
	case strings.HasSuffix(name, " I"):
		return 1
	}
	return 0
}
