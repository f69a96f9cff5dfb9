package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// HighlightID renders an ID with its distinguishing prefix emphasized so
// the shortest string a user can type stands out from the rest of the ID.
// Falls back to the plain ID when color is off or prefixLen is out of
// range.
func HighlightID(id string, prefixLen int) string {
	if id == "" || prefixLen <= 0 || prefixLen > len(id) {
		return id
	}
	if !colorEnabled() {
		return id
	}

	return ansiBold + ansiCyan + id[:prefixLen] + ansiReset + id[prefixLen:]
}

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// UniqueIDPrefixLengths returns, for each ID, the length of the shortest
// prefix that identifies it among the given IDs. Every ID carries a fixed
// type tag ("todo-", "list-") shared by all IDs of its kind, so the tag
// contributes nothing to uniqueness: the distinguishing characters are
// compared after it, and the returned length spans the tag plus those
// characters. Matching is case-insensitive; the returned map is keyed by
// the lowercased ID.
func UniqueIDPrefixLengths(ids []string) map[string]int {
	uniqueIDs := make([]string, 0, len(ids))
	seen := make(map[string]bool)
	for _, id := range ids {
		idLower := strings.ToLower(id)
		if idLower == "" || seen[idLower] {
			continue
		}
		seen[idLower] = true
		uniqueIDs = append(uniqueIDs, idLower)
	}

	lengths := make(map[string]int, len(uniqueIDs))
	for _, id := range uniqueIDs {
		lengths[id] = uniquePrefixLength(id, uniqueIDs)
	}

	return lengths
}

// splitTypeTag splits an ID into its type tag (through the first hyphen)
// and the random remainder. IDs without a hyphen have an empty tag.
func splitTypeTag(id string) (tag, rest string) {
	if i := strings.Index(id, "-"); i >= 0 {
		return id[:i+1], id[i+1:]
	}
	return "", id
}

func uniquePrefixLength(id string, ids []string) int {
	tag, rest := splitTypeTag(id)

	for length := 1; length <= len(rest); length++ {
		prefix := rest[:length]
		unique := true
		for _, other := range ids {
			if other == id {
				continue
			}
			otherTag, otherRest := splitTypeTag(other)
			if otherTag != tag {
				continue
			}
			if strings.HasPrefix(otherRest, prefix) {
				unique = false
				break
			}
		}
		if unique {
			return len(tag) + length
		}
	}

	return len(id)
}
