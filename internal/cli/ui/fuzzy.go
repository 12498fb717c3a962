package ui

import (
	"sort"
	"strings"
)

const (
	// DefaultMaxDistance is the default maximum edit distance to consider for fuzzy matching
	DefaultMaxDistance = 3
	// DefaultMaxSuggestions is the default maximum number of suggestions to return
	DefaultMaxSuggestions = 3
)

// FuzzyMatchOptions configures fuzzy matching behavior
type FuzzyMatchOptions struct {
	MaxDistance    int  // Maximum Levenshtein distance to consider (default: 3)
	MaxSuggestions int  // Maximum number of suggestions to return (default: 3)
	CaseSensitive  bool // Whether matching is case-sensitive (default: false)
}

// FindSimilar returns the candidates within the edit distance of target,
// closest first; ties keep candidate order.
//
// Example:
//
//	FindSimilar("MyClas", []string{"MyClass", "Point", "Segment"}, nil)
//	// Returns: ["MyClass"]
func FindSimilar(target string, candidates []string, opts *FuzzyMatchOptions) []string {
	o := FuzzyMatchOptions{MaxDistance: DefaultMaxDistance, MaxSuggestions: DefaultMaxSuggestions}
	if opts != nil {
		o.CaseSensitive = opts.CaseSensitive
		if opts.MaxDistance > 0 {
			o.MaxDistance = opts.MaxDistance
		}
		if opts.MaxSuggestions > 0 {
			o.MaxSuggestions = opts.MaxSuggestions
		}
	}

	type scored struct {
		value    string
		distance int
	}
	fold := func(s string) string {
		if o.CaseSensitive {
			return s
		}
		return strings.ToLower(s)
	}

	var matches []scored
	for _, c := range candidates {
		if d := LevenshteinDistance(fold(target), fold(c)); d <= o.MaxDistance {
			matches = append(matches, scored{value: c, distance: d})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	out := make([]string, 0, min(len(matches), o.MaxSuggestions))
	for _, m := range matches {
		if len(out) == o.MaxSuggestions {
			break
		}
		out = append(out, m.value)
	}
	return out
}

// SuggestTypeIDs is FindSimilar for qualified type identifiers: a target
// without a namespace is also compared against the bare type names.
func SuggestTypeIDs(target string, ids []string) []string {
	if strings.Contains(target, ".") {
		return FindSimilar(target, ids, nil)
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id[strings.LastIndex(id, ".")+1:]
	}
	var out []string
	for _, name := range FindSimilar(target, names, &FuzzyMatchOptions{MaxSuggestions: len(names)}) {
		for i, n := range names {
			if n == name && !containsString(out, ids[i]) {
				out = append(out, ids[i])
			}
		}
	}
	if len(out) > DefaultMaxSuggestions {
		out = out[:DefaultMaxSuggestions]
	}
	return out
}

// LevenshteinDistance returns the number of single-rune insertions,
// deletions or substitutions turning s1 into s2.
//
// Example:
//
//	LevenshteinDistance("kitten", "sitting") // Returns: 3
func LevenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rolling rows of the edit matrix
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}


func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
