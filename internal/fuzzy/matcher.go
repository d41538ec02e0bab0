package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

type MatchResult struct {
	Text  string
	Score int
	Index int
}

// Match scores how well pattern completes into text (0-100). It is built for
// typeahead: "jap" scores high against "japanese", "jpns" lower, "xyz" zero.
func Match(pattern, text string) int {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	text = strings.ToLower(text)

	if pattern == "" || text == "" {
		return 0
	}
	if pattern == text {
		return 100
	}

	p := []rune(pattern)
	t := []rune(text)
	if len(p) > len(t) {
		return 0
	}

	positions := subsequence(p, t)
	if positions == nil {
		return 0
	}

	score := 40.0
	score += float64(len(p)) / float64(len(t)) * 30.0

	if positions[0] == 0 {
		score += 15.0
	}

	run := longestRun(positions)
	score += float64(run) / float64(len(p)) * 15.0

	for _, pos := range positions {
		if pos > 0 && isBoundary(t[pos-1]) {
			score += 2.0
		}
	}

	score -= float64(len(p)-run) * 3.0

	return clamp(int(score))
}

func MatchMany(pattern string, texts []string, threshold int) []MatchResult {
	results := make([]MatchResult, 0, len(texts))

	for i, text := range texts {
		score := Match(pattern, text)
		if score >= threshold {
			results = append(results, MatchResult{Text: text, Score: score, Index: i})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

// Distance is the Levenshtein edit distance between a and b, case
// insensitive.
func Distance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Similarity turns Distance into a 0-100 score relative to the longer
// string.
func Similarity(a, b string) int {
	la := len([]rune(a))
	lb := len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 0
	}
	return clamp(100 - Distance(a, b)*100/longest)
}

// Closest finds the candidate most similar to term, ignoring exact matches
// (there is nothing to correct) and anything scoring under threshold.
func Closest(term string, candidates []string, threshold int) (string, int, bool) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return "", 0, false
	}

	best := ""
	bestScore := -1
	for _, c := range candidates {
		if strings.EqualFold(c, term) {
			return "", 0, false
		}
		if score := Similarity(term, c); score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < threshold {
		return "", 0, false
	}
	return best, bestScore, true
}

func subsequence(p, t []rune) []int {
	positions := make([]int, 0, len(p))
	pi := 0
	for ti := 0; ti < len(t) && pi < len(p); ti++ {
		if p[pi] == t[ti] {
			positions = append(positions, ti)
			pi++
		}
	}
	if pi < len(p) {
		return nil
	}
	return positions
}

func longestRun(positions []int) int {
	if len(positions) == 0 {
		return 0
	}

	run, best := 1, 1
	for i := 1; i < len(positions); i++ {
		if positions[i] == positions[i-1]+1 {
			run++
			best = max(best, run)
		} else {
			run = 1
		}
	}
	return best
}

func isBoundary(r rune) bool {
	return r == ' ' || r == '-' || r == '_' || r == '/' || unicode.IsPunct(r)
}

func clamp(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
