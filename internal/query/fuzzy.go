package query

import (
	"fmt"
	"strings"

	"github.com/jdb-tool/jdb/internal/document"
)

// Similarity returns a ratio in [0, 1] measuring how alike two strings
// are: twice the length of their longest common subsequence over the
// total length. Comparison is case-insensitive. Identical strings score
// 1, strings with nothing in common score 0.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	// Longest common subsequence, one row at a time.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	common := prev[len(b)]
	return 2 * float64(common) / float64(len(a)+len(b))
}

// BestMatch finds the document whose value for field is most similar to
// the condition's operand. Documents without the field are skipped.
// It reports false when no document has the field or every score is zero.
func (c *Condition) BestMatch(docs []*document.Document) (*document.Document, float64, bool) {
	target := c.StrVal
	if c.Numeric {
		target = formatValue(c.NumVal)
	}

	var best *document.Document
	bestScore := 0.0
	for _, doc := range docs {
		value, ok := doc.Get(c.Field)
		if !ok {
			continue
		}
		score := Similarity(target, formatValue(value))
		if score > bestScore {
			bestScore = score
			best = doc
		}
	}

	if best == nil {
		return nil, 0, false
	}
	return best, bestScore, true
}

func formatValue(v any) string {
	return fmt.Sprintf("%v", v)
}
