package textmatch

// Levenshtein computes classic edit distance (insert, delete, substitute,
// all cost 1) over runes, keeping a single rolling row.
func Levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n, m := len(ar), len(br)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	dp := make([]int, m+1)
	for j := 0; j <= m; j++ {
		dp[j] = j
	}
	for i := 1; i <= n; i++ {
		prev := dp[0]
		dp[0] = i
		for j := 1; j <= m; j++ {
			tmp := dp[j]
			cost := 0
			if ar[i-1] != br[j-1] {
				cost = 1
			}
			ins := dp[j] + 1
			del := dp[j-1] + 1
			sub := prev + cost
			dp[j] = min3(ins, del, sub)
			prev = tmp
		}
	}
	return dp[m]
}

// Jaccard returns |A ∩ B| / |A ∪ B| over the two token lists. An empty
// union yields 0, not 1: two blank answers share no tokens.
func Jaccard(a, b []string) float64 {
	as := map[string]struct{}{}
	for _, t := range a {
		as[t] = struct{}{}
	}
	bs := map[string]struct{}{}
	for _, t := range b {
		bs[t] = struct{}{}
	}
	inter := 0
	for t := range as {
		if _, ok := bs[t]; ok {
			inter++
		}
	}
	union := len(as) + len(bs) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// CharSimilarity is 1 - editDistance/maxLen over the normalized strings.
// Two empty strings are identical, so the ratio is 1. This is the opposite
// of Jaccard's empty/empty case and both are intentional.
func CharSimilarity(a, b string) float64 {
	na := Normalize(a)
	nb := Normalize(b)
	if na == "" && nb == "" {
		return 1
	}
	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		maxLen = 1
	}
	return 1 - float64(Levenshtein(na, nb))/float64(maxLen)
}

// BestVariantSimilarity scores user against each accepted variant with both
// token-set and character similarity and returns the best combined ratio.
// A typo-heavy answer is caught by the char metric, a paraphrase with the
// right words by the token metric; the max of the two is deliberate.
func BestVariantSimilarity(user string, variants []string) float64 {
	userTokens := TokensNoStopwords(user)
	best := 0.0
	for _, v := range variants {
		sim := Jaccard(userTokens, TokensNoStopwords(v))
		if c := CharSimilarity(user, v); c > sim {
			sim = c
		}
		if sim > best {
			best = sim
		}
	}
	return best
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
