package ranker

import (
	"sort"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/model"
)

const DEFAULT_TOP_N = 50

////////////////////////////////////////////////////////////////////////////////

// Rank scores every post by the sum of its fractional ranks on net influence,
// retweets and favorites, and returns the topN best scored copies. Equal
// scores keep their input order.
func Rank(posts model.PostTable, topN int) model.PostTable {
	if topN <= 0 || len(posts) == 0 {
		return model.PostTable{}
	}

	influence := make([]float64, len(posts))
	retweets := make([]float64, len(posts))
	favorites := make([]float64, len(posts))
	for i := range posts {
		influence[i] = float64(posts[i].NetInfluence())
		retweets[i] = float64(posts[i].Retweets)
		favorites[i] = float64(posts[i].Favorites)
	}

	ranked := make(model.PostTable, len(posts))
	copy(ranked, posts)

	ri, rr, rf := FractionalRank(influence), FractionalRank(retweets), FractionalRank(favorites)
	for i := range ranked {
		ranked[i].Rank = ri[i] + rr[i] + rf[i]
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Rank > ranked[b].Rank
	})

	if topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}

// FractionalRank gives 1-based ascending ranks, tied values sharing the mean
// of the positions they span.
func FractionalRank(values []float64) []float64 {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranks := make([]float64, len(values))
	for start := 0; start < len(order); {
		end := start + 1
		for end < len(order) && values[order[end]] == values[order[start]] {
			end++
		}
		// positions start+1 .. end
		avg := float64(start+1+end) / 2
		for _, idx := range order[start:end] {
			ranks[idx] = avg
		}
		start = end
	}
	return ranks
}
