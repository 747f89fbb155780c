package pattern

import "github.com/ppiankov/geoscope/internal/model"

// Impression composite weights. Statistical evidence empirically moves
// perceived credibility more than bare authority phrasing, hence the
// 0.4/0.6 split. Citations and expert language stay auxiliary signals
// for the recommendation stage and are not folded in.
const (
	authorityWeight  = 0.4
	statisticsWeight = 0.6
)

// ComposeImpression blends the authority and statistics category scores
// into the single subjective-impression score in [0,1].
func ComposeImpression(authority, statistics model.PatternResult) float64 {
	return authorityWeight*authority.Score + statisticsWeight*statistics.Score
}
