package domain

// ScoredBook is the per-request recommendation output. It is never
// persisted; the cache layer serializes it only for its own TTL window.
type ScoredBook struct {
	Book   Book    `json:"book"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

type RecommendationMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total_count"`
}

type RecommendationResult struct {
	Recommendations []ScoredBook
	CacheHit        bool
}
