package margingame

import (
	"expvar"

	"github.com/hashicorp/golang-lru"
)

var (
	cacheHits   = expvar.NewInt("probabilities/cache_hits")
	cacheMisses = expvar.NewInt("probabilities/cache_misses")
)

// probabilityCache memoizes Probabilities by grid point. The defender and
// attacker matrices are evaluated on the same grid, so the second pass is
// served entirely from the cache when it holds the whole grid.
type probabilityCache struct {
	cache *lru.Cache
}

func newProbabilityCache(size int) (*probabilityCache, error) {
	if size < 1 {
		size = 1
	}

	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &probabilityCache{cache: cache}, nil
}

func (pc *probabilityCache) Get(pt GridPoint) (Outcomes, error) {
	if p, ok := pc.cache.Get(pt); ok {
		cacheHits.Add(1)
		return p.(Outcomes), nil
	}

	cacheMisses.Add(1)
	p, err := Probabilities(pt.Margin, pt.TargetProb, pt.Spread)
	if err != nil {
		return Outcomes{}, err
	}

	pc.cache.Add(pt, p)
	return p, nil
}
