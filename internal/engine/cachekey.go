package engine

import (
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
)

// cacheKey builds a stable cache key from the candidate and the filter
// parameters. The filters are hashed so the key stays short and opaque
// while still differing for every distinct filter combination.
func cacheKey(candidateID uuid.UUID, f Filters) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%d|%d", f.WorkMode, f.Location, derefInt(f.MinSalary), f.Limit)
	return fmt.Sprintf("%s:%016x", candidateID, h.Sum64())
}

func derefInt(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}
