package db

import "strconv"

// ComputeCacheKey derives a stable short identifier from a source URL.
// It is a plain 31-multiplier string hash folded to 32 bits and rendered
// base-36: fast, deterministic across restarts, and intentionally not
// cryptographic. Collisions are tolerated; source_url stays the
// authoritative uniqueness constraint.
func ComputeCacheKey(sourceURL string) string {
	var h int32
	for i := 0; i < len(sourceURL); i++ {
		h = h*31 + int32(sourceURL[i])
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return "pc" + strconv.FormatInt(v, 36)
}
