package paramspace

//////
// Helper functions.
//////

// mixSeed derives the random source for one draw from the run seed and the
// draw index, using the SplitMix64 finalizer. Neighboring (seed, index)
// pairs map to well-separated sources, which is what lets the sampler
// partition its stream by draw index instead of keeping a single shared
// generator.
func mixSeed(seed, index int64) int64 {
	z := uint64(seed) + uint64(index)*0x9e3779b97f4a7c15

	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31

	return int64(z)
}

// normalizeValue converts a dependency's required value to the sampled
// representation (string, int64, or float64) so that the == comparison in
// the sampler behaves as callers expect when they pass plain ints or
// float32s.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}
