package recommend

// shuffleSeedBasis is the fixed odd constant the seed string is folded
// into. Changing it changes every shuffle order.
const shuffleSeedBasis uint32 = 0x9E3779B9

// xorshift32 is a tiny deterministic PRNG. Not for anything
// security-sensitive; it only has to make the same seed string produce
// the same permutation on every call, so results stay stable for
// pagination and caching.
type xorshift32 struct {
	state uint32
}

func newXorshift32(seed string) *xorshift32 {
	s := shuffleSeedBasis
	for i := 0; i < len(seed); i++ {
		s ^= uint32(seed[i]) << ((i % 4) * 8)
	}
	if s == 0 {
		s = shuffleSeedBasis
	}
	return &xorshift32{state: s}
}

func (x *xorshift32) next() uint32 {
	v := x.state
	v ^= v << 13
	v ^= v >> 17
	v ^= v << 5
	x.state = v
	return v
}

// seededShuffle permutes items in place with a Fisher-Yates pass driven
// by the seed string.
func seededShuffle[T any](items []T, seed string) {
	rng := newXorshift32(seed)
	for i := len(items) - 1; i > 0; i-- {
		j := int(rng.next() % uint32(i+1))
		items[i], items[j] = items[j], items[i]
	}
}
