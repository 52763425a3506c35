package domain

// PickVersion decides which of two specs for the same dependency is kept.
// a comes from the base manifest and b from the extra manifest.
// The result is always one of the inputs; whenever the comparison is
// ambiguous the extra spec wins.
func PickVersion(a, b VersionSpec) VersionSpec {
	if a.Equal(b) {
		return a
	}

	// Path, VCS, URL and alias specs express deliberate intent and beat ranges.
	aSpecial, bSpecial := a.IsSpecial(), b.IsSpecial()
	switch {
	case aSpecial && !bSpecial:
		return a
	case bSpecial && !aSpecial:
		return b
	case aSpecial && bSpecial:
		return b
	}

	pa, okA := a.Triple()
	pb, okB := b.Triple()
	if !okA || !okB {
		return b
	}

	switch pa.Compare(pb) {
	case 1:
		return a
	case -1:
		return b
	}

	if a.Looseness() > b.Looseness() {
		return a
	}
	return b
}
