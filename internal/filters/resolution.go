// Package filters turns a user's sparse global filters into the set of donors
// eligible for a report.
package filters

// Resolution is the outcome of resolving global filters. The zero value places
// no constraint on donors; Matches(nil) constrains to nobody.
type Resolution struct {
	constrained bool
	ids         []string
}

// NoConstraint means every donor is eligible.
func NoConstraint() Resolution { return Resolution{} }

// Matches restricts eligibility to ids. Duplicates are dropped, order is kept.
func Matches(ids []string) Resolution {
	return Resolution{constrained: true, ids: dedupe(ids)}
}

// Constrained reports whether any dimension was applied.
func (r Resolution) Constrained() bool { return r.constrained }

// Empty reports a constraint that matched nobody.
func (r Resolution) Empty() bool { return r.constrained && len(r.ids) == 0 }

// IDs returns the eligible donors, or nil when unconstrained.
func (r Resolution) IDs() []string {
	if !r.constrained {
		return nil
	}
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Allows reports whether donorID passes.
func (r Resolution) Allows(donorID string) bool {
	if !r.constrained {
		return true
	}
	for _, id := range r.ids {
		if id == donorID {
			return true
		}
	}
	return false
}

// Set returns the eligible ids as a lookup set, or nil when unconstrained.
func (r Resolution) Set() map[string]struct{} {
	if !r.constrained {
		return nil
	}
	set := make(map[string]struct{}, len(r.ids))
	for _, id := range r.ids {
		set[id] = struct{}{}
	}
	return set
}

// Intersect combines two resolutions with AND semantics. An unconstrained side
// is the identity.
func (r Resolution) Intersect(other Resolution) Resolution {
	switch {
	case !r.constrained:
		return other
	case !other.constrained:
		return r
	}
	keep := other.Set()
	out := make([]string, 0, len(r.ids))
	for _, id := range r.ids {
		if _, ok := keep[id]; ok {
			out = append(out, id)
		}
	}
	return Resolution{constrained: true, ids: out}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
