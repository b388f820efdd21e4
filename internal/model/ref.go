package model

import "strconv"

// RefKind discriminates the three path-segment forms a resource can be
// addressed by.
type RefKind int

const (
	// RefID is a numeric id: all decimal digits.
	RefID RefKind = iota
	// RefSlug is a human-readable unique name, written as "u/<slug>".
	RefSlug
	// RefCurrent is the literal "current", resolving to the caller.
	RefCurrent
)

// Ref is a parsed resource reference from a request path.
type Ref struct {
	Kind RefKind
	ID   int64
	Slug string
}

// ParseRef classifies a raw path segment. Digits parse as an id, the
// "u/" prefix as a slug, "current" as the caller; anything else is not a
// valid reference.
func ParseRef(raw string) (Ref, bool) {
	switch {
	case raw == "current":
		return Ref{Kind: RefCurrent}, true
	case len(raw) > 2 && raw[:2] == "u/":
		return Ref{Kind: RefSlug, Slug: raw[2:]}, true
	default:
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			return Ref{}, false
		}
		return Ref{Kind: RefID, ID: id}, true
	}
}
