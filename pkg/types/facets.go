package types

import "errors"

type Facet string

const (
	FacetYear      Facet = "year"
	FacetGenre     Facet = "genre"
	FacetPlatform  Facet = "platform"
	FacetPublisher Facet = "publisher"
	FacetRegion    Facet = "region"
)

// NameParam is the query parameter carrying the free-text game filter.
const NameParam = "name"

// AllFacets lists the facets in serialization order.
var AllFacets = []Facet{FacetYear, FacetGenre, FacetPlatform, FacetPublisher, FacetRegion}

var ErrUnknownFacet = errors.New("unknown facet")

func (f Facet) Valid() bool {
	switch f {
	case FacetYear, FacetGenre, FacetPlatform, FacetPublisher, FacetRegion:
		return true
	}
	return false
}

func ParseFacet(s string) (Facet, error) {
	f := Facet(s)
	if !f.Valid() {
		return "", ErrUnknownFacet
	}
	return f, nil
}
