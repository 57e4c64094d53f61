package types

import "strings"

// FilterSpec is a detached description of a filter set. It is what the
// natural-language endpoint returns, what gets persisted and what shared
// filter messages carry. A nil facet list means the facet is not mentioned.
type FilterSpec struct {
	Year      StringList `json:"year,omitempty"`
	Genre     StringList `json:"genre,omitempty"`
	Platform  StringList `json:"platform,omitempty"`
	Publisher StringList `json:"publisher,omitempty"`
	Region    StringList `json:"region,omitempty"`
	Name      *string    `json:"name,omitempty"`
}

func (s *FilterSpec) field(f Facet) *StringList {
	switch f {
	case FacetYear:
		return &s.Year
	case FacetGenre:
		return &s.Genre
	case FacetPlatform:
		return &s.Platform
	case FacetPublisher:
		return &s.Publisher
	case FacetRegion:
		return &s.Region
	}
	return nil
}

// Values returns the values for a facet and whether the facet is present.
func (s *FilterSpec) Values(f Facet) ([]string, bool) {
	p := s.field(f)
	if p == nil || *p == nil {
		return nil, false
	}
	return *p, true
}

func (s *FilterSpec) Set(f Facet, values []string) {
	p := s.field(f)
	if p == nil {
		return
	}
	if values == nil {
		*p = nil
		return
	}
	*p = append(StringList{}, values...)
}

// NameFilter returns the trimmed name, or "" when unset.
func (s *FilterSpec) NameFilter() string {
	if s.Name == nil {
		return ""
	}
	return strings.TrimSpace(*s.Name)
}

// ReportFilters is the body of a CSV export request. Unlike FilterSpec every
// facet is always present and an empty game search is sent as null.
type ReportFilters struct {
	Year      []string `json:"year"`
	Genre     []string `json:"genre"`
	Platform  []string `json:"platform"`
	Publisher []string `json:"publisher"`
	Region    []string `json:"region"`
	Game      *string  `json:"game"`
}

type ReportRequest struct {
	Filters ReportFilters `json:"filters"`
}

type NLRequest struct {
	Query string `json:"query"`
}

type NLResponse struct {
	Query   string     `json:"query,omitempty"`
	Filters FilterSpec `json:"filters"`
}
