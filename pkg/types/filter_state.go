package types

import (
	"slices"
	"strings"
	"sync"
)

type valueSet map[string]struct{}

// FilterState is the canonical set of active facet selections and the
// free-text name filter. Mutation methods are the only write path; every view
// reads it at fetch time.
type FilterState struct {
	mu       sync.RWMutex
	facets   map[Facet]valueSet
	name     *string
	revision uint64
}

func NewFilterState() *FilterState {
	s := &FilterState{}
	s.clear()
	return s
}

func (s *FilterState) clear() {
	s.facets = make(map[Facet]valueSet, len(AllFacets))
	for _, f := range AllFacets {
		s.facets[f] = valueSet{}
	}
	s.name = nil
}

// Toggle flips the membership of value in the facet set.
func (s *FilterState) Toggle(facet Facet, value string) error {
	if !facet.Valid() {
		return ErrUnknownFacet
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	set := s.facets[facet]
	if _, ok := set[value]; ok {
		delete(set, value)
	} else {
		set[value] = struct{}{}
	}
	s.revision++
	return nil
}

// SetName sets the name filter to the trimmed text, or clears it when the
// trimmed text is empty.
func (s *FilterState) SetName(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = trimmedOrNil(text)
	s.revision++
}

func (s *FilterState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
	s.revision++
}

// ReplaceFrom clears every facet and the name, then applies the facets present
// in spec. Facets the spec does not mention stay empty.
func (s *FilterState) ReplaceFrom(spec FilterSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
	for _, f := range AllFacets {
		values, ok := spec.Values(f)
		if !ok {
			continue
		}
		set := s.facets[f]
		for _, v := range values {
			set[v] = struct{}{}
		}
	}
	if spec.Name != nil {
		s.name = trimmedOrNil(*spec.Name)
	}
	s.revision++
}

// Values returns the selected values of a facet in ascending order.
func (s *FilterState) Values(facet Facet) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.facets[facet])
}

func (s *FilterState) Has(facet Facet, value string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.facets[facet][value]
	return ok
}

// Name returns the name filter and whether one is set.
func (s *FilterState) Name() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.name == nil {
		return "", false
	}
	return *s.name, true
}

func (s *FilterState) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *FilterState) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.name != nil {
		return false
	}
	for _, set := range s.facets {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// Snapshot copies the state into a FilterSpec. Every facet is present, empty
// facets as empty lists.
func (s *FilterState) Snapshot() FilterSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	spec := FilterSpec{}
	for _, f := range AllFacets {
		spec.Set(f, sortedValues(s.facets[f]))
	}
	if s.name != nil {
		name := *s.name
		spec.Name = &name
	}
	return spec
}

// Report builds the CSV export filters from the current selections.
func (s *FilterState) Report() ReportFilters {
	snap := s.Snapshot()
	return ReportFilters{
		Year:      snap.Year,
		Genre:     snap.Genre,
		Platform:  snap.Platform,
		Publisher: snap.Publisher,
		Region:    snap.Region,
		Game:      trimmedOrNil(snap.NameFilter()),
	}
}

func sortedValues(set valueSet) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}

func trimmedOrNil(text string) *string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
