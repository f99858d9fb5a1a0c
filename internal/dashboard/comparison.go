package dashboard

import (
	"github.com/kapu/terrascope/internal/constants"
	"github.com/kapu/terrascope/internal/domain"
)

// AddResult reports what ComparisonSet.Add did.
type AddResult string

const (
	AddResultAdded     AddResult = "added"
	AddResultDuplicate AddResult = "duplicate"
	AddResultFull      AddResult = "full"
	AddResultInvalid   AddResult = "invalid"
)

// ComparisonSet is an ordered, size-bounded set of profile copies keyed by ISO
// code, plus the compare-mode display flag. It is not safe for concurrent use;
// the Coordinator serialises access.
type ComparisonSet struct {
	entries     []*domain.CountryProfile
	capacity    int
	compareMode bool
}

func NewComparisonSet(capacity int) *ComparisonSet {
	if capacity <= 0 {
		capacity = constants.ComparisonConfig.MaxEntries
	}
	return &ComparisonSet{capacity: capacity}
}

// Add appends a copy of profile. Adding at capacity or adding a country that is
// already present leaves the set unchanged.
func (s *ComparisonSet) Add(profile *domain.CountryProfile) AddResult {
	if profile == nil || profile.Key() == "" {
		return AddResultInvalid
	}
	if s.Contains(profile.Key()) {
		return AddResultDuplicate
	}
	if len(s.entries) >= s.capacity {
		return AddResultFull
	}
	s.entries = append(s.entries, profile.Clone())
	return AddResultAdded
}

// Remove drops the entry with the given ISO code. Emptying the set leaves
// compare mode.
func (s *ComparisonSet) Remove(isoAlpha2 string) bool {
	key := (&domain.CountryProfile{IsoAlpha2: isoAlpha2}).Key()
	for i, entry := range s.entries {
		if entry.Key() != key {
			continue
		}
		s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
		if len(s.entries) == 0 {
			s.compareMode = false
		}
		return true
	}
	return false
}

func (s *ComparisonSet) Clear() {
	s.entries = nil
	s.compareMode = false
}

// ToggleCompareMode flips the flag unless the set is empty.
func (s *ComparisonSet) ToggleCompareMode() bool {
	if len(s.entries) == 0 {
		return s.compareMode
	}
	s.compareMode = !s.compareMode
	return s.compareMode
}

// ExitCompareMode turns the flag off without touching the entries.
func (s *ComparisonSet) ExitCompareMode() {
	s.compareMode = false
}

func (s *ComparisonSet) CompareMode() bool {
	return s.compareMode
}

func (s *ComparisonSet) Contains(isoAlpha2 string) bool {
	key := (&domain.CountryProfile{IsoAlpha2: isoAlpha2}).Key()
	for _, entry := range s.entries {
		if entry.Key() == key {
			return true
		}
	}
	return false
}

func (s *ComparisonSet) Len() int {
	return len(s.entries)
}

func (s *ComparisonSet) Full() bool {
	return len(s.entries) >= s.capacity
}

// Entries returns deep copies in insertion order.
func (s *ComparisonSet) Entries() []*domain.CountryProfile {
	out := make([]*domain.CountryProfile, len(s.entries))
	for i, entry := range s.entries {
		out[i] = entry.Clone()
	}
	return out
}
