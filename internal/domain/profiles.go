package domain

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Built-in category profile names.
const (
	ProfilePT        = "PT"
	ProfileContracts = "Contracts & Private Hire"
	ProfileSchools   = "Schools"
)

var folder = cases.Fold()

// FoldCategory trims and case-folds a category label for comparison.
func FoldCategory(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// CategoryProfile selects which primary rows take part in reconciliation.
type CategoryProfile struct {
	Name       string   `json:"name" yaml:"name"`
	Categories []string `json:"categories" yaml:"categories"`
}

// Accepts reports whether a raw category label belongs to the profile.
// An absent category never matches.
func (p CategoryProfile) Accepts(category Field) bool {
	if !category.Valid {
		return false
	}
	folded := FoldCategory(category.Value)
	for _, c := range p.Categories {
		if FoldCategory(c) == folded {
			return true
		}
	}
	return false
}

// ProfileSet is a collection of profiles addressable by name.
type ProfileSet struct {
	profiles map[string]CategoryProfile
}

// DefaultProfiles returns the three built-in profiles.
func DefaultProfiles() *ProfileSet {
	s := &ProfileSet{profiles: make(map[string]CategoryProfile)}
	s.Add(CategoryProfile{Name: ProfilePT, Categories: []string{"psv", "metro"}})
	s.Add(CategoryProfile{Name: ProfileContracts, Categories: []string{"private hire", "contracts"}})
	s.Add(CategoryProfile{Name: ProfileSchools, Categories: []string{"sec"}})
	return s
}

// Add inserts or replaces a profile.
func (s *ProfileSet) Add(p CategoryProfile) {
	s.profiles[FoldCategory(p.Name)] = p
}

// Lookup resolves a profile name, ignoring case and surrounding whitespace.
func (s *ProfileSet) Lookup(name string) (CategoryProfile, error) {
	p, ok := s.profiles[FoldCategory(name)]
	if !ok {
		return CategoryProfile{}, &UnknownProfileError{Name: name, Known: s.Names()}
	}
	return p, nil
}

// Names lists profile names in sorted order.
func (s *ProfileSet) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for _, p := range s.profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// All returns every profile, sorted by name.
func (s *ProfileSet) All() []CategoryProfile {
	all := make([]CategoryProfile, 0, len(s.profiles))
	for _, name := range s.Names() {
		all = append(all, s.profiles[FoldCategory(name)])
	}
	return all
}

// DefaultReportName is the suggested download name for a profile's report.
func DefaultReportName(profile, ext string) string {
	return fmt.Sprintf("%s_Accidents_Comparison.%s", profile, strings.TrimPrefix(ext, "."))
}
