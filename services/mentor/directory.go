package mentor

import (
	"strings"

	"globaled/models"
)

// Filter narrows the mentor catalog. Empty fields match everything.
type Filter struct {
	Region string `form:"region" json:"region"`
	Major  string `form:"major" json:"major"`
	Search string `form:"search" json:"search"`
}

// FilterMentors returns the mentors matching f in catalog order, never including
// the mentor record of currentUserID.
func FilterMentors(catalog []models.Mentor, f Filter, currentUserID int) []models.Mentor {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Mentor, 0, len(catalog))
	for _, m := range catalog {
		if m.ID == currentUserID {
			continue
		}
		if f.Region != "" && m.Region != f.Region {
			continue
		}
		if f.Major != "" && m.Major != f.Major {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Name), search) &&
			!strings.Contains(strings.ToLower(m.University), search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Facets lists the distinct filter values in first-seen order.
type Facets struct {
	Regions []string `json:"regions"`
	Majors  []string `json:"majors"`
}

func BuildFacets(catalog []models.Mentor, currentUserID int) Facets {
	facets := Facets{Regions: []string{}, Majors: []string{}}
	seenRegion := map[string]bool{}
	seenMajor := map[string]bool{}
	for _, m := range catalog {
		if m.ID == currentUserID {
			continue
		}
		if !seenRegion[m.Region] {
			seenRegion[m.Region] = true
			facets.Regions = append(facets.Regions, m.Region)
		}
		if !seenMajor[m.Major] {
			seenMajor[m.Major] = true
			facets.Majors = append(facets.Majors, m.Major)
		}
	}
	return facets
}
