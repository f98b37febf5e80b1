package pagination

import (
	"sort"
	"strings"

	"github.com/cotstudio/cot/internal/api"
)

// ProjectSorter sorts project listings for plain output. The server returns
// projects in creation order; sorting locally keeps `project list`
// scriptable without another round trip.
type ProjectSorter struct {
	validFields map[string]bool
}

// NewProjectSorter creates a ProjectSorter with the valid sort fields.
func NewProjectSorter() *ProjectSorter {
	return &ProjectSorter{
		validFields: map[string]bool{
			"name":      true,
			"documents": true,
			"tasks":     true,
			"created":   true,
			"updated":   true,
		},
	}
}

// IsValidField checks if the given field name is valid for sorting.
func (s *ProjectSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns a list of valid field names for sorting.
func (s *ProjectSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields) // Return in consistent order
	return fields
}

// Sort sorts projects by the specified field and order.
// Returns a new sorted slice; does not modify the original.
// If field is invalid, returns the original slice unchanged.
func (s *ProjectSorter) Sort(projects []api.Project, field, order string) []api.Project {
	if !s.IsValidField(field) {
		return projects
	}

	sorted := make([]api.Project, len(projects))
	copy(sorted, projects)

	sort.SliceStable(sorted, func(i, j int) bool {
		// For descending order, swap i and j in comparisons to maintain stability
		if order == SortOrderDesc {
			i, j = j, i
		}

		switch field {
		case "name":
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		case "documents":
			return sorted[i].DocumentCount < sorted[j].DocumentCount
		case "tasks":
			return sorted[i].TaskCount < sorted[j].TaskCount
		case "created":
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		case "updated":
			return sorted[i].UpdatedAt.Before(sorted[j].UpdatedAt)
		default:
			return false
		}
	})

	return sorted
}
