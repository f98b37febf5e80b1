package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotstudio/cot/internal/cli/pagination"
)

// TestPageOverrun_WindowAndMetadataAgree verifies how a too-large --page
// lands across the two halves of a listing: the window caps to the last
// available page while the metadata echoes what was requested.
func TestPageOverrun_WindowAndMetadataAgree(t *testing.T) {
	docs := documentFixtures(50)
	params := pagination.PaginationParams{Page: 10, PageSize: 20}
	require.NoError(t, params.Validate())

	window := pagination.ApplyToSlice(params, docs)
	require.Len(t, window, 10)
	assert.Equal(t, "doc-040", window[0].ID, "window starts at the real last page")

	meta := pagination.NewPaginationMeta(params, len(docs))
	assert.Equal(t, 10, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.False(t, meta.HasNext)
}

// TestOffsetOverrun_EmptyWindow verifies an offset past the corpus returns
// nothing rather than capping, unlike page mode.
func TestOffsetOverrun_EmptyWindow(t *testing.T) {
	docs := documentFixtures(50)
	params := pagination.PaginationParams{Offset: 100, Limit: 10}
	require.NoError(t, params.Validate())

	assert.Empty(t, pagination.ApplyToSlice(params, docs))

	meta := pagination.NewPaginationMeta(params, len(docs))
	assert.Equal(t, 11, meta.CurrentPage, "offset 100 at 10 per page is page 11")
	assert.Equal(t, 5, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)
}

// TestSortExpressions verifies the --sort expressions the project list
// command accepts, and that parsed fields line up with the sorter.
func TestSortExpressions(t *testing.T) {
	sorter := pagination.NewProjectSorter()

	tests := []struct {
		name      string
		expr      string
		wantField string
		wantOrder string
		wantErr   error
	}{
		{name: "empty means unsorted", expr: "", wantField: "", wantOrder: "asc"},
		{name: "field only defaults ascending", expr: "documents", wantField: "documents", wantOrder: "asc"},
		{name: "field with order", expr: "updated:desc", wantField: "updated", wantOrder: "desc"},
		{name: "order is lowercased", expr: "name:DESC", wantField: "name", wantOrder: "desc"},
		{name: "unknown order", expr: "updated:recent", wantErr: pagination.ErrInvalidSortOrder},
		{name: "missing field", expr: ":desc", wantErr: pagination.ErrEmptySortField},
		{name: "too many parts", expr: "updated:desc:extra", wantErr: pagination.ErrInvalidSortFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, order, err := pagination.ParseSort(tt.expr)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Equal(t, tt.wantOrder, order)

			if field != "" {
				assert.True(t, sorter.IsValidField(field), "parsed field %q should be sortable", field)
			}
		})
	}
}

// TestSortFieldCaseSensitivity verifies field names must be lowercase:
// ParseSort only lowercases the order half of the expression.
func TestSortFieldCaseSensitivity(t *testing.T) {
	sorter := pagination.NewProjectSorter()

	field, _, err := pagination.ParseSort("NAME:desc")
	require.NoError(t, err)
	assert.Equal(t, "NAME", field)
	assert.False(t, sorter.IsValidField(field))
	assert.True(t, sorter.IsValidField("name"))
}

// TestMixedModes_RejectedBeforeWindowing verifies --page plus --offset is
// caught by validation, so windowing never sees an ambiguous request.
func TestMixedModes_RejectedBeforeWindowing(t *testing.T) {
	params := pagination.PaginationParams{Page: 2, PageSize: 10, Offset: 20, Limit: 10}

	err := params.Validate()
	assert.ErrorIs(t, err, pagination.ErrMixedPaginationModes)
}
