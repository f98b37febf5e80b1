package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestComputeLayout tests terminal space division.
func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		height      int
		wantCompact bool
		wantSidebar int
		wantContent int
		wantHeight  int
	}{
		{
			name:        "narrow terminal collapses the sidebar",
			width:       80,
			height:      24,
			wantCompact: true,
			wantSidebar: 0,
			wantContent: 80,
			wantHeight:  22,
		},
		{
			name:        "just below the breakpoint is compact",
			width:       99,
			height:      24,
			wantCompact: true,
			wantSidebar: 0,
			wantContent: 99,
			wantHeight:  22,
		},
		{
			name:        "breakpoint width clamps the sidebar up to its minimum",
			width:       100,
			height:      24,
			wantCompact: false,
			wantSidebar: 28,
			wantContent: 71,
			wantHeight:  22,
		},
		{
			name:        "a fifth of the width inside the clamp range",
			width:       150,
			height:      45,
			wantCompact: false,
			wantSidebar: 30,
			wantContent: 119,
			wantHeight:  43,
		},
		{
			name:        "very wide terminals clamp the sidebar down",
			width:       250,
			height:      50,
			wantCompact: false,
			wantSidebar: 40,
			wantContent: 209,
			wantHeight:  48,
		},
		{
			name:        "tiny heights keep one content row",
			width:       80,
			height:      2,
			wantCompact: true,
			wantSidebar: 0,
			wantContent: 80,
			wantHeight:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := ComputeLayout(tt.width, tt.height)

			assert.Equal(t, tt.wantCompact, l.Compact)
			assert.Equal(t, tt.wantSidebar, l.SidebarWidth)
			assert.Equal(t, tt.wantContent, l.ContentWidth)
			assert.Equal(t, tt.wantHeight, l.ContentHeight)
			assert.Equal(t, tt.width, l.Width)
			assert.Equal(t, tt.height, l.Height)
		})
	}
}
