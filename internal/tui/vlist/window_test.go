package vlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParams(t *testing.T) {
	tests := []struct {
		name           string
		itemHeight     int
		viewportHeight int
		bufferSize     int
		wantErr        error
	}{
		{name: "Valid", itemHeight: 50, viewportHeight: 400, bufferSize: 5},
		{name: "ZeroBuffer", itemHeight: 1, viewportHeight: 10, bufferSize: 0},
		{name: "ZeroItemHeight", itemHeight: 0, viewportHeight: 400, bufferSize: 5, wantErr: ErrItemHeight},
		{name: "NegativeItemHeight", itemHeight: -50, viewportHeight: 400, bufferSize: 5, wantErr: ErrItemHeight},
		{name: "ZeroViewport", itemHeight: 50, viewportHeight: 0, bufferSize: 5, wantErr: ErrViewportHeight},
		{name: "NegativeViewport", itemHeight: 50, viewportHeight: -400, bufferSize: 5, wantErr: ErrViewportHeight},
		{name: "NegativeBuffer", itemHeight: 50, viewportHeight: 400, bufferSize: -1, wantErr: ErrBufferSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := NewParams(tt.itemHeight, tt.viewportHeight, tt.bufferSize)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.itemHeight, params.ItemHeight)
			assert.Equal(t, tt.viewportHeight, params.ViewportHeight)
			assert.Equal(t, tt.bufferSize, params.BufferSize)
		})
	}
}

func TestCompute(t *testing.T) {
	// The geometry used by the acceptance scenarios: 1000 items of height
	// 50 in a 400-high viewport with a 5-item buffer.
	params, err := NewParams(50, 400, 5)
	require.NoError(t, err)

	tests := []struct {
		name      string
		offset    int
		n         int
		wantStart int
		wantEnd   int
		wantEmpty bool
	}{
		{name: "TopOfList", offset: 0, n: 1000, wantStart: 0, wantEnd: 13},
		{name: "MidScroll", offset: 2500, n: 1000, wantStart: 45, wantEnd: 63},
		{name: "EmptyDataset", offset: 0, n: 0, wantEmpty: true},
		{name: "MaxScroll", offset: 49600, n: 1000, wantStart: 987, wantEnd: 999},
		{name: "NegativeOffsetClamped", offset: -2500, n: 1000, wantStart: 0, wantEnd: 13},
		{name: "OffsetPastEndClampsStart", offset: 49600, n: 10, wantStart: 9, wantEnd: 9},
		{name: "DatasetSmallerThanViewport", offset: 0, n: 3, wantStart: 0, wantEnd: 2},
		{name: "SingleItem", offset: 0, n: 1, wantStart: 0, wantEnd: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win, ok := params.Compute(tt.offset, tt.n)
			if tt.wantEmpty {
				assert.False(t, ok)
				assert.Equal(t, Window{}, win)
				return
			}

			require.True(t, ok)
			assert.Equal(t, tt.wantStart, win.Start)
			assert.Equal(t, tt.wantEnd, win.End)
			assert.GreaterOrEqual(t, win.Start, 0)
			assert.LessOrEqual(t, win.End, tt.n-1)
			assert.LessOrEqual(t, win.Start, win.End)
		})
	}
}

func TestCompute_Idempotent(t *testing.T) {
	params, err := NewParams(50, 400, 5)
	require.NoError(t, err)

	first, ok1 := params.Compute(2500, 1000)
	second, ok2 := params.Compute(2500, 1000)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, first, second)
}

func TestCompute_TightBuffer(t *testing.T) {
	params, err := NewParams(1, 10, 0)
	require.NoError(t, err)

	win, ok := params.Compute(20, 100)
	require.True(t, ok)
	assert.Equal(t, 20, win.Start)
	assert.Equal(t, 30, win.End)
}

func TestWindow_Helpers(t *testing.T) {
	win := Window{Start: 45, End: 63}
	assert.Equal(t, 19, win.Len())
	assert.True(t, win.Contains(45))
	assert.True(t, win.Contains(63))
	assert.False(t, win.Contains(44))
	assert.False(t, win.Contains(64))
}
