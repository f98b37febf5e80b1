package vlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewport_DistanceFromBottom(t *testing.T) {
	vp := Viewport{ScrollHeight: 2000, ScrollTop: 1850, ClientHeight: 100}
	assert.Equal(t, 50, vp.DistanceFromBottom())

	top := Viewport{ScrollHeight: 2000, ScrollTop: 0, ClientHeight: 100}
	assert.Equal(t, 1900, top.DistanceFromBottom())

	exact := Viewport{ScrollHeight: 100, ScrollTop: 0, ClientHeight: 100}
	assert.Equal(t, 0, exact.DistanceFromBottom())
}

func TestLoadGate_ShouldLoad(t *testing.T) {
	nearBottom := Viewport{ScrollHeight: 2000, ScrollTop: 1850, ClientHeight: 100}

	tests := []struct {
		name string
		gate LoadGate
		vp   Viewport
		want bool
	}{
		{
			name: "NearBottomFires",
			gate: LoadGate{Threshold: 100, HasMore: true},
			vp:   nearBottom,
			want: true,
		},
		{
			name: "FarFromBottomHolds",
			gate: LoadGate{Threshold: 100, HasMore: true},
			vp:   Viewport{ScrollHeight: 2000, ScrollTop: 500, ClientHeight: 100},
			want: false,
		},
		{
			name: "ExactThresholdHolds",
			gate: LoadGate{Threshold: 100, HasMore: true},
			vp:   Viewport{ScrollHeight: 2000, ScrollTop: 1800, ClientHeight: 100},
			want: false,
		},
		{
			name: "LoadingHolds",
			gate: LoadGate{Threshold: 100, HasMore: true, Loading: true},
			vp:   nearBottom,
			want: false,
		},
		{
			name: "ExhaustedHolds",
			gate: LoadGate{Threshold: 100, HasMore: false},
			vp:   nearBottom,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.gate.ShouldLoad(tt.vp))
		})
	}
}

// One scroll event near the bottom yields one trigger: the owner latches
// Loading before the fetch resolves and the gate stays closed after that.
func TestLoadGate_SingleTriggerPerEvent(t *testing.T) {
	gate := LoadGate{Threshold: 100, HasMore: true}
	vp := Viewport{ScrollHeight: 2000, ScrollTop: 1850, ClientHeight: 100}

	triggers := 0
	for i := 0; i < 5; i++ {
		if gate.ShouldLoad(vp) {
			triggers++
			gate.Loading = true
		}
	}
	assert.Equal(t, 1, triggers)

	// The fetch resolves: more content arrived and the gate reopens for
	// positions near the new bottom.
	gate.Loading = false
	grown := Viewport{ScrollHeight: 3000, ScrollTop: 2950, ClientHeight: 100}
	assert.True(t, gate.ShouldLoad(grown))
}

func TestNewLoadGate(t *testing.T) {
	gate := NewLoadGate()
	assert.Equal(t, DefaultLoadThreshold, gate.Threshold)
	assert.True(t, gate.HasMore)
	assert.False(t, gate.Loading)
}
