package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/austinhawthorne/migrate-meraki2nile/pkg/meraki"
)

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{
			name:   "first non-empty",
			values: []string{"", "second", "third"},
			want:   "second",
		},
		{
			name:   "all empty",
			values: []string{"", "  ", ""},
			want:   "",
		},
		{
			name:   "first is non-empty",
			values: []string{"first", "second"},
			want:   "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, firstNonEmpty(tt.values...))
		})
	}
}

func TestNetworkInOrganization(t *testing.T) {
	networks := []meraki.Network{
		{ID: "N1", Name: "HQ"},
		{ID: "N2", Name: "Branch"},
	}

	tests := []struct {
		name      string
		networkID string
		want      bool
	}{
		{
			name:      "member network",
			networkID: "N1",
			want:      true,
		},
		{
			name:      "unknown network",
			networkID: "N3",
			want:      false,
		},
		{
			name:      "name does not count as ID",
			networkID: "HQ",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, networkInOrganization(tt.networkID, networks))
		})
	}
}

func TestNetworkInOrganization_EmptyList(t *testing.T) {
	assert.False(t, networkInOrganization("N1", nil))
}
