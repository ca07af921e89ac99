package openstack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/trestle/internal/errdefs"
)

func TestIsCapacityError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"capacity rejection", errors.New("Not enough resources available in requested window"), true},
		{"host variant", errors.New("not enough hosts available"), true},
		{"unrelated", errors.New("invalid token"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCapacityError(tt.err))
		})
	}
}

func TestAnnotateCapacity(t *testing.T) {
	reservations := []ReservationRequest{
		{ResourceType: ResourceTypeNode},
		{ResourceType: ResourceTypeNode},
		{ResourceType: ResourceTypeFloatingIP},
	}

	err := AnnotateCapacity(errors.New("not enough resources available"), reservations)
	assert.True(t, errdefs.IsResource(err))
	assert.Contains(t, err.Error(), "physical:host")
	assert.Contains(t, err.Error(), "virtual:floatingip")

	other := errors.New("boom")
	assert.Same(t, other, AnnotateCapacity(other, reservations))
}
