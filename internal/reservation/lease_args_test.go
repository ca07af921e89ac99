package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/trestle/internal/errdefs"
	"github.com/imamik/trestle/internal/platform/openstack"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestLeaseCreateArgs_NowWithLength(t *testing.T) {
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	req, err := LeaseCreateArgs("L", LeaseWindow{Length: 24 * time.Hour, now: fixedClock(now)}, nil)
	require.NoError(t, err)

	// The start buffer pushes past the next minute boundary; the end is
	// anchored at the unbuffered now.
	assert.Equal(t, "2021-01-01 00:01", req.Start)
	assert.Equal(t, "2021-01-02 00:00", req.End)
	assert.NotNil(t, req.Reservations)
	assert.NotNil(t, req.Events)
	assert.Empty(t, req.Events)
}

func TestLeaseCreateArgs_DefaultLength(t *testing.T) {
	now := time.Date(2021, 6, 15, 12, 30, 0, 0, time.UTC)

	req, err := LeaseCreateArgs("L", LeaseWindow{now: fixedClock(now)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2021-06-15 12:31", req.Start)
	assert.Equal(t, "2021-06-16 12:30", req.End)
}

func TestLeaseCreateArgs_ExplicitWindow(t *testing.T) {
	start := time.Date(2021, 3, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2021, 3, 3, 9, 0, 0, 0, time.UTC)

	req, err := LeaseCreateArgs("L", LeaseWindow{Start: start, End: end}, []openstack.ReservationRequest{
		{ResourceType: openstack.ResourceTypeNode, Min: 1, Max: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "2021-03-01 09:00", req.Start)
	assert.Equal(t, "2021-03-03 09:00", req.End)
	require.Len(t, req.Reservations, 1)
}

func TestLeaseCreateArgs_ExplicitStartWithLength(t *testing.T) {
	start := time.Date(2021, 3, 1, 9, 0, 0, 0, time.UTC)

	req, err := LeaseCreateArgs("L", LeaseWindow{Start: start, Length: 6 * time.Hour}, nil)
	require.NoError(t, err)
	assert.Equal(t, "2021-03-01 09:00", req.Start)
	assert.Equal(t, "2021-03-01 15:00", req.End)
}

func TestLeaseCreateArgs_LengthAndEndConflict(t *testing.T) {
	_, err := LeaseCreateArgs("L", LeaseWindow{
		End:    time.Date(2021, 3, 3, 9, 0, 0, 0, time.UTC),
		Length: time.Hour,
	}, nil)
	assert.True(t, errdefs.IsInvalidArgument(err))
}

func TestLeaseCreateArgs_NameRequired(t *testing.T) {
	_, err := LeaseCreateArgs("", LeaseWindow{}, nil)
	assert.True(t, errdefs.IsInvalidArgument(err))
}
