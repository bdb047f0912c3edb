package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
		ok   bool
	}{
		{raw: "pending", want: StatusPending, ok: true},
		{raw: "Accepted", want: StatusAccepted, ok: true},
		{raw: "COMPLETED", want: StatusCompleted, ok: true},
		{raw: "  emergency  ", want: StatusEmergency, ok: true},
		{raw: "cancelled", ok: false},
		{raw: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseStatus(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStatusIs_CaseInsensitive(t *testing.T) {
	assert.True(t, Status("PENDING").Is(StatusPending))
	assert.True(t, Status("Accepted").Is(StatusAccepted))
	assert.False(t, StatusPending.Is(StatusAccepted))
}

func TestRequestIsAssignedTo(t *testing.T) {
	volunteerID := uuid.New()
	request := &Request{Status: StatusAccepted, AssignedTo: &volunteerID}

	assert.True(t, request.IsAssignedTo(volunteerID))
	assert.False(t, request.IsAssignedTo(uuid.New()))

	unassigned := &Request{Status: StatusPending}
	assert.False(t, unassigned.IsAssignedTo(volunteerID))
}
