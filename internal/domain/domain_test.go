package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-HallBooking/pkg/types"
)

func slot(facility FacilityID, date, start, end string) Slot {
	return Slot{Facility: facility, Date: types.DateKey(date), StartTime: types.TimeString(start), EndTime: types.TimeString(end)}
}

func TestSlot_Overlaps(t *testing.T) {
	existing := slot("Hall A", "2025-03-01", "10:00", "11:00")

	tests := []struct {
		name      string
		candidate Slot
		want      bool
	}{
		{name: "partial overlap at end", candidate: slot("Hall A", "2025-03-01", "10:30", "11:30"), want: true},
		{name: "partial overlap at start", candidate: slot("Hall A", "2025-03-01", "09:30", "10:30"), want: true},
		{name: "contained", candidate: slot("Hall A", "2025-03-01", "10:15", "10:45"), want: true},
		{name: "containing", candidate: slot("Hall A", "2025-03-01", "09:00", "12:00"), want: true},
		{name: "identical", candidate: slot("Hall A", "2025-03-01", "10:00", "11:00"), want: true},
		{name: "adjacent after", candidate: slot("Hall A", "2025-03-01", "11:00", "12:00"), want: false},
		{name: "adjacent before", candidate: slot("Hall A", "2025-03-01", "09:00", "10:00"), want: false},
		{name: "other facility", candidate: slot("Hall B", "2025-03-01", "10:30", "11:30"), want: false},
		{name: "other date", candidate: slot("Hall A", "2025-03-02", "10:30", "11:30"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(tt.candidate))
			assert.Equal(t, tt.want, tt.candidate.Overlaps(existing), "overlap must be symmetric")
		})
	}
}

func TestSlot_Validate(t *testing.T) {
	assert.NoError(t, slot("Hall A", "2025-03-01", "10:00", "11:00").Validate())
	assert.ErrorIs(t, slot("Hall A", "2025-03-01", "11:00", "10:00").Validate(), ErrInvalidSlot)
	assert.ErrorIs(t, slot("Hall A", "2025-03-01", "10:00", "10:00").Validate(), ErrInvalidSlot)
	assert.ErrorIs(t, slot("Hall A", "03/01/2025", "10:00", "11:00").Validate(), ErrInvalidSlot)
	assert.ErrorIs(t, slot("", "2025-03-01", "10:00", "11:00").Validate(), ErrInvalidSlot)
	assert.ErrorIs(t, slot("Hall A", "2025-03-01", "10", "11:00").Validate(), ErrInvalidSlot)
}

func TestBooking_Helpers(t *testing.T) {
	b := &Booking{Facility: "Hall B", OriginalFacility: "Hall A", Status: StatusBooked}
	assert.True(t, b.HoldsSlot())
	assert.False(t, b.IsEditable())
	assert.True(t, b.WasReassigned())

	b.Status = StatusPending
	assert.False(t, b.HoldsSlot())
	assert.True(t, b.IsEditable())

	b.OriginalFacility = "Hall B"
	assert.False(t, b.WasReassigned())
}

func TestContentEdit_Apply(t *testing.T) {
	title := "New title"
	attendees := 50
	b := &Booking{Title: "Old", Purpose: "Talk", ExpectedAttendees: 10}

	edit := ContentEdit{Title: &title, ExpectedAttendees: &attendees}
	assert.False(t, edit.IsEmpty())
	edit.Apply(b)

	assert.Equal(t, "New title", b.Title)
	assert.Equal(t, "Talk", b.Purpose)
	assert.Equal(t, 50, b.ExpectedAttendees)
	assert.True(t, ContentEdit{}.IsEmpty())
}

func TestCatalog(t *testing.T) {
	c := NewCatalog([]Facility{
		{ID: "Hall A", Capacity: 200},
		{ID: "VIP Lounge", Capacity: 10, Restriction: "Reserved for external guests only."},
	})

	f, ok := c.Get("VIP Lounge")
	assert.True(t, ok)
	assert.Equal(t, 10, f.Capacity)
	assert.True(t, f.HasRestriction())
	assert.False(t, c.Has("Hall Z"))
	assert.Equal(t, []FacilityID{"Hall A", "VIP Lounge"}, c.IDs())

	var nilCatalog *Catalog
	_, ok = nilCatalog.Get("Hall A")
	assert.False(t, ok)
}

func TestActor(t *testing.T) {
	b := &Booking{RequestedBy: "Alice"}
	assert.True(t, Actor{Name: "Alice"}.Owns(b))
	assert.False(t, Actor{Name: "Bob"}.Owns(b))
	assert.False(t, Actor{}.Owns(&Booking{}))
	assert.True(t, ActorFromUser(User{ID: 1, Name: "Root", Role: RoleAdmin}).IsAdmin())
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("booked")
	assert.True(t, ok)
	assert.Equal(t, StatusBooked, st)

	_, ok = ParseStatus("confirmed")
	assert.False(t, ok)
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("manager")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}
