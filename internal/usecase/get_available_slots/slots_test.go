package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BikeService/internal/domain"
	"github.com/m04kA/SMC-BikeService/pkg/types"
)

var workDay = domain.BusinessHours{
	OpenHour:               9,
	CloseHour:              18,
	SlotGranularityMinutes: 60,
}

func TestGenerateTimeSlots(t *testing.T) {
	slots := generateTimeSlots(workDay)

	// 9 слотов: 09:00 .. 17:00, последний начинается за час до закрытия
	require.Len(t, slots, 9)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("17:00"), slots[len(slots)-1])

	// Строго по возрастанию, без дубликатов
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]),
			"slot %s must be before %s", slots[i-1], slots[i])
	}
}

func TestGenerateTimeSlots_Deterministic(t *testing.T) {
	assert.Equal(t, generateTimeSlots(workDay), generateTimeSlots(workDay))
}

func TestOccupiedSlots(t *testing.T) {
	tests := []struct {
		name     string
		bookings []*domain.Booking
		want     []types.TimeString
	}{
		{
			name:     "no bookings",
			bookings: nil,
			want:     nil,
		},
		{
			name: "one-hour booking takes one slot",
			bookings: []*domain.Booking{
				{TimeSlot: "10:00", DurationMinutes: 60, Status: domain.StatusPending},
			},
			want: []types.TimeString{"10:00"},
		},
		{
			name: "two-hour booking takes two slots",
			bookings: []*domain.Booking{
				{TimeSlot: "10:00", DurationMinutes: 120, Status: domain.StatusConfirmed},
			},
			want: []types.TimeString{"10:00", "11:00"},
		},
		{
			name: "90 minutes round up to two slots",
			bookings: []*domain.Booking{
				{TimeSlot: "14:00", DurationMinutes: 90, Status: domain.StatusPending},
			},
			want: []types.TimeString{"14:00", "15:00"},
		},
		{
			name: "cancelled booking takes nothing",
			bookings: []*domain.Booking{
				{TimeSlot: "10:00", DurationMinutes: 120, Status: domain.StatusCancelled},
			},
			want: nil,
		},
		{
			name: "overlapping bookings merge",
			bookings: []*domain.Booking{
				{TimeSlot: "10:00", DurationMinutes: 120, Status: domain.StatusPending},
				{TimeSlot: "11:00", DurationMinutes: 60, Status: domain.StatusPending},
			},
			want: []types.TimeString{"10:00", "11:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			occupied := occupiedSlots(tt.bookings, workDay.SlotGranularityMinutes)

			require.Len(t, occupied, len(tt.want))
			for _, slot := range tt.want {
				assert.Contains(t, occupied, slot)
			}
		})
	}
}

func TestFilterAvailable_PreservesOrder(t *testing.T) {
	all := generateTimeSlots(workDay)
	occupied := map[types.TimeString]struct{}{
		"10:00": {},
		"11:00": {},
		"15:00": {},
	}

	available := filterAvailable(all, occupied)

	assert.Equal(t, []types.TimeString{"09:00", "12:00", "13:00", "14:00", "16:00", "17:00"}, available)
}

func TestSlotSpan(t *testing.T) {
	assert.Equal(t, 1, slotSpan(60, 60))
	assert.Equal(t, 2, slotSpan(90, 60))
	assert.Equal(t, 2, slotSpan(120, 60))
	assert.Equal(t, 3, slotSpan(121, 60))
	assert.Equal(t, 0, slotSpan(0, 60))
	assert.Equal(t, 0, slotSpan(60, 0))
}
