package domain

import "time"

// AvailabilitySlot is the finite participant capacity of one
// (guide, service, date). ReservedCount never exceeds TotalCapacity;
// a blocked date behaves as fully reserved regardless of numeric slack.
type AvailabilitySlot struct {
	ID        int64
	GuideID   int64
	ServiceID int64
	Date      time.Time

	TotalCapacity int
	ReservedCount int
	Blocked       bool

	// Optional per-date price override, cents per participant
	PriceOverrideCents *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableSpots returns the number of participants that can still be booked
func (s *AvailabilitySlot) AvailableSpots() int {
	if s.Blocked {
		return 0
	}
	free := s.TotalCapacity - s.ReservedCount
	if free < 0 {
		return 0
	}
	return free
}

// IsFull returns true if the slot has no available spots
func (s *AvailabilitySlot) IsFull() bool {
	return s.AvailableSpots() <= 0
}

// CanFit returns true if n more participants can be added
func (s *AvailabilitySlot) CanFit(n int) bool {
	return s.AvailableSpots() >= n
}

// PricePerParticipantCents returns the override price if set, otherwise fallback
func (s *AvailabilitySlot) PricePerParticipantCents(fallback int64) int64 {
	if s.PriceOverrideCents != nil {
		return *s.PriceOverrideCents
	}
	return fallback
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *AvailabilitySlot) OccupancyRate() float64 {
	if s.TotalCapacity == 0 {
		return 0
	}
	return float64(s.ReservedCount) / float64(s.TotalCapacity) * 100
}
