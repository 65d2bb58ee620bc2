package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidely/GuideBookingService/internal/domain"
	availabilityRepo "github.com/guidely/GuideBookingService/internal/infra/storage/availability"
	"github.com/guidely/GuideBookingService/internal/service/availability/models"
	"github.com/guidely/GuideBookingService/pkg/ptr"
)

// --- Fakes ---

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAvailabilityRepo struct {
	upserted  *domain.AvailabilitySlot
	upsertErr error
	slots     []*domain.AvailabilitySlot
}

func (f *fakeAvailabilityRepo) Upsert(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	f.upserted = slot
	stored := *slot
	return &stored, nil
}

func (f *fakeAvailabilityRepo) GetRange(ctx context.Context, guideID, serviceID int64, from, to string) ([]*domain.AvailabilitySlot, error) {
	return f.slots, nil
}

// --- Helpers ---

func validSetSlotRequest() *models.SetSlotRequest {
	return &models.SetSlotRequest{
		UserID:        7,
		GuideID:       7,
		ServiceID:     3,
		Date:          "2026-09-15",
		TotalCapacity: 10,
	}
}

// --- Tests ---

func TestSetSlot_Success(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.SetSlot(context.Background(), validSetSlotRequest())
	require.NoError(t, err)

	assert.Equal(t, "2026-09-15", resp.Date)
	assert.Equal(t, 10, resp.TotalCapacity)
	assert.Equal(t, 10, resp.AvailableSpots)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), repo.upserted.Date)
}

func TestSetSlot_BlockedDateWithPriceOverride(t *testing.T) {
	repo := &fakeAvailabilityRepo{}
	svc := NewService(repo, nopLogger{})

	req := validSetSlotRequest()
	req.Blocked = true
	req.PriceOverrideCents = ptr.Ptr(int64(15000))

	resp, err := svc.SetSlot(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.Blocked)
	assert.Equal(t, 0, resp.AvailableSpots)
	require.NotNil(t, resp.PriceOverrideCents)
	assert.Equal(t, int64(15000), *resp.PriceOverrideCents)
}

func TestSetSlot_OnlyGuideItself(t *testing.T) {
	svc := NewService(&fakeAvailabilityRepo{}, nopLogger{})

	req := validSetSlotRequest()
	req.UserID = 999

	_, err := svc.SetSlot(context.Background(), req)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetSlot_CapacityBelowReserved(t *testing.T) {
	repo := &fakeAvailabilityRepo{upsertErr: availabilityRepo.ErrCapacityBelowReserved}
	svc := NewService(repo, nopLogger{})

	_, err := svc.SetSlot(context.Background(), validSetSlotRequest())
	require.ErrorIs(t, err, ErrCapacityBelowReserved)
}

func TestSetSlot_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.SetSlotRequest)
	}{
		{"bad date", func(r *models.SetSlotRequest) { r.Date = "15.09.2026" }},
		{"zero capacity", func(r *models.SetSlotRequest) { r.TotalCapacity = 0 }},
		{"capacity over limit", func(r *models.SetSlotRequest) { r.TotalCapacity = domain.MaxSlotCapacity + 1 }},
		{"negative price override", func(r *models.SetSlotRequest) { r.PriceOverrideCents = ptr.Ptr(int64(-1)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&fakeAvailabilityRepo{}, nopLogger{})

			req := validSetSlotRequest()
			tt.mutate(req)

			_, err := svc.SetSlot(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetGuideSlots_OnlyGuideItself(t *testing.T) {
	svc := NewService(&fakeAvailabilityRepo{}, nopLogger{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetGuideSlots(context.Background(), 999, 7, 3, from, to)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetGuideSlots_ReturnsReservedCounts(t *testing.T) {
	repo := &fakeAvailabilityRepo{
		slots: []*domain.AvailabilitySlot{
			{
				GuideID:       7,
				ServiceID:     3,
				Date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
				TotalCapacity: 10,
				ReservedCount: 4,
			},
		},
	}
	svc := NewService(repo, nopLogger{})

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetGuideSlots(context.Background(), 7, 7, 3, from, to)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)

	assert.Equal(t, 4, resp.Slots[0].ReservedCount)
	assert.Equal(t, 6, resp.Slots[0].AvailableSpots)
}
