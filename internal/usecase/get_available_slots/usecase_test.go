package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidely/GuideBookingService/internal/domain"
	"github.com/guidely/GuideBookingService/internal/integrations/guideservice"
)

// --- Fakes ---

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeAvailabilityRepo struct {
	slots []*domain.AvailabilitySlot
	err   error
}

func (f *fakeAvailabilityRepo) GetRange(ctx context.Context, guideID, serviceID int64, from, to string) ([]*domain.AvailabilitySlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}

type fakeGuideClient struct {
	service *guideservice.Service
	err     error
}

func (f *fakeGuideClient) GetService(ctx context.Context, serviceID int64) (*guideservice.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

// --- Helpers ---

func date(day int) time.Time {
	return time.Date(2026, 9, day, 0, 0, 0, 0, time.UTC)
}

func tourService() *guideservice.Service {
	return &guideservice.Service{
		ID:              3,
		GuideID:         7,
		Title:           "Old Town Walking Tour",
		PriceCents:      10000,
		DurationMinutes: 180,
		DefaultCapacity: 8,
		IsActive:        true,
	}
}

func newTestUseCase(slots []*domain.AvailabilitySlot, service *guideservice.Service) *UseCase {
	return NewUseCase(
		&fakeAvailabilityRepo{slots: slots},
		&fakeGuideClient{service: service},
		nopLogger{},
	)
}

// --- Tests ---

func TestExecute_ProjectionMixesConfiguredAndDefaultDays(t *testing.T) {
	override := int64(15000)
	slots := []*domain.AvailabilitySlot{
		{
			GuideID:       7,
			ServiceID:     3,
			Date:          date(16),
			TotalCapacity: 10,
			ReservedCount: 4,
		},
		{
			GuideID:       7,
			ServiceID:     3,
			Date:          date(17),
			TotalCapacity: 10,
			Blocked:       true,
		},
		{
			GuideID:            7,
			ServiceID:          3,
			Date:               date(18),
			TotalCapacity:      6,
			ReservedCount:      6,
			PriceOverrideCents: &override,
		},
	}
	uc := newTestUseCase(slots, tourService())

	resp, err := uc.Execute(context.Background(), &Request{
		GuideID:   7,
		ServiceID: 3,
		From:      date(15),
		To:        date(18),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 4)

	// 15-е не настроено: дефолтная вместимость и базовая цена
	assert.Equal(t, Day{
		Date:                     "2026-09-15",
		TotalSpots:               8,
		AvailableSpots:           8,
		Blocked:                  false,
		PricePerParticipantCents: 10000,
	}, resp.Days[0])

	// 16-е частично занято
	assert.Equal(t, 6, resp.Days[1].AvailableSpots)
	assert.Equal(t, 10, resp.Days[1].TotalSpots)

	// 17-е заблокировано гидом
	assert.True(t, resp.Days[2].Blocked)
	assert.Equal(t, 0, resp.Days[2].AvailableSpots)

	// 18-е распродано, цена переопределена
	assert.Equal(t, 0, resp.Days[3].AvailableSpots)
	assert.Equal(t, int64(15000), resp.Days[3].PricePerParticipantCents)
}

func TestExecute_SingleDayRange(t *testing.T) {
	uc := newTestUseCase(nil, tourService())

	resp, err := uc.Execute(context.Background(), &Request{
		GuideID:   7,
		ServiceID: 3,
		From:      date(15),
		To:        date(15),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "2026-09-15", resp.Days[0].Date)
}

func TestExecute_ServiceWithoutDefaultCapacityFallsBack(t *testing.T) {
	service := tourService()
	service.DefaultCapacity = 0
	uc := newTestUseCase(nil, service)

	resp, err := uc.Execute(context.Background(), &Request{
		GuideID:   7,
		ServiceID: 3,
		From:      date(15),
		To:        date(15),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSlotCapacity, resp.Days[0].TotalSpots)
}

func TestExecute_ServiceChecks(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc := NewUseCase(
			&fakeAvailabilityRepo{},
			&fakeGuideClient{err: guideservice.ErrServiceNotFound},
			nopLogger{},
		)

		_, err := uc.Execute(context.Background(), &Request{
			GuideID: 7, ServiceID: 3, From: date(15), To: date(16),
		})
		require.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("owned by another guide", func(t *testing.T) {
		service := tourService()
		service.GuideID = 999
		uc := newTestUseCase(nil, service)

		_, err := uc.Execute(context.Background(), &Request{
			GuideID: 7, ServiceID: 3, From: date(15), To: date(16),
		})
		require.ErrorIs(t, err, ErrServiceNotOwnedByGuide)
	})

	t.Run("inactive service looks like missing", func(t *testing.T) {
		service := tourService()
		service.IsActive = false
		uc := newTestUseCase(nil, service)

		_, err := uc.Execute(context.Background(), &Request{
			GuideID: 7, ServiceID: 3, From: date(15), To: date(16),
		})
		require.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestExecute_RangeValidation(t *testing.T) {
	uc := newTestUseCase(nil, tourService())

	t.Run("to before from", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			GuideID: 7, ServiceID: 3, From: date(16), To: date(15),
		})
		require.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("zero dates", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{GuideID: 7, ServiceID: 3})
		require.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("wider than limit", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			GuideID:   7,
			ServiceID: 3,
			From:      date(1),
			To:        date(1).AddDate(0, 0, domain.MaxQueryRangeDays+1),
		})
		require.ErrorIs(t, err, ErrRangeTooWide)
	})

	t.Run("exactly at limit", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			GuideID:   7,
			ServiceID: 3,
			From:      date(1),
			To:        date(1).AddDate(0, 0, domain.MaxQueryRangeDays),
		})
		require.NoError(t, err)
	})

	t.Run("invalid ids", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			GuideID: 0, ServiceID: 3, From: date(15), To: date(16),
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
