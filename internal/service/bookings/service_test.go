package bookings

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidely/GuideBookingService/internal/domain"
	bookingRepo "github.com/guidely/GuideBookingService/internal/infra/storage/booking"
	"github.com/guidely/GuideBookingService/internal/service/bookings/models"
	"github.com/guidely/GuideBookingService/pkg/ptr"
	"github.com/guidely/GuideBookingService/pkg/types"
)

// --- Fakes ---

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	booking       *domain.Booking
	list          []*domain.Booking
	getErr        error
	transitionErr error
	confirmed     bool
	completed     bool
	disputed      bool
	gotFilter     domain.GuideBookingsFilter
	gotStatus     *domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.gotStatus = status
	return f.list, nil
}

func (f *fakeBookingRepo) GetByGuideWithFilter(ctx context.Context, filter domain.GuideBookingsFilter) ([]*domain.Booking, error) {
	f.gotFilter = filter
	return f.list, nil
}

func (f *fakeBookingRepo) Confirm(ctx context.Context, id int64) error {
	if f.transitionErr != nil {
		return f.transitionErr
	}
	f.confirmed = true
	return nil
}

func (f *fakeBookingRepo) Complete(ctx context.Context, id int64) error {
	if f.transitionErr != nil {
		return f.transitionErr
	}
	f.completed = true
	return nil
}

func (f *fakeBookingRepo) Dispute(ctx context.Context, id int64) error {
	if f.transitionErr != nil {
		return f.transitionErr
	}
	f.disputed = true
	return nil
}

type staticCoder struct{}

func (staticCoder) Code(bookingID int64) string {
	return fmt.Sprintf("code-%d", bookingID)
}

// --- Helpers ---

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              42,
		BookingNumber:   "GB-20260915-ABCD1234",
		ClientID:        101,
		GuideID:         7,
		ServiceID:       3,
		StartDate:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		EndTime:         types.TimeString("13:00"),
		Participants:    2,
		TotalPriceCents: 20000,
		DepositCents:    5000,
		AmountPaidCents: 5000,
		AmountDueCents:  15000,
		PaymentType:     domain.PaymentTypeDeposit,
		Status:          domain.StatusConfirmed,
		ClientName:      "Anna K",
		ClientEmail:     "anna@example.com",
	}
}

func newTestService(repo *fakeBookingRepo) *Service {
	return NewService(repo, staticCoder{}, nopLogger{})
}

// --- Tests ---

func TestGetByID_ClientSeesCheckInCode(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 42, 101)
	require.NoError(t, err)

	require.NotNil(t, resp.CheckInCode)
	assert.Equal(t, "code-42", *resp.CheckInCode)
	assert.Equal(t, "GB-20260915-ABCD1234", resp.BookingNumber)
}

func TestGetByID_GuideDoesNotSeeCheckInCode(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.Nil(t, resp.CheckInCode)
}

func TestGetByID_NoCodeOutsideConfirmedStatus(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeBookingRepo{booking: confirmedBooking()}
			repo.booking.Status = status
			svc := newTestService(repo)

			resp, err := svc.GetByID(context.Background(), 42, 101)
			require.NoError(t, err)
			assert.Nil(t, resp.CheckInCode)
		})
	}
}

func TestGetByID_AccessDeniedForStranger(t *testing.T) {
	repo := &fakeBookingRepo{booking: confirmedBooking()}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 42, 999)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 42, 101)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := &fakeBookingRepo{list: []*domain.Booking{confirmedBooking()}}
	svc := newTestService(repo)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 101,
		Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	require.NotNil(t, repo.gotStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.gotStatus)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 101,
		Status: ptr.Ptr("teleported"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetGuideBookings_OnlyGuideItself(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{})

	_, err := svc.GetGuideBookings(context.Background(), &models.GetGuideBookingsRequest{
		UserID:  999,
		GuideID: 7,
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetGuideBookings_FilterPassedThrough(t *testing.T) {
	repo := &fakeBookingRepo{list: []*domain.Booking{confirmedBooking()}}
	svc := newTestService(repo)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	resp, err := svc.GetGuideBookings(context.Background(), &models.GetGuideBookingsRequest{
		UserID:          7,
		GuideID:         7,
		ServiceID:       ptr.Ptr(int64(3)),
		StartDate:       &from,
		EndDate:         &to,
		Status:          ptr.Ptr("confirmed"),
		IncludeInactive: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	assert.Equal(t, int64(7), repo.gotFilter.GuideID)
	require.NotNil(t, repo.gotFilter.ServiceID)
	assert.Equal(t, int64(3), *repo.gotFilter.ServiceID)
	assert.True(t, repo.gotFilter.IncludeInactive)
	require.NotNil(t, repo.gotFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *repo.gotFilter.Status)
}

func TestConfirm(t *testing.T) {
	t.Run("guide confirms pending booking", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		repo.booking.Status = domain.StatusPending
		svc := newTestService(repo)

		require.NoError(t, svc.Confirm(context.Background(), 42, 7))
		assert.True(t, repo.confirmed)
	})

	t.Run("client cannot confirm", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		repo.booking.Status = domain.StatusPending
		svc := newTestService(repo)

		err := svc.Confirm(context.Background(), 42, 101)
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("already confirmed", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := newTestService(repo)

		err := svc.Confirm(context.Background(), 42, 7)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("concurrent transition", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		repo.booking.Status = domain.StatusPending
		repo.transitionErr = bookingRepo.ErrStatusConflict
		svc := newTestService(repo)

		err := svc.Confirm(context.Background(), 42, 7)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestComplete(t *testing.T) {
	t.Run("completes in_progress booking", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		repo.booking.Status = domain.StatusInProgress
		svc := newTestService(repo)

		require.NoError(t, svc.Complete(context.Background(), 42, 7))
		assert.True(t, repo.completed)
	})

	t.Run("cannot complete before check-in", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := newTestService(repo)

		err := svc.Complete(context.Background(), 42, 7)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestDispute(t *testing.T) {
	t.Run("client can dispute", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := newTestService(repo)

		require.NoError(t, svc.Dispute(context.Background(), 42, 101))
		assert.True(t, repo.disputed)
	})

	t.Run("guide can dispute", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := newTestService(repo)

		require.NoError(t, svc.Dispute(context.Background(), 42, 7))
		assert.True(t, repo.disputed)
	})

	t.Run("stranger cannot dispute", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		svc := newTestService(repo)

		err := svc.Dispute(context.Background(), 42, 999)
		require.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("completed booking cannot be disputed", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: confirmedBooking()}
		repo.booking.Status = domain.StatusCompleted
		svc := newTestService(repo)

		err := svc.Dispute(context.Background(), 42, 101)
		require.ErrorIs(t, err, ErrInvalidTransition)
	})
}
