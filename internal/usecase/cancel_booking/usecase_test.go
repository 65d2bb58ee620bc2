package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidely/GuideBookingService/internal/domain"
	bookingRepo "github.com/guidely/GuideBookingService/internal/infra/storage/booking"
	policyRepo "github.com/guidely/GuideBookingService/internal/infra/storage/policy"
	"github.com/guidely/GuideBookingService/internal/integrations/guideservice"
	"github.com/guidely/GuideBookingService/pkg/types"
)

// --- Fakes ---

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	cancelErr error
	cancelled bool
	gotFee    int64
	gotRefund int64
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, feeCents, refundCents int64) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = true
	f.gotFee = feeCents
	f.gotRefund = refundCents
	return nil
}

type fakeAvailabilityRepo struct {
	released int
}

func (f *fakeAvailabilityRepo) Release(ctx context.Context, guideID, serviceID int64, date string, participants int) error {
	f.released += participants
	return nil
}

type fakePolicyRepo struct {
	policy *domain.CancellationPolicy
	err    error
}

func (f *fakePolicyRepo) GetByGuide(ctx context.Context, guideID int64) (*domain.CancellationPolicy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.policy, nil
}

type fakeGuideClient struct {
	guide *guideservice.Guide
	err   error
}

func (f *fakeGuideClient) GetGuide(ctx context.Context, guideID int64) (*guideservice.Guide, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.guide, nil
}

type fakePayments struct {
	refunded int64
	partial  int64
	err      error
	calls    int
}

func (f *fakePayments) Refund(ctx context.Context, booking *domain.Booking, amountCents int64) (int64, error) {
	f.calls++
	if f.err != nil {
		return f.partial, f.err
	}
	f.refunded = amountCents
	return amountCents, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// --- Helpers ---

// Слот стартует 2026-09-15 в 10:00; "сейчас" выставляется в тестах
var slotStart = time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              42,
		BookingNumber:   "GB-20260915-ABCD1234",
		ClientID:        101,
		GuideID:         7,
		ServiceID:       3,
		StartDate:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		Participants:    2,
		TotalPriceCents: 25000,
		DepositCents:    25000,
		AmountPaidCents: 25000,
		AmountDueCents:  0,
		PaymentType:     domain.PaymentTypeFull,
		Status:          domain.StatusConfirmed,
	}
}

type fixture struct {
	bookings     *fakeBookingRepo
	availability *fakeAvailabilityRepo
	policies     *fakePolicyRepo
	guides       *fakeGuideClient
	payments     *fakePayments
}

func newFixture() *fixture {
	return &fixture{
		bookings:     &fakeBookingRepo{booking: confirmedBooking()},
		availability: &fakeAvailabilityRepo{},
		policies:     &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound},
		guides: &fakeGuideClient{
			guide: &guideservice.Guide{
				ID:             7,
				PolicyKind:     "moderate",
				DepositPercent: 25,
				IsActive:       true,
			},
		},
		payments: &fakePayments{},
	}
}

func (f *fixture) useCase(now time.Time) *UseCase {
	uc := NewUseCase(f.bookings, f.availability, f.policies, f.guides, f.payments, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

// --- Tests ---

func TestExecute_ModeratePolicy_PartialRefund(t *testing.T) {
	f := newFixture()
	// 50 часов до старта: у moderate это тир 50% возврата
	uc := f.useCase(slotStart.Add(-50 * time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{UserID: 101, BookingID: 42})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.InDelta(t, 50.0, resp.HoursBeforeTrip, 0.01)
	assert.Equal(t, int64(25000), resp.AmountPaidCents)
	assert.Equal(t, int64(12500), resp.RefundCents)
	assert.Equal(t, int64(12500), resp.FeeCents)

	assert.True(t, f.bookings.cancelled)
	assert.Equal(t, int64(12500), f.bookings.gotRefund)
	assert.Equal(t, 2, f.availability.released)
	assert.Equal(t, int64(12500), f.payments.refunded)
}

func TestExecute_FlexiblePolicy_FullRefund(t *testing.T) {
	f := newFixture()
	f.guides.guide.PolicyKind = "flexible"
	uc := f.useCase(slotStart.Add(-72 * time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{UserID: 101, BookingID: 42})
	require.NoError(t, err)

	assert.Equal(t, int64(25000), resp.RefundCents)
	assert.Equal(t, int64(0), resp.FeeCents)
}

func TestExecute_ZeroRefund_SkipsProcessor(t *testing.T) {
	f := newFixture()
	// 10 часов до старта: у moderate это тир 0% возврата
	uc := f.useCase(slotStart.Add(-10 * time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{UserID: 101, BookingID: 42})
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.RefundCents)
	assert.Equal(t, int64(25000), resp.FeeCents)
	assert.Equal(t, 0, f.payments.calls)
	assert.True(t, f.bookings.cancelled)
}

func TestExecute_CustomPolicyOverridesProfileKind(t *testing.T) {
	f := newFixture()
	f.policies.err = nil
	f.policies.policy = &domain.CancellationPolicy{
		Kind: domain.PolicyFlexible,
		Tiers: []domain.PolicyTier{
			{MinHoursBefore: 100, RefundPercent: 100},
			{MinHoursBefore: 0, RefundPercent: 10},
		},
	}
	uc := f.useCase(slotStart.Add(-50 * time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{UserID: 101, BookingID: 42})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), resp.RefundCents)
}

func TestExecute_GuideInitiated_FullRefundNoFee(t *testing.T) {
	f := newFixture()
	// Отмена гидом за 2 часа до старта: политика не применяется
	uc := f.useCase(slotStart.Add(-2 * time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, BookingID: 42})
	require.NoError(t, err)

	assert.Equal(t, int64(25000), resp.RefundCents)
	assert.Equal(t, int64(0), resp.FeeCents)
	assert.Equal(t, int64(25000), f.payments.refunded)
}

func TestExecute_AccessDenied(t *testing.T) {
	f := newFixture()
	uc := f.useCase(slotStart.Add(-50 * time.Hour))

	_, err := uc.Execute(context.Background(), &Request{UserID: 999, BookingID: 42})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, f.bookings.cancelled)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	f := newFixture()
	f.bookings.booking.Status = domain.StatusCancelled
	uc := f.useCase(slotStart.Add(-50 * time.Hour))

	_, err := uc.Execute(context.Background(), &Request{UserID: 101, BookingID: 42})
	require.ErrorIs(t, err, ErrAlreadyCancelled)
}

func TestExecute_TerminalStatusesCannotCancel(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusDisputed,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()
			f.bookings.booking.Status = status
			uc := f.useCase(slotStart.Add(-50 * time.Hour))

			_, err := uc.Execute(context.Background(), &Request{UserID: 101, BookingID: 42})
			require.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestExecute_ConcurrentCancel_LoserGetsAlreadyCancelled(t *testing.T) {
	f := newFixture()
	f.bookings.cancelErr = bookingRepo.ErrStatusConflict
	uc := f.useCase(slotStart.Add(-50 * time.Hour))

	_, err := uc.Execute(context.Background(), &Request{UserID: 101, BookingID: 42})
	require.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.Equal(t, 0, f.payments.calls)
}

func TestExecute_BookingNotFound(t *testing.T) {
	f := newFixture()
	f.bookings.getErr = bookingRepo.ErrBookingNotFound
	uc := f.useCase(slotStart.Add(-50 * time.Hour))

	_, err := uc.Execute(context.Background(), &Request{UserID: 101, BookingID: 42})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_UnknownPolicyKind(t *testing.T) {
	f := newFixture()
	f.guides.guide.PolicyKind = "velvet"
	uc := f.useCase(slotStart.Add(-50 * time.Hour))

	_, err := uc.Execute(context.Background(), &Request{UserID: 101, BookingID: 42})
	require.ErrorIs(t, err, ErrUnknownPolicy)
	assert.False(t, f.bookings.cancelled)
}

func TestExecute_RefundFailure_Escalates(t *testing.T) {
	f := newFixture()
	f.payments.err = errors.New("processor down")
	f.payments.partial = 5000
	uc := f.useCase(slotStart.Add(-50 * time.Hour))

	_, err := uc.Execute(context.Background(), &Request{UserID: 101, BookingID: 42})
	require.ErrorIs(t, err, ErrRefundFailed)
	assert.Contains(t, err.Error(), "refunded 5000 of 12500")

	// Отмена уже состоялась: статус и места не откатываются
	assert.True(t, f.bookings.cancelled)
	assert.Equal(t, 2, f.availability.released)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()
	uc := f.useCase(slotStart)

	_, err := uc.Execute(context.Background(), &Request{UserID: 0, BookingID: 42})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 101, BookingID: -1})
	require.ErrorIs(t, err, ErrInvalidInput)
}
