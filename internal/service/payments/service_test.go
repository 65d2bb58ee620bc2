package payments

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guidely/GuideBookingService/internal/domain"
	paymentRepo "github.com/guidely/GuideBookingService/internal/infra/storage/payment"
	"github.com/guidely/GuideBookingService/internal/integrations/processor"
)

// --- Fakes ---

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// fakePaymentRepo хранит записи в памяти и повторяет семантику уникального
// idempotency key настоящего репозитория
type fakePaymentRepo struct {
	records map[string]*domain.PaymentRecord
	nextID  int64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{records: make(map[string]*domain.PaymentRecord)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	if _, ok := f.records[record.IdempotencyKey]; ok {
		return nil, paymentRepo.ErrDuplicateKey
	}
	f.nextID++
	stored := *record
	stored.ID = f.nextID
	f.records[record.IdempotencyKey] = &stored
	return &stored, nil
}

func (f *fakePaymentRepo) GetByBookingAndLeg(ctx context.Context, bookingID int64, leg domain.PaymentLeg) (*domain.PaymentRecord, error) {
	key := domain.PaymentIdempotencyKey(bookingID, leg)
	record, ok := f.records[key]
	if !ok {
		return nil, paymentRepo.ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakePaymentRepo) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.PaymentRecord, error) {
	var out []*domain.PaymentRecord
	// Депозит всегда раньше остатка: ID растет монотонно
	for _, leg := range []domain.PaymentLeg{domain.LegDeposit, domain.LegRemainder} {
		if record, ok := f.records[domain.PaymentIdempotencyKey(bookingID, leg)]; ok {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) MarkCaptured(ctx context.Context, id int64, intentID string) error {
	record := f.byID(id)
	record.Status = domain.PaymentCaptured
	record.IntentID = intentID
	return nil
}

func (f *fakePaymentRepo) MarkFailed(ctx context.Context, id int64) error {
	f.byID(id).Status = domain.PaymentFailed
	return nil
}

func (f *fakePaymentRepo) AddRefund(ctx context.Context, id int64, amountCents int64) error {
	record := f.byID(id)
	if record.RefundedCents+amountCents > record.AmountCents {
		return paymentRepo.ErrRefundExceedsCaptured
	}
	record.RefundedCents += amountCents
	if record.RefundedCents == record.AmountCents {
		record.Status = domain.PaymentRefunded
	}
	return nil
}

func (f *fakePaymentRepo) byID(id int64) *domain.PaymentRecord {
	for _, record := range f.records {
		if record.ID == id {
			return record
		}
	}
	panic(fmt.Sprintf("no record with id %d", id))
}

type fakeBookingRepo struct {
	paid int64
	due  int64
}

func (f *fakeBookingRepo) UpdatePaymentAmounts(ctx context.Context, id int64, paidCents, dueCents int64) error {
	f.paid = paidCents
	f.due = dueCents
	return nil
}

type fakeProcessor struct {
	intentErr   error
	refundErr   error
	intents     []*processor.IntentRequest
	refunds     []*processor.RefundRequest
	intentCount int
}

func (f *fakeProcessor) CreateIntent(ctx context.Context, req *processor.IntentRequest) (*processor.Intent, error) {
	f.intentCount++
	f.intents = append(f.intents, req)
	if f.intentErr != nil {
		return nil, f.intentErr
	}
	return &processor.Intent{
		ID:     fmt.Sprintf("pi_%d", f.intentCount),
		Status: processor.IntentStatusSucceeded,
	}, nil
}

func (f *fakeProcessor) Refund(ctx context.Context, req *processor.RefundRequest) (*processor.RefundResult, error) {
	f.refunds = append(f.refunds, req)
	if f.refundErr != nil {
		return nil, f.refundErr
	}
	return &processor.RefundResult{
		ID:     fmt.Sprintf("re_%d", len(f.refunds)),
		Status: processor.RefundStatusSucceeded,
	}, nil
}

// --- Helpers ---

func depositBooking() *domain.Booking {
	return &domain.Booking{
		ID:              42,
		BookingNumber:   "GB-20260915-ABCD1234",
		TotalPriceCents: 20000,
		DepositCents:    5000,
		AmountPaidCents: 0,
		AmountDueCents:  20000,
		PaymentType:     domain.PaymentTypeDeposit,
		Status:          domain.StatusPending,
	}
}

func newTestService() (*Service, *fakePaymentRepo, *fakeBookingRepo, *fakeProcessor) {
	repo := newFakePaymentRepo()
	bookings := &fakeBookingRepo{}
	proc := &fakeProcessor{}
	return NewService(repo, bookings, proc, nopLogger{}), repo, bookings, proc
}

// --- Tests ---

func TestAuthorizeDeposit_Success(t *testing.T) {
	svc, repo, bookings, proc := newTestService()
	booking := depositBooking()

	require.NoError(t, svc.AuthorizeDeposit(context.Background(), booking))

	require.Len(t, proc.intents, 1)
	assert.Equal(t, int64(5000), proc.intents[0].AmountCents)
	assert.Equal(t, "booking-42-deposit", proc.intents[0].IdempotencyKey)

	record, err := repo.GetByBookingAndLeg(context.Background(), 42, domain.LegDeposit)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCaptured, record.Status)

	// Суммы бронирования обновлены и в репозитории, и в структуре
	assert.Equal(t, int64(5000), bookings.paid)
	assert.Equal(t, int64(15000), bookings.due)
	assert.Equal(t, int64(5000), booking.AmountPaidCents)
	assert.Equal(t, int64(15000), booking.AmountDueCents)
}

func TestAuthorizeDeposit_RetryIsNoOp(t *testing.T) {
	svc, _, _, proc := newTestService()
	booking := depositBooking()

	require.NoError(t, svc.AuthorizeDeposit(context.Background(), booking))
	require.NoError(t, svc.AuthorizeDeposit(context.Background(), booking))

	// Второго обращения к процессору не было
	assert.Equal(t, 1, proc.intentCount)
	assert.Equal(t, int64(5000), booking.AmountPaidCents)
}

func TestAuthorizeDeposit_ZeroDeposit_Skips(t *testing.T) {
	svc, _, _, proc := newTestService()
	booking := depositBooking()
	booking.DepositCents = 0

	require.NoError(t, svc.AuthorizeDeposit(context.Background(), booking))
	assert.Equal(t, 0, proc.intentCount)
}

func TestAuthorizeDeposit_Declined_MarksFailed(t *testing.T) {
	svc, repo, _, proc := newTestService()
	proc.intentErr = processor.ErrAuthorizationDeclined
	booking := depositBooking()

	err := svc.AuthorizeDeposit(context.Background(), booking)
	require.ErrorIs(t, err, ErrPaymentDeclined)

	record, getErr := repo.GetByBookingAndLeg(context.Background(), 42, domain.LegDeposit)
	require.NoError(t, getErr)
	assert.Equal(t, domain.PaymentFailed, record.Status)
	assert.Equal(t, int64(0), booking.AmountPaidCents)
}

func TestAuthorizeDeposit_ProcessorDown(t *testing.T) {
	svc, _, _, proc := newTestService()
	proc.intentErr = processor.ErrProcessorUnavailable
	booking := depositBooking()

	err := svc.AuthorizeDeposit(context.Background(), booking)
	require.ErrorIs(t, err, ErrProcessorUnavailable)
}

func TestCaptureRemainder_Success(t *testing.T) {
	svc, _, _, proc := newTestService()
	booking := depositBooking()

	require.NoError(t, svc.AuthorizeDeposit(context.Background(), booking))
	require.NoError(t, svc.CaptureRemainder(context.Background(), booking))

	require.Len(t, proc.intents, 2)
	assert.Equal(t, int64(15000), proc.intents[1].AmountCents)
	assert.Equal(t, "booking-42-remainder", proc.intents[1].IdempotencyKey)

	assert.Equal(t, int64(20000), booking.AmountPaidCents)
	assert.Equal(t, int64(0), booking.AmountDueCents)
}

func TestCaptureRemainder_NothingDue_Skips(t *testing.T) {
	svc, _, _, proc := newTestService()
	booking := depositBooking()
	booking.AmountPaidCents = 20000
	booking.AmountDueCents = 0

	require.NoError(t, svc.CaptureRemainder(context.Background(), booking))
	assert.Equal(t, 0, proc.intentCount)
}

func TestCaptureRemainder_FailedDepositRecordDoesNotBlockRetry(t *testing.T) {
	svc, _, _, proc := newTestService()
	booking := depositBooking()

	// Первая попытка депозита отклонена
	proc.intentErr = processor.ErrAuthorizationDeclined
	require.ErrorIs(t, svc.AuthorizeDeposit(context.Background(), booking), ErrPaymentDeclined)

	// Повторная попытка после устранения проблемы проходит по той же записи
	proc.intentErr = nil
	require.NoError(t, svc.AuthorizeDeposit(context.Background(), booking))
	assert.Equal(t, int64(5000), booking.AmountPaidCents)
}

func TestRefund_FullRefundAcrossBothLegs(t *testing.T) {
	svc, repo, _, proc := newTestService()
	booking := depositBooking()
	require.NoError(t, svc.AuthorizeDeposit(context.Background(), booking))
	require.NoError(t, svc.CaptureRemainder(context.Background(), booking))

	refunded, err := svc.Refund(context.Background(), booking, 20000)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), refunded)

	// Сначала возвращается остаток, потом депозит
	require.Len(t, proc.refunds, 2)
	assert.Equal(t, int64(15000), proc.refunds[0].AmountCents)
	assert.Equal(t, "booking-42-remainder-refund", proc.refunds[0].IdempotencyKey)
	assert.Equal(t, int64(5000), proc.refunds[1].AmountCents)

	deposit, err := repo.GetByBookingAndLeg(context.Background(), 42, domain.LegDeposit)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, deposit.Status)
}

func TestRefund_PartialRefundTakesRemainderFirst(t *testing.T) {
	svc, repo, _, proc := newTestService()
	booking := depositBooking()
	require.NoError(t, svc.AuthorizeDeposit(context.Background(), booking))
	require.NoError(t, svc.CaptureRemainder(context.Background(), booking))

	refunded, err := svc.Refund(context.Background(), booking, 10000)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), refunded)

	require.Len(t, proc.refunds, 1)
	assert.Equal(t, int64(10000), proc.refunds[0].AmountCents)

	// Депозит не тронут
	deposit, err := repo.GetByBookingAndLeg(context.Background(), 42, domain.LegDeposit)
	require.NoError(t, err)
	assert.Equal(t, int64(0), deposit.RefundedCents)
}

func TestRefund_NeverExceedsCaptured(t *testing.T) {
	svc, _, _, _ := newTestService()
	booking := depositBooking()
	require.NoError(t, svc.AuthorizeDeposit(context.Background(), booking))

	// Запрошено больше, чем списано: возвращается только депозит
	refunded, err := svc.Refund(context.Background(), booking, 999999)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), refunded)
}

func TestRefund_NothingCaptured(t *testing.T) {
	svc, _, _, _ := newTestService()
	booking := depositBooking()

	_, err := svc.Refund(context.Background(), booking, 5000)
	require.ErrorIs(t, err, ErrNothingCaptured)
}

func TestRefund_ZeroAmount_IsNoOp(t *testing.T) {
	svc, _, _, proc := newTestService()
	booking := depositBooking()

	refunded, err := svc.Refund(context.Background(), booking, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), refunded)
	assert.Empty(t, proc.refunds)
}

func TestRefund_ProcessorDown_ReturnsPartialProgress(t *testing.T) {
	svc, _, _, proc := newTestService()
	booking := depositBooking()
	require.NoError(t, svc.AuthorizeDeposit(context.Background(), booking))
	require.NoError(t, svc.CaptureRemainder(context.Background(), booking))

	// Первый возврат (остаток) проходит, на втором процессор падает
	refundedOnce, err := svc.Refund(context.Background(), booking, 15000)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), refundedOnce)

	proc.refundErr = processor.ErrProcessorUnavailable
	refunded, err := svc.Refund(context.Background(), booking, 5000)
	require.ErrorIs(t, err, ErrProcessorUnavailable)
	assert.Equal(t, int64(0), refunded)
}
