package complete_payment

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/storage/kv"
	sessionRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TourBookingService/internal/payment"
	sessionService "github.com/m04kA/SMC-TourBookingService/internal/service/session"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
)

type stubProvider struct {
	captureErr error
	captures   int
	discards   int

	ready atomic.Bool
	loads atomic.Int32
}

func (p *stubProvider) Name() string      { return "paypal" }
func (p *stubProvider) Signature() string { return "sdk:paypal" }
func (p *stubProvider) IsReady() bool     { return p.ready.Load() }
func (p *stubProvider) Teardown()         { p.ready.Store(false) }

func (p *stubProvider) Load(ctx context.Context) error {
	p.loads.Add(1)
	p.ready.Store(true)
	return nil
}

func (p *stubProvider) RenderInto(ctx context.Context, mountID string, checkout domain.Checkout) (*domain.Widget, error) {
	return &domain.Widget{
		Provider:  "paypal",
		Method:    checkout.Method,
		MountID:   mountID,
		Reference: "ORDER-1",
		Amount:    checkout.Amount,
		Currency:  checkout.Currency,
		AttemptID: checkout.AttemptID,
	}, nil
}

func (p *stubProvider) Capture(ctx context.Context, widget *domain.Widget) (*domain.PaymentResult, error) {
	p.captures++
	if !p.ready.Load() {
		return nil, errors.New("sdk not loaded")
	}
	if p.captureErr != nil {
		return nil, p.captureErr
	}
	return &domain.PaymentResult{
		Provider:      "paypal",
		TransactionID: "CAPTURE-42",
		PayerEmail:    "jane@example.com",
		PayerName:     "Jane Doe",
		Amount:        widget.Amount,
		Currency:      widget.Currency,
	}, nil
}

func (p *stubProvider) Discard(ctx context.Context, widget *domain.Widget) error {
	p.discards++
	return nil
}

type stubCatalog struct{}

func (stubCatalog) GetTour(ctx context.Context, tourID int64) (*domain.Tour, error) {
	return &domain.Tour{ID: tourID, Title: "Island hopping", Price: 50, MaxGuests: 4}, nil
}

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
}

type fakeBookings struct {
	err      error
	requests []*bookingapi.CreateBookingRequest
	ctxErr   error
}

func (b *fakeBookings) CreateBooking(ctx context.Context, body *bookingapi.CreateBookingRequest) (*bookingapi.Booking, error) {
	b.requests = append(b.requests, body)
	b.ctxErr = ctx.Err()
	if b.err != nil {
		return nil, b.err
	}
	return &bookingapi.Booking{ID: 501, TourID: body.TourID, Name: body.Name, Email: body.Email}, nil
}

type fakeLedger struct {
	err     error
	records []*domain.Reconciliation
}

func (l *fakeLedger) Create(ctx context.Context, rec *domain.Reconciliation) (*domain.Reconciliation, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.records = append(l.records, rec)
	stored := *rec
	stored.ID = int64(len(l.records))
	stored.Status = domain.ReconciliationPending
	return &stored, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []notifier.Event
}

func (p *fakePublisher) Publish(ctx context.Context, event notifier.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
	return nil
}

type recordingMetrics struct {
	outcomes []string
}

func (m *recordingMetrics) ObservePaymentOutcome(provider, outcome string) {
	m.outcomes = append(m.outcomes, provider+":"+outcome)
}

type fixture struct {
	uc        *UseCase
	sessions  *sessionService.Service
	mounts    *payment.MountRegistry
	loader    *payment.Loader
	provider  *stubProvider
	bookings  *fakeBookings
	ledger    *fakeLedger
	publisher *fakePublisher
	metrics   *recordingMetrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.NewNop()
	f := &fixture{
		mounts:    payment.NewMountRegistry(log),
		provider:  &stubProvider{},
		bookings:  &fakeBookings{},
		ledger:    &fakeLedger{},
		publisher: &fakePublisher{},
		metrics:   &recordingMetrics{},
	}

	f.loader = payment.NewLoader(f.provider, time.Second, nil, log)

	repo := sessionRepo.NewRepository(kv.NewMemoryStore(), "booking:session:")
	f.sessions = sessionService.NewService(repo, stubCatalog{}, f.mounts, fixedClock{}, nil, log, sessionService.Options{Currency: "EUR"})
	f.uc = NewUseCase(f.sessions, f.mounts, payment.NewLoaders(f.loader), f.bookings, f.ledger, f.publisher, f.metrics, fixedClock{}, log,
		Options{SupportContact: "support@example.com"})

	return f
}

// startPayment доводит сессию до отрисованного виджета
func (f *fixture) startPayment(t *testing.T, tripType domain.TripType) string {
	t.Helper()
	ctx := context.Background()

	view, err := f.sessions.Mount(ctx, "tab-1", 7)
	require.NoError(t, err)
	_, err = f.sessions.UpdateDraft(ctx, "tab-1", domain.BookingDraft{
		TripType:      tripType,
		DepartureDate: "2025-06-01",
		ReturnDate:    "2025-06-05",
		Guests:        2,
	})
	require.NoError(t, err)
	_, err = f.sessions.Proceed(ctx, "tab-1")
	require.NoError(t, err)

	require.NoError(t, f.loader.EnsureReady(ctx))
	_, err = f.mounts.Render(ctx, "tab-1", payment.DefaultMountID, f.provider, domain.Checkout{
		SessionID: "tab-1",
		AttemptID: view.AttemptID,
		Method:    domain.PaymentMethodPayPal,
		Amount:    200,
		Currency:  "EUR",
	})
	require.NoError(t, err)

	return view.AttemptID
}

func TestUseCase_Approve_Completed(t *testing.T) {
	f := newFixture(t)
	attemptID := f.startPayment(t, domain.TripTypeRoundTrip)

	resp, err := f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1", AttemptID: attemptID})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeCompleted, resp.Outcome)
	assert.Equal(t, "CAPTURE-42", resp.TransactionID)
	require.NotNil(t, resp.BookingID)
	assert.Equal(t, int64(501), *resp.BookingID)
	assert.Empty(t, resp.SupportContact)

	require.Len(t, f.bookings.requests, 1)
	body := f.bookings.requests[0]
	assert.Equal(t, int64(7), body.TourID)
	assert.Equal(t, "Jane Doe", body.Name)
	assert.Equal(t, "jane@example.com", body.Email)
	assert.Equal(t, "2025-06-01", body.DepartureDate)
	require.NotNil(t, body.ReturnDate)
	assert.Equal(t, "2025-06-05", *body.ReturnDate)
	assert.Equal(t, 2, body.Guests)
	assert.Equal(t, "paypal", body.PaymentMethod)
	require.NotNil(t, body.PayPal)
	assert.Equal(t, "CAPTURE-42", body.PayPal.TransactionID)
	assert.Nil(t, body.Stripe)

	// сессия очищена
	_, err = f.sessions.Get(context.Background(), "tab-1")
	assert.ErrorIs(t, err, sessionService.ErrSessionNotFound)
	assert.Equal(t, 0, f.mounts.Count("tab-1"))

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, notifier.EventBookingCompleted, f.publisher.events[0].Type)
	assert.Empty(t, f.ledger.records)
	assert.Equal(t, []string{"paypal:completed"}, f.metrics.outcomes)
}

func TestUseCase_Approve_OneWayHasNoReturnDate(t *testing.T) {
	f := newFixture(t)
	f.startPayment(t, domain.TripTypeOneWay)

	_, err := f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1"})
	require.NoError(t, err)

	require.Len(t, f.bookings.requests, 1)
	assert.Nil(t, f.bookings.requests[0].ReturnDate)
}

func TestUseCase_Approve_CaptureFailed(t *testing.T) {
	f := newFixture(t)
	attemptID := f.startPayment(t, domain.TripTypeRoundTrip)
	f.provider.captureErr = errors.New("instrument declined")

	_, err := f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1", AttemptID: attemptID})
	require.ErrorIs(t, err, ErrPaymentFailed)

	// бронирование не отправлялось, состояние не тронуто
	assert.Empty(t, f.bookings.requests)
	assert.Empty(t, f.publisher.events)

	view, err := f.sessions.Get(context.Background(), "tab-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PhasePayment, view.Phase)
	assert.Equal(t, 2, view.Draft.Guests)
	assert.Equal(t, 1, f.mounts.Count("tab-1"))
	assert.Equal(t, []string{"paypal:capture_failed"}, f.metrics.outcomes)
}

func TestUseCase_Approve_RetryAfterCaptureFailure(t *testing.T) {
	f := newFixture(t)
	attemptID := f.startPayment(t, domain.TripTypeOneWay)
	f.provider.captureErr = errors.New("token rejected")

	_, err := f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1", AttemptID: attemptID})
	require.ErrorIs(t, err, ErrPaymentFailed)

	// провайдер сбросил SDK после отказа
	f.loader.Teardown()
	f.provider.captureErr = nil

	resp, err := f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1", AttemptID: attemptID})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, resp.Outcome)
	assert.Equal(t, 2, f.provider.captures)
}

func TestUseCase_Approve_ReloadsSDKUnloadedAfterRender(t *testing.T) {
	f := newFixture(t)
	attemptID := f.startPayment(t, domain.TripTypeOneWay)

	// Retry в другой вкладке выгрузил общий SDK
	f.loader.Teardown()
	require.False(t, f.provider.IsReady())

	resp, err := f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1", AttemptID: attemptID})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeCompleted, resp.Outcome)
	assert.Equal(t, "CAPTURE-42", resp.TransactionID)
	assert.Equal(t, int32(2), f.provider.loads.Load())
	assert.Equal(t, 1, f.provider.captures)
}

func TestUseCase_Approve_BookingPending(t *testing.T) {
	f := newFixture(t)
	attemptID := f.startPayment(t, domain.TripTypeRoundTrip)
	f.bookings.err = errors.New("bookingapi: booking rejected: status 500: db down")

	resp, err := f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1", AttemptID: attemptID})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeBookingPending, resp.Outcome)
	assert.NotEqual(t, domain.OutcomeCompleted, resp.Outcome)
	assert.Equal(t, "CAPTURE-42", resp.TransactionID)
	assert.Equal(t, "support@example.com", resp.SupportContact)
	assert.Contains(t, resp.Message, "CAPTURE-42")
	assert.Nil(t, resp.BookingID)
	require.NotNil(t, resp.ReconciliationID)

	require.Len(t, f.ledger.records, 1)
	rec := f.ledger.records[0]
	assert.Equal(t, "CAPTURE-42", rec.TransactionID)
	assert.Equal(t, attemptID, rec.AttemptID)
	assert.Equal(t, int64(7), rec.TourID)
	assert.Equal(t, 200.0, rec.Amount)
	assert.Contains(t, rec.FailureMessage, "db down")
	assert.Contains(t, string(rec.BookingPayload), `"transactionId":"CAPTURE-42"`)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, notifier.EventBookingReconciliationRequired, f.publisher.events[0].Type)

	// черновик очищен и в этом исходе
	_, err = f.sessions.Get(context.Background(), "tab-1")
	assert.ErrorIs(t, err, sessionService.ErrSessionNotFound)
	assert.Equal(t, []string{"paypal:payment_succeeded_booking_pending"}, f.metrics.outcomes)
}

func TestUseCase_Approve_BookingPendingWithoutLedger(t *testing.T) {
	f := newFixture(t)
	f.uc.ledger = nil
	f.startPayment(t, domain.TripTypeOneWay)
	f.bookings.err = errors.New("timeout")

	resp, err := f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1"})
	require.NoError(t, err)

	assert.Equal(t, domain.OutcomeBookingPending, resp.Outcome)
	assert.Nil(t, resp.ReconciliationID)
	require.Len(t, f.publisher.events, 1)
}

func TestUseCase_Approve_SubmitsAfterClientGone(t *testing.T) {
	f := newFixture(t)
	f.startPayment(t, domain.TripTypeOneWay)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// клиент отключился сразу после capture
	f.uc.bookings = &cancellingBookings{cancel: cancel, next: f.bookings}

	resp, err := f.uc.Approve(ctx, &ApproveRequest{SessionID: "tab-1"})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, resp.Outcome)
	assert.NoError(t, f.bookings.ctxErr)
}

type cancellingBookings struct {
	cancel context.CancelFunc
	next   *fakeBookings
}

func (b *cancellingBookings) CreateBooking(ctx context.Context, body *bookingapi.CreateBookingRequest) (*bookingapi.Booking, error) {
	b.cancel()
	return b.next.CreateBooking(ctx, body)
}

func TestUseCase_Approve_Twice(t *testing.T) {
	f := newFixture(t)
	attemptID := f.startPayment(t, domain.TripTypeOneWay)
	f.bookings.err = errors.New("unavailable")

	_, err := f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1", AttemptID: attemptID})
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1", AttemptID: attemptID})
	assert.ErrorIs(t, err, ErrSessionGone)
	assert.Equal(t, 1, f.provider.captures)
	assert.Len(t, f.bookings.requests, 1)
}

func TestUseCase_Approve_StaleAttempt(t *testing.T) {
	f := newFixture(t)
	f.startPayment(t, domain.TripTypeOneWay)

	_, err := f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1", AttemptID: "old-attempt"})
	assert.ErrorIs(t, err, ErrSessionGone)
	assert.Equal(t, 0, f.provider.captures)
}

func TestUseCase_Approve_WrongPhase(t *testing.T) {
	f := newFixture(t)

	_, err := f.sessions.Mount(context.Background(), "tab-1", 7)
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1"})
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestUseCase_Approve_WidgetNotMounted(t *testing.T) {
	f := newFixture(t)
	f.startPayment(t, domain.TripTypeOneWay)
	f.mounts.Release("tab-1", payment.DefaultMountID)

	_, err := f.uc.Approve(context.Background(), &ApproveRequest{SessionID: "tab-1"})
	assert.ErrorIs(t, err, ErrWidgetNotMounted)
	assert.Equal(t, 0, f.provider.captures)
}

func TestUseCase_Approve_EmptySession(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Approve(context.Background(), &ApproveRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_CancelPayment(t *testing.T) {
	tests := []struct {
		name        string
		reason      string
		wantMetrics string
	}{
		{name: "cancelled by user", reason: ReasonCancelled, wantMetrics: "paypal:cancelled"},
		{name: "default reason", reason: "", wantMetrics: "paypal:cancelled"},
		{name: "provider error", reason: ReasonError, wantMetrics: "paypal:provider_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.startPayment(t, domain.TripTypeRoundTrip)

			resp, err := f.uc.CancelPayment(context.Background(), &CancelRequest{SessionID: "tab-1", Reason: tt.reason})
			require.NoError(t, err)

			assert.Equal(t, domain.PhasePayment, resp.Phase)
			assert.Equal(t, "2025-06-01", resp.Draft.DepartureDate)
			assert.Equal(t, 2, resp.Draft.Guests)

			view, err := f.sessions.Get(context.Background(), "tab-1")
			require.NoError(t, err)
			assert.Equal(t, domain.PhasePayment, view.Phase)
			assert.Empty(t, f.bookings.requests)
			assert.Equal(t, []string{tt.wantMetrics}, f.metrics.outcomes)
		})
	}
}

func TestUseCase_CancelPayment_CustomMount(t *testing.T) {
	f := newFixture(t)
	attemptID := f.startPayment(t, domain.TripTypeOneWay)
	f.mounts.Release("tab-1", payment.DefaultMountID)

	_, err := f.mounts.Render(context.Background(), "tab-1", "checkout-modal", f.provider, domain.Checkout{
		SessionID: "tab-1",
		AttemptID: attemptID,
		Method:    domain.PaymentMethodPayPal,
		Amount:    100,
		Currency:  "EUR",
	})
	require.NoError(t, err)

	_, err = f.uc.CancelPayment(context.Background(), &CancelRequest{SessionID: "tab-1", MountID: "checkout-modal"})
	require.NoError(t, err)
	assert.Equal(t, []string{"paypal:cancelled"}, f.metrics.outcomes)
}

func TestUseCase_CancelPayment_UnknownReason(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CancelPayment(context.Background(), &CancelRequest{SessionID: "tab-1", Reason: "boom"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
