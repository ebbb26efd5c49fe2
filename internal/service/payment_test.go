package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"cab/internal/config"
	"cab/internal/domain"
)

func newTestPaymentService(finisher BookingFinisher) *PaymentService {
	return NewPaymentService(NewFareCalculator(config.DefaultFareConfig()), finisher)
}

func TestRequestPayment_ComputesFare(t *testing.T) {
	t.Parallel()

	svc := newTestPaymentService(&MockBookingFinisher{})

	// 2.5 miles at default rates: 3 + 2.5*3 = 10.5
	amount, err := svc.RequestPayment(context.Background(), testClient(), testRoute())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amount != 10.5 {
		t.Errorf("amount = %v, want 10.5", amount)
	}
}

func TestRequestPayment_ValidatesPaymentSubsetOnly(t *testing.T) {
	t.Parallel()

	svc := newTestPaymentService(&MockBookingFinisher{})
	ctx := context.Background()

	tests := []struct {
		name   string
		client *domain.Client
		route  *domain.Route
		want   string
	}{
		{"nil client", nil, testRoute(), "Client cannot be null"},
		{"nil route", testClient(), nil, "Route cannot be null"},
		{"blank name", &domain.Client{ID: 1, Name: " ", Email: "john@example.com"}, testRoute(), "Client name cannot be blank"},
		{"blank email", &domain.Client{ID: 1, Name: "John Doe", Email: ""}, testRoute(), "Client email cannot be blank"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := svc.RequestPayment(ctx, tt.client, tt.route)
			if err == nil {
				t.Fatal("expected error")
			}

			var paymentErr *InvalidPaymentError
			if !errors.As(err, &paymentErr) {
				t.Fatalf("expected *InvalidPaymentError, got %T", err)
			}
			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}

	// Full booking validation is NOT repeated: a non-positive client ID
	// passes the payment subset.
	client := testClient()
	client.ID = 0
	if _, err := svc.RequestPayment(ctx, client, testRoute()); err != nil {
		t.Errorf("payment subset should not check client ID, got %v", err)
	}
}

func TestRequestPayment_WrapsFareError(t *testing.T) {
	t.Parallel()

	svc := newTestPaymentService(&MockBookingFinisher{})

	route := testRoute()
	route.DistanceMiles = -1

	_, err := svc.RequestPayment(context.Background(), testClient(), route)
	if err == nil {
		t.Fatal("expected error for negative distance")
	}

	var processErr *PaymentProcessError
	if !errors.As(err, &processErr) {
		t.Fatalf("expected *PaymentProcessError, got %T", err)
	}

	var fareErr *FareCalculationError
	if !errors.As(err, &fareErr) {
		t.Error("wrapped FareCalculationError should be reachable via errors.As")
	}
}

func TestRequestPayment_NonFiniteDistanceFails(t *testing.T) {
	t.Parallel()

	svc := newTestPaymentService(&MockBookingFinisher{})

	route := testRoute()
	route.DistanceMiles = math.NaN()

	amount, err := svc.RequestPayment(context.Background(), testClient(), route)
	if err == nil {
		t.Fatalf("expected error for NaN distance, got amount %v", amount)
	}

	var processErr *PaymentProcessError
	if !errors.As(err, &processErr) {
		t.Fatalf("expected *PaymentProcessError, got %T", err)
	}
	var fareErr *FareCalculationError
	if !errors.As(err, &fareErr) {
		t.Error("wrapped FareCalculationError should be reachable via errors.As")
	}
}

func TestPaymentConfirmation_NonFiniteDistanceNeverAccepts(t *testing.T) {
	t.Parallel()

	// A NaN fare compares false against every amount, so without the
	// fare guard any submitted amount would sail through.
	finisher := &MockBookingFinisher{}
	svc := newTestPaymentService(finisher)
	ctx := context.Background()

	route := testRoute()
	route.DistanceMiles = math.NaN()

	for _, amount := range []float64{0.02, 10.5, 1e9} {
		err := svc.PaymentConfirmation(ctx, testClient(), route, amount, "4111-1111-1111-1111")
		if err == nil {
			t.Errorf("amount %v accepted against a NaN-distance route", amount)
			continue
		}
		var processErr *PaymentProcessError
		if !errors.As(err, &processErr) {
			t.Errorf("amount %v: expected *PaymentProcessError, got %T", amount, err)
		}
	}

	if finisher.FinishCallCount != 0 {
		t.Errorf("booking completed %d times despite a NaN fare", finisher.FinishCallCount)
	}
}

func TestRequestPayment_NonPositiveFareFails(t *testing.T) {
	t.Parallel()

	// A zeroed rate table computes a zero fare; that is a
	// misconfiguration, not a free trip.
	svc := NewPaymentService(
		NewFareCalculator(config.FareConfig{BookingFee: 0, PerMileRate: 0}),
		&MockBookingFinisher{},
	)

	_, err := svc.RequestPayment(context.Background(), testClient(), testRoute())
	if err == nil {
		t.Fatal("expected error for non-positive fare")
	}

	var processErr *PaymentProcessError
	if !errors.As(err, &processErr) {
		t.Fatalf("expected *PaymentProcessError, got %T", err)
	}
	if !strings.Contains(err.Error(), "Invalid fare calculated") {
		t.Errorf("error %q should mention the invalid fare", err.Error())
	}
}

func TestPaymentConfirmation_SuccessCompletesBooking(t *testing.T) {
	t.Parallel()

	// Wire the real booking workflow so confirmation drives the
	// ACTIVE -> COMPLETED transition end to end.
	repo := NewMockBookingRepository()
	bookingSvc := newTestBookingService(repo, nil)
	svc := NewPaymentService(NewFareCalculator(config.DefaultFareConfig()), bookingSvc)
	ctx := context.Background()

	booked, err := bookingSvc.BookCab(ctx, testClient(), testRoute())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = svc.PaymentConfirmation(ctx, testClient(), testRoute(), 10.5, "4111-1111-1111-1111")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := repo.GetBooking(booked.ID)
	if stored.Status != domain.BookingStatusCompleted {
		t.Errorf("booking status = %s, want %s", stored.Status, domain.BookingStatusCompleted)
	}
}

func TestPaymentConfirmation_AmountChecks(t *testing.T) {
	t.Parallel()

	finisher := &MockBookingFinisher{}
	svc := newTestPaymentService(finisher)
	ctx := context.Background()
	card := "4111-1111-1111-1111"

	// Within the 1-cent tolerance.
	if err := svc.PaymentConfirmation(ctx, testClient(), testRoute(), 10.505, card); err != nil {
		t.Errorf("amount off by 0.005 should succeed, got %v", err)
	}

	// Beyond the tolerance.
	err := svc.PaymentConfirmation(ctx, testClient(), testRoute(), 10.52, card)
	if err == nil {
		t.Fatal("amount off by 0.02 should fail")
	}
	var paymentErr *InvalidPaymentError
	if !errors.As(err, &paymentErr) {
		t.Fatalf("expected *InvalidPaymentError, got %T", err)
	}

	// Wrong amount reports both figures.
	err = svc.PaymentConfirmation(ctx, testClient(), testRoute(), 15.0, card)
	if err == nil {
		t.Fatal("expected error for wrong amount")
	}
	if !strings.Contains(err.Error(), "Expected: $10.50") {
		t.Errorf("error %q should contain expected amount", err.Error())
	}
	if !strings.Contains(err.Error(), "Received: $15.00") {
		t.Errorf("error %q should contain received amount", err.Error())
	}

	// NaN and infinities are invalid, distinctly from non-positive.
	if err := svc.PaymentConfirmation(ctx, testClient(), testRoute(), math.NaN(), card); err == nil || err.Error() != "Payment amount is invalid" {
		t.Errorf("NaN amount: got %v, want the invalid-amount message", err)
	}
	if err := svc.PaymentConfirmation(ctx, testClient(), testRoute(), math.Inf(1), card); err == nil || err.Error() != "Payment amount is invalid" {
		t.Errorf("Inf amount: got %v, want the invalid-amount message", err)
	}
	if err := svc.PaymentConfirmation(ctx, testClient(), testRoute(), 0, card); err == nil || err.Error() != "Payment amount must be positive" {
		t.Errorf("zero amount: got %v, want the positive-amount message", err)
	}
	if err := svc.PaymentConfirmation(ctx, testClient(), testRoute(), -10.5, card); err == nil || err.Error() != "Payment amount must be positive" {
		t.Errorf("negative amount: got %v, want the positive-amount message", err)
	}
}

func TestPaymentConfirmation_CardChecks(t *testing.T) {
	t.Parallel()

	svc := newTestPaymentService(&MockBookingFinisher{})
	ctx := context.Background()

	assertCardError := func(t *testing.T, err error, want string) {
		t.Helper()
		if err == nil {
			t.Fatal("expected credit card error")
		}
		var cardErr *CreditCardError
		if !errors.As(err, &cardErr) {
			t.Fatalf("expected *CreditCardError, got %T", err)
		}
		if err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
	}

	err := svc.PaymentConfirmation(ctx, testClient(), testRoute(), 10.5, "")
	assertCardError(t, err, "Credit card number cannot be null or empty")

	err = svc.PaymentConfirmation(ctx, testClient(), testRoute(), 10.5, "4111")
	assertCardError(t, err, "Invalid credit card number format")

	err = svc.PaymentConfirmation(ctx, testClient(), testRoute(), 10.5, "4111-1111-1111-111a")
	assertCardError(t, err, "Invalid credit card number format")

	noCard := testClient()
	noCard.CreditCard = ""
	err = svc.PaymentConfirmation(ctx, noCard, testRoute(), 10.5, "4111-1111-1111-1111")
	assertCardError(t, err, "Client does not have a credit card on file")

	otherCard := testClient()
	otherCard.CreditCard = "5500-0000-0000-0004"
	err = svc.PaymentConfirmation(ctx, otherCard, testRoute(), 10.5, "4111-1111-1111-1111")
	assertCardError(t, err, "Credit card number does not match card on file")
}

func TestPaymentConfirmation_NormalizesCardSeparators(t *testing.T) {
	t.Parallel()

	// Stored with dashes, submitted with spaces: equal after
	// normalization.
	svc := newTestPaymentService(&MockBookingFinisher{})

	err := svc.PaymentConfirmation(context.Background(), testClient(), testRoute(), 10.5, "4111 1111 1111 1111")
	if err != nil {
		t.Errorf("differently separated cards should match, got %v", err)
	}
}

func TestPaymentConfirmation_CompletionFailureIsProcessError(t *testing.T) {
	t.Parallel()

	finisher := &MockBookingFinisher{
		FinishError: &BookingProcessError{Msg: "Cannot finish booking: no active booking for client 1"},
	}
	svc := newTestPaymentService(finisher)

	err := svc.PaymentConfirmation(context.Background(), testClient(), testRoute(), 10.5, "4111-1111-1111-1111")
	if err == nil {
		t.Fatal("expected error when booking completion fails")
	}

	// The payment was accepted; the failure must be distinguishable
	// from a payment rejection by its kind.
	var processErr *PaymentProcessError
	if !errors.As(err, &processErr) {
		t.Fatalf("expected *PaymentProcessError, got %T", err)
	}
	if !strings.Contains(err.Error(), "Payment processed but booking completion failed:") {
		t.Errorf("error %q missing completion-failure prefix", err.Error())
	}
	if !strings.Contains(err.Error(), "no active booking for client 1") {
		t.Errorf("error %q should embed the cause verbatim", err.Error())
	}
}

func TestCanProcessPayment(t *testing.T) {
	t.Parallel()

	svc := newTestPaymentService(&MockBookingFinisher{})
	ctx := context.Background()

	if !svc.CanProcessPayment(ctx, testClient(), testRoute()) {
		t.Error("expected valid client with card on file to be processable")
	}

	if svc.CanProcessPayment(ctx, nil, testRoute()) {
		t.Error("nil client should not be processable")
	}
	if svc.CanProcessPayment(ctx, testClient(), nil) {
		t.Error("nil route should not be processable")
	}

	noCard := testClient()
	noCard.CreditCard = ""
	if svc.CanProcessPayment(ctx, noCard, testRoute()) {
		t.Error("client without a card should not be processable")
	}

	badCard := testClient()
	badCard.CreditCard = "1234"
	if svc.CanProcessPayment(ctx, badCard, testRoute()) {
		t.Error("client with a malformed card should not be processable")
	}

	blankName := testClient()
	blankName.Name = "  "
	if svc.CanProcessPayment(ctx, blankName, testRoute()) {
		t.Error("client with a blank name should not be processable")
	}

	badRoute := testRoute()
	badRoute.DistanceMiles = -1
	if svc.CanProcessPayment(ctx, testClient(), badRoute) {
		t.Error("route with a negative distance should not be processable")
	}
}

func TestPaymentSummary(t *testing.T) {
	t.Parallel()

	svc := newTestPaymentService(&MockBookingFinisher{})

	summary, err := svc.PaymentSummary(context.Background(), testClient(), testRoute())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"John Doe", "john@example.com", "$10.50", "****1111"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary %q missing %q", summary, want)
		}
	}
	if strings.Contains(summary, "4111-1111") {
		t.Errorf("summary %q leaks the full card number", summary)
	}
}

func TestPaymentSummary_RequiresCardOnFile(t *testing.T) {
	t.Parallel()

	svc := newTestPaymentService(&MockBookingFinisher{})

	noCard := testClient()
	noCard.CreditCard = ""

	_, err := svc.PaymentSummary(context.Background(), noCard, testRoute())
	if err == nil {
		t.Fatal("expected error without a card on file")
	}

	var cardErr *CreditCardError
	if !errors.As(err, &cardErr) {
		t.Fatalf("expected *CreditCardError, got %T", err)
	}
}
