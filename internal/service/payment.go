package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"cab/internal/domain"
)

const (
	// paymentToleranceDollars absorbs floating-point noise when
	// comparing a submitted amount to the computed fare.
	paymentToleranceDollars = 0.01

	// Accepted normalized card number lengths.
	minCardDigits = 13
	maxCardDigits = 19
)

// BookingFinisher is the narrow booking contract the payment workflow
// needs: completing a booking after payment is confirmed.
type BookingFinisher interface {
	FinishBookingCab(ctx context.Context, client *domain.Client, route *domain.Route) (*domain.Booking, error)
}

// Ensure BookingService satisfies the payment workflow's contract.
var _ BookingFinisher = (*BookingService)(nil)

// PaymentService verifies fares and credit cards, and completes the
// booking once payment is confirmed.
type PaymentService struct {
	fares    *FareCalculator
	bookings BookingFinisher
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(fares *FareCalculator, bookings BookingFinisher) *PaymentService {
	return &PaymentService{
		fares:    fares,
		bookings: bookings,
	}
}

// RequestPayment returns the amount owed for the route. Client name and
// email must be non-blank; full booking validation is not repeated
// here. A fare that computes to zero or less indicates a misconfigured
// rate table and is a process error, not a free trip.
func (s *PaymentService) RequestPayment(ctx context.Context, client *domain.Client, route *domain.Route) (float64, error) {
	if err := checkPaymentParty(client, route); err != nil {
		return 0, err
	}

	fare, err := s.fares.Fare(route.DistanceMiles)
	if err != nil {
		return 0, newPaymentProcessError(err, "Cannot request payment: %v", err)
	}

	if fare <= 0 {
		return 0, newPaymentProcessError(nil, "Invalid fare calculated: %v", fare)
	}

	return fare, nil
}

// PaymentConfirmation verifies the submitted amount and card against
// the expected fare and the client's card on file, then completes the
// booking.
//
// Checks run in order and fail fast: client/route presence, amount
// sanity, card presence and shape, card-on-file match, fare match
// (1-cent tolerance). A failure completing the booking after the
// payment checks pass returns *PaymentProcessError — the payment
// itself was accepted, and callers must be able to tell that apart
// from a payment rejection.
func (s *PaymentService) PaymentConfirmation(ctx context.Context, client *domain.Client, route *domain.Route, paymentAmount float64, cardNumber string) error {
	if client == nil {
		return &InvalidPaymentError{Detail: "Client cannot be null"}
	}
	if route == nil {
		return &InvalidPaymentError{Detail: "Route cannot be null"}
	}

	if math.IsNaN(paymentAmount) || math.IsInf(paymentAmount, 0) {
		return &InvalidPaymentError{Detail: "Payment amount is invalid"}
	}
	if paymentAmount <= 0 {
		return &InvalidPaymentError{Detail: "Payment amount must be positive"}
	}

	if strings.TrimSpace(cardNumber) == "" {
		return &CreditCardError{Detail: "Credit card number cannot be null or empty"}
	}

	submitted := normalizeCardNumber(cardNumber)
	if !isValidCardFormat(submitted) {
		return &CreditCardError{Detail: "Invalid credit card number format"}
	}

	if strings.TrimSpace(client.CreditCard) == "" {
		return &CreditCardError{Detail: "Client does not have a credit card on file"}
	}

	onFile := normalizeCardNumber(client.CreditCard)
	if submitted != onFile {
		return &CreditCardError{Detail: "Credit card number does not match card on file"}
	}

	expected, err := s.fares.Fare(route.DistanceMiles)
	if err != nil {
		return newPaymentProcessError(err, "Cannot confirm payment: %v", err)
	}
	if expected <= 0 {
		return newPaymentProcessError(nil, "Invalid fare calculated: %v", expected)
	}

	if math.Abs(paymentAmount-expected) > paymentToleranceDollars {
		return &InvalidPaymentError{
			Detail: fmt.Sprintf("Incorrect payment amount. Expected: $%.2f Received: $%.2f", expected, paymentAmount),
		}
	}

	if _, err := s.bookings.FinishBookingCab(ctx, client, route); err != nil {
		return newPaymentProcessError(err, "Payment processed but booking completion failed: %v", err)
	}

	return nil
}

// CanProcessPayment reports whether a payment could be taken for the
// pair: client basic validity, a usable card on file, and a positive
// computable fare. It never returns an error.
func (s *PaymentService) CanProcessPayment(ctx context.Context, client *domain.Client, route *domain.Route) bool {
	if checkPaymentParty(client, route) != nil {
		return false
	}

	if strings.TrimSpace(client.CreditCard) == "" {
		return false
	}
	if !isValidCardFormat(normalizeCardNumber(client.CreditCard)) {
		return false
	}

	fare, err := s.fares.Fare(route.DistanceMiles)
	return err == nil && fare > 0
}

// PaymentSummary returns a recap of the payment due: masked card,
// client identity and formatted fare.
func (s *PaymentService) PaymentSummary(ctx context.Context, client *domain.Client, route *domain.Route) (string, error) {
	fare, err := s.RequestPayment(ctx, client, route)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(client.CreditCard) == "" {
		return "", &CreditCardError{Detail: "Client does not have a credit card on file"}
	}

	return fmt.Sprintf(
		"Payment of $%.2f due from %s (%s) on card %s",
		fare, client.Name, client.Email, maskCardNumber(client.CreditCard),
	), nil
}

// checkPaymentParty runs the payment-specific validation subset:
// presence of both parties and a non-blank client name/email.
func checkPaymentParty(client *domain.Client, route *domain.Route) error {
	if client == nil {
		return &InvalidPaymentError{Detail: "Client cannot be null"}
	}
	if route == nil {
		return &InvalidPaymentError{Detail: "Route cannot be null"}
	}
	if strings.TrimSpace(client.Name) == "" {
		return &InvalidPaymentError{Detail: "Client name cannot be blank"}
	}
	if strings.TrimSpace(client.Email) == "" {
		return &InvalidPaymentError{Detail: "Client email cannot be blank"}
	}
	return nil
}

// normalizeCardNumber strips spaces and dashes so differently formatted
// card numbers compare equal.
func normalizeCardNumber(cardNumber string) string {
	replacer := strings.NewReplacer(" ", "", "-", "")
	return replacer.Replace(strings.TrimSpace(cardNumber))
}

// isValidCardFormat checks a normalized card number: digits only,
// within the conventional 13-19 length bound.
func isValidCardFormat(normalized string) bool {
	if len(normalized) < minCardDigits || len(normalized) > maxCardDigits {
		return false
	}
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// maskCardNumber renders a card number as "****" plus its last four
// digits.
func maskCardNumber(cardNumber string) string {
	normalized := normalizeCardNumber(cardNumber)
	if len(normalized) <= 4 {
		return "****" + normalized
	}
	return "****" + normalized[len(normalized)-4:]
}
