package service

import (
	"context"
	"fmt"
	"math"
	"time"

	appErrors "github.com/nikhilarora068/pharmacare-backend/internal/errors"
	"github.com/nikhilarora068/pharmacare-backend/internal/models"
	stripeClient "github.com/nikhilarora068/pharmacare-backend/pkg/stripe"
)

// PaymentCard is the normalized card form handed to a processor.
type PaymentCard struct {
	Name   string
	Number string
	Expiry string
	CVC    string
}

// PaymentProcessor settles an order. Implementations must respect ctx
// cancellation; the checkout path bounds them with a timeout.
type PaymentProcessor interface {
	Process(ctx context.Context, order *models.Order, card *PaymentCard) error
}

// SimulatedProcessor resolves after a fixed delay, mirroring the mock payment
// step in the storefront. Err, when set, is returned after the delay to
// exercise the failure path.
type SimulatedProcessor struct {
	Delay time.Duration
	Err   error
}

func NewSimulatedProcessor(delay time.Duration) *SimulatedProcessor {
	return &SimulatedProcessor{Delay: delay}
}

func (p *SimulatedProcessor) Process(ctx context.Context, _ *models.Order, _ *PaymentCard) error {

	select {
	case <-time.After(p.Delay):
	case <-ctx.Done():
		return appErrors.ProcessingFailureError("Payment processing timed out").WithError(ctx.Err())
	}

	if p.Err != nil {
		return appErrors.ProcessingFailureError("Payment processing failed").WithError(p.Err)
	}

	return nil
}

// stripeProcessor charges the order total through Stripe.
type stripeProcessor struct {
	client   stripeClient.Client
	currency string
}

func NewStripeProcessor(client stripeClient.Client, currency string) PaymentProcessor {
	return &stripeProcessor{client: client, currency: currency}
}

func (p *stripeProcessor) Process(ctx context.Context, order *models.Order, _ *PaymentCard) error {

	amount := int64(math.Round(order.Total * 100))
	description := fmt.Sprintf("PharmaCare order %s", order.ID)

	intent, err := p.client.CreatePaymentIntent(ctx, amount, p.currency, description)
	if err != nil {
		return appErrors.ProcessingFailureError("Failed to create payment intent").WithError(err)
	}

	if _, err := p.client.ConfirmPaymentIntent(ctx, intent.ID); err != nil {
		return appErrors.ProcessingFailureError("Failed to confirm payment").WithError(err)
	}

	return nil
}
