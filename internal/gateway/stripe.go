package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/stripe/stripe-go/v74"
	stripecl "github.com/stripe/stripe-go/v74/client"
	"go.uber.org/zap"

	"github.com/speaksmart/speaksmart-api/pkg/config"
	appErrors "github.com/speaksmart/speaksmart-api/pkg/errors"
)

// Reserver pre-authorizes a charge with the upstream payment gateway and
// returns the opaque secret the client uses to finalize it.
type Reserver interface {
	Reserve(ctx context.Context, amountMinorUnits int64) (string, error)
}

const defaultReserveTimeout = 15 * time.Second

// StripeGateway reserves charges through Stripe payment intents.
type StripeGateway struct {
	api      *stripecl.API
	currency string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewStripeGateway constructs the adapter from configuration.
func NewStripeGateway(cfg config.StripeConfig, logger *zap.Logger) *StripeGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultReserveTimeout
	}
	api := &stripecl.API{}
	api.Init(cfg.APIKey, nil)
	return &StripeGateway{api: api, currency: cfg.Currency, timeout: timeout, logger: logger}
}

// Reserve creates a card payment intent for the amount in minor units and
// returns its client secret. Gateway rejections and timeouts surface as
// PAYMENT_GATEWAY_ERROR; they are never retried here.
func (g *StripeGateway) Reserve(ctx context.Context, amountMinorUnits int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amountMinorUnits),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			g.logger.Warn("payment reservation timed out", zap.Error(err))
			return "", appErrors.Wrap(err, appErrors.ErrPaymentGateway.Code, appErrors.ErrPaymentGateway.Status, "payment reservation timed out")
		}

		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			g.logger.Warn("payment reservation rejected",
				zap.String("stripe_code", string(stripeErr.Code)),
				zap.Error(err),
			)
			return "", appErrors.Wrap(err, appErrors.ErrPaymentGateway.Code, appErrors.ErrPaymentGateway.Status, stripeErr.Msg)
		}

		return "", appErrors.Wrap(err, appErrors.ErrPaymentGateway.Code, appErrors.ErrPaymentGateway.Status, appErrors.ErrPaymentGateway.Message)
	}

	return intent.ClientSecret, nil
}
