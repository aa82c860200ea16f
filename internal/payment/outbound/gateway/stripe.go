// Package gateway talks to the external payment provider.
package gateway

import (
	"context"
	"strconv"

	"github.com/loanforge/loanforge/internal/payment/entity"
	"github.com/loanforge/loanforge/internal/pkg/goerror"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"go.opentelemetry.io/otel/codes"
)

type Stripe struct {
	api *client.API
	ins instrument.Instrumentation
}

func NewStripe(apiKey string, ins instrument.Instrumentation) *Stripe {
	api := &client.API{}
	api.Init(apiKey, nil)

	return &Stripe{api: api, ins: ins}
}

func (s *Stripe) CreateIntent(ctx context.Context, req entity.IntentRequest) (*entity.Intent, error) {
	ctx, span := s.ins.Tracer("payment.outbound.gateway").Start(ctx, "CreateIntent")
	defer span.End()

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("transaction_id", req.TransactionID)
	params.AddMetadata("reference_id", strconv.FormatInt(req.ReferenceID, 10))

	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, goerror.NewUpstream(err, "Payment gateway rejected the request")
	}

	return &entity.Intent{
		ReferenceID:  req.ReferenceID,
		GatewayID:    pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}
