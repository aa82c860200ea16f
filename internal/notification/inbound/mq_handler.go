package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/loanforge/loanforge/internal/notification/usecase"
	"github.com/loanforge/loanforge/internal/pkg/instrument"
	"github.com/loanforge/loanforge/internal/pkg/messaging"
	"github.com/loanforge/loanforge/internal/pkg/uid"
	"github.com/loanforge/loanforge/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type uc interface {
	ConsumePasscodeIssued(ctx context.Context, in usecase.ConsumePasscodeIssuedInput) error
}

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) PasscodeIssuedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PasscodeIssuedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: passcode issued notification", "transaction_id", msg.Key())

	var payload event.PasscodeIssuedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of passcode issued notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumePasscodeIssued(ctx, usecase.ConsumePasscodeIssuedInput{
		TransactionID: payload.TransactionID,
		Recipient:     payload.Recipient,
		Channel:       payload.Channel,
		Code:          payload.Code,
		ExpiresAtUnix: payload.ExpiresAtUnix,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume passcode issued", "transaction_id", payload.TransactionID, "error", err)
		return err
	}

	return nil
}
