package handler

import (
	"context"
	"errors"
	"go-economy-bot/common"
	"go-economy-bot/logger"
	"go-economy-bot/model"
	"go-economy-bot/service"
)

// CommandFunc runs one chat command. A returned error is reported to the
// invoking user by ErrorHandlingMiddleware.
type CommandFunc func(ctx context.Context, msg *model.Message, args []string) *common.AppError

const (
	msgInsufficient = "You don’t have enough money."
	msgNotEnough    = "Not enough money."
	msgSelfPayment  = "You can’t pay yourself."
	msgBusy         = "You already have a question waiting for an answer."
	msgTimeout      = "⏰ Time’s up!"
)

// ledgerError maps ledger failures to the replies of a given command.
func ledgerError(err error, usage, insufficient string) *common.AppError {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return common.NewAppError(common.CodeInvalidInput, usage, err)
	case errors.Is(err, service.ErrInsufficientFunds):
		return common.NewAppError(common.CodeInvalidInput, insufficient, err)
	case errors.Is(err, service.ErrSelfPayment):
		return common.NewAppError(common.CodeInvalidInput, msgSelfPayment, err)
	default:
		return common.Internal(err)
	}
}

// send delivers a reply to the channel of msg. Delivery failures are only
// logged since the user cannot be told about them either.
func send(ctx context.Context, s common.Sender, msg *model.Message, reply model.Reply) {
	if err := s.Send(ctx, msg.ChannelID, reply); err != nil {
		logger.Log.WithError(err).WithField("channel_id", msg.ChannelID).Error("Failed to send reply")
	}
}
