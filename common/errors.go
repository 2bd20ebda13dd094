package common

import (
	"context"
	"go-economy-bot/logger"
	"go-economy-bot/model"

	"github.com/sirupsen/logrus"
)

// Sender is the outbound half of the chat gateway.
type Sender interface {
	Send(ctx context.Context, channelID string, reply model.Reply) error
}

type ErrorCode int

const (
	CodeInvalidInput ErrorCode = iota + 1
	CodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case CodeInvalidInput:
		return "invalid_input"
	case CodeInternal:
		return "internal"
	}
	return "unknown"
}

// GenericFailureMessage is shown to the user when a command fails for a
// reason they cannot fix, such as a storage error.
const GenericFailureMessage = "⚠️ Something went wrong, please try again later."

type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// InvalidInput is a validation failure reported back to the user verbatim.
func InvalidInput(message string) *AppError {
	return NewAppError(CodeInvalidInput, message, nil)
}

// Internal wraps an unexpected failure behind the generic message.
func Internal(err error) *AppError {
	return NewAppError(CodeInternal, GenericFailureMessage, err)
}

// Send logs the internal error, if any, and replies to msg with the message.
func (e *AppError) Send(ctx context.Context, s Sender, msg *model.Message) {
	log := logger.Log.WithFields(logrus.Fields{
		"code":       e.Code.String(),
		"channel_id": msg.ChannelID,
		"author_id":  msg.Author.ID,
	})
	if e.Err != nil {
		log.WithField("internal_error", e.Err.Error()).Error(e.Message)
	} else {
		log.Debug(e.Message)
	}

	reply := model.Reply{Content: e.Message, ReplyTo: msg.ID}
	if err := s.Send(ctx, msg.ChannelID, reply); err != nil {
		log.WithError(err).Error("Failed to send error reply")
	}
}
