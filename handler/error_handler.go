package handler

import (
	"context"
	"go-economy-bot/common"
	"go-economy-bot/model"
)

// ErrorHandlingMiddleware reports a command's error back to the user.
func ErrorHandlingMiddleware(s common.Sender, next CommandFunc) func(context.Context, *model.Message, []string) {
	return func(ctx context.Context, msg *model.Message, args []string) {
		if err := next(ctx, msg, args); err != nil {
			err.Send(ctx, s, msg)
		}
	}
}
