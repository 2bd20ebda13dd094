package handler

import (
	"context"
	"fmt"
	"go-economy-bot/common"
	"go-economy-bot/model"
	"go-economy-bot/service"
)

// EarnHandler serves the commands that create money or items from nothing.
type EarnHandler struct {
	ledger *service.LedgerService
	games  *service.GameService
	sender common.Sender
}

func NewEarnHandler(ledger *service.LedgerService, games *service.GameService, sender common.Sender) *EarnHandler {
	return &EarnHandler{ledger: ledger, games: games, sender: sender}
}

func (h *EarnHandler) Beg(ctx context.Context, msg *model.Message, _ []string) *common.AppError {
	outcome := h.games.Beg()
	if _, err := h.ledger.Credit(ctx, msg.Author.ID, outcome.Reward); err != nil {
		return common.Internal(err)
	}

	send(ctx, h.sender, msg, model.EmbedReply(model.Embed{
		Description: outcome.Text,
		Color:       model.ColorBlue,
	}))
	return nil
}

func (h *EarnHandler) Work(ctx context.Context, msg *model.Message, _ []string) *common.AppError {
	job, earnings := h.games.Work()
	if _, err := h.ledger.Credit(ctx, msg.Author.ID, earnings); err != nil {
		return common.Internal(err)
	}

	send(ctx, h.sender, msg, model.EmbedReply(model.Embed{
		Description: fmt.Sprintf("👷 You worked as a **%s** and earned %d 💸", job, earnings),
		Color:       model.ColorYellow,
	}))
	return nil
}

// Fish credits the catch's value and stores one unit of it.
func (h *EarnHandler) Fish(ctx context.Context, msg *model.Message, _ []string) *common.AppError {
	catch := h.games.Fish()
	if _, err := h.ledger.Credit(ctx, msg.Author.ID, catch.Value); err != nil {
		return common.Internal(err)
	}
	if _, err := h.ledger.AddItem(ctx, msg.Author.ID, catch.Name, 1); err != nil {
		return common.Internal(err)
	}

	send(ctx, h.sender, msg, model.EmbedReply(model.Embed{
		Title:       "🎣 Fishing Result",
		Description: fmt.Sprintf("You caught a %s worth %d 💸", catch.Name, catch.Value),
		Color:       model.ColorAqua,
	}))
	return nil
}

// Punch yields loot named after the target on success.
func (h *EarnHandler) Punch(ctx context.Context, msg *model.Message, _ []string) *common.AppError {
	target, landed := h.games.Punch()
	if !landed {
		send(ctx, h.sender, msg, model.Text("😵 You missed the punch..."))
		return nil
	}

	if _, err := h.ledger.AddItem(ctx, msg.Author.ID, service.LootName(target), 1); err != nil {
		return common.Internal(err)
	}

	send(ctx, h.sender, msg, model.Text(fmt.Sprintf("🥊 You punched a **%s** and got loot!", target)))
	return nil
}
