package handler

import (
	"context"
	"fmt"
	"go-economy-bot/common"
	"go-economy-bot/logger"
	"go-economy-bot/model"
	"go-economy-bot/service"

	"github.com/sirupsen/logrus"
)

// GameHandler serves the wagering commands. Each checks the stake against
// the wallet before anything is drawn.
type GameHandler struct {
	ledger *service.LedgerService
	games  *service.GameService
	sender common.Sender
	prefix string
}

func NewGameHandler(ledger *service.LedgerService, games *service.GameService, sender common.Sender, prefix string) *GameHandler {
	return &GameHandler{ledger: ledger, games: games, sender: sender, prefix: prefix}
}

func (h *GameHandler) Gamble(ctx context.Context, msg *model.Message, args []string) *common.AppError {
	const usage = "Enter a valid amount to gamble."

	req := model.AmountRequest{Amount: common.ParseAmount(args, 0)}
	if err := common.Validate(&req, usage); err != nil {
		return err
	}
	if _, err := h.ledger.CheckStake(ctx, msg.Author.ID, req.Amount); err != nil {
		return ledgerError(err, usage, msgInsufficient)
	}

	win, delta := h.games.Gamble(req.Amount)
	if err := h.settle(ctx, msg, "gamble", req.Amount, delta, usage, msgInsufficient); err != nil {
		return err
	}

	embed := model.Embed{Description: fmt.Sprintf("💀 You lost %d 💸...", req.Amount), Color: model.ColorRed}
	if win {
		embed = model.Embed{Description: fmt.Sprintf("🎉 You won %d 💸!", req.Amount), Color: model.ColorGreen}
	}
	send(ctx, h.sender, msg, model.EmbedReply(embed))
	return nil
}

func (h *GameHandler) Slots(ctx context.Context, msg *model.Message, args []string) *common.AppError {
	const usage = "Enter a valid amount."

	req := model.AmountRequest{Amount: common.ParseAmount(args, 0)}
	if err := common.Validate(&req, usage); err != nil {
		return err
	}
	if _, err := h.ledger.CheckStake(ctx, msg.Author.ID, req.Amount); err != nil {
		return ledgerError(err, usage, msgNotEnough)
	}

	roll := h.games.Slots()
	payout := roll.Payout(req.Amount)
	if err := h.settle(ctx, msg, "slots", req.Amount, payout, usage, msgNotEnough); err != nil {
		return err
	}

	embed := model.Embed{Description: fmt.Sprintf("%s\n💀 You lost %d 💸", roll, req.Amount), Color: model.ColorRed}
	if roll.Win() {
		embed = model.Embed{Description: fmt.Sprintf("%s\n🎉 You won %d 💸!", roll, payout), Color: model.ColorGreen}
	}
	send(ctx, h.sender, msg, model.EmbedReply(embed))
	return nil
}

// Coinflip: coinflip <amount> <heads|tails>.
func (h *GameHandler) Coinflip(ctx context.Context, msg *model.Message, args []string) *common.AppError {
	usage := fmt.Sprintf("Usage: %scoinflip <amount> <heads/tails>", h.prefix)

	guess, _ := service.ParseGuess(common.Arg(args, 1))
	req := model.CoinflipRequest{Amount: common.ParseAmount(args, 0), Guess: guess}
	if err := common.Validate(&req, usage); err != nil {
		return err
	}
	if _, err := h.ledger.CheckStake(ctx, msg.Author.ID, req.Amount); err != nil {
		return ledgerError(err, usage, msgNotEnough)
	}

	flip, win, delta := h.games.Coinflip(req.Guess, req.Amount)
	if err := h.settle(ctx, msg, "coinflip", req.Amount, delta, usage, msgNotEnough); err != nil {
		return err
	}

	embed := model.Embed{Description: fmt.Sprintf("🪙 It was **%s**! You lost %d 💸...", flip, req.Amount), Color: model.ColorRed}
	if win {
		embed = model.Embed{Description: fmt.Sprintf("🪙 It was **%s**! You won %d 💸!", flip, req.Amount), Color: model.ColorGreen}
	}
	send(ctx, h.sender, msg, model.EmbedReply(embed))
	return nil
}

func (h *GameHandler) settle(ctx context.Context, msg *model.Message, game string, stake, delta int64, usage, insufficient string) *common.AppError {
	logger.Log.WithFields(logrus.Fields{
		"account_id": msg.Author.ID,
		"game":       game,
		"stake":      stake,
		"delta":      delta,
	}).Info("Wager drawn")

	if _, err := h.ledger.Settle(ctx, msg.Author.ID, stake, delta); err != nil {
		return ledgerError(err, usage, insufficient)
	}
	return nil
}
