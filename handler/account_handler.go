package handler

import (
	"context"
	"fmt"
	"go-economy-bot/common"
	"go-economy-bot/logger"
	"go-economy-bot/model"
	"go-economy-bot/service"
	"strings"

	"github.com/sirupsen/logrus"
)

// AccountHandler serves the commands that read or move existing money.
type AccountHandler struct {
	ledger *service.LedgerService
	sender common.Sender
	prefix string
}

func NewAccountHandler(ledger *service.LedgerService, sender common.Sender, prefix string) *AccountHandler {
	return &AccountHandler{ledger: ledger, sender: sender, prefix: prefix}
}

// Balance reports the wallet and the bank of the caller.
func (h *AccountHandler) Balance(ctx context.Context, msg *model.Message, _ []string) *common.AppError {
	account, err := h.ledger.GetAccount(ctx, msg.Author.ID)
	if err != nil {
		return common.Internal(err)
	}

	send(ctx, h.sender, msg, model.EmbedReply(model.Embed{
		Title: fmt.Sprintf("%s's Balance", msg.Author.Username),
		Color: model.ColorGreen,
		Fields: []model.EmbedField{
			{Name: "Wallet", Value: fmt.Sprintf("%d 💸", account.Balance), Inline: true},
			{Name: "Bank", Value: fmt.Sprintf("%d 🏦", account.Bank), Inline: true},
		},
	}))
	return nil
}

// Deposit moves money from the wallet into the bank.
func (h *AccountHandler) Deposit(ctx context.Context, msg *model.Message, args []string) *common.AppError {
	req := model.AmountRequest{Amount: common.ParseAmount(args, 0)}
	if err := common.Validate(&req, "Invalid amount."); err != nil {
		return err
	}

	if _, err := h.ledger.Deposit(ctx, msg.Author.ID, req.Amount); err != nil {
		return ledgerError(err, "Invalid amount.", "Invalid amount.")
	}

	send(ctx, h.sender, msg, model.EmbedReply(model.Embed{
		Description: fmt.Sprintf("🏦 Deposited %d 💸", req.Amount),
		Color:       model.ColorBlue,
	}))
	return nil
}

// Withdraw moves money from the bank into the wallet.
func (h *AccountHandler) Withdraw(ctx context.Context, msg *model.Message, args []string) *common.AppError {
	req := model.AmountRequest{Amount: common.ParseAmount(args, 0)}
	if err := common.Validate(&req, "Invalid amount."); err != nil {
		return err
	}

	if _, err := h.ledger.Withdraw(ctx, msg.Author.ID, req.Amount); err != nil {
		return ledgerError(err, "Invalid amount.", "Invalid amount.")
	}

	send(ctx, h.sender, msg, model.EmbedReply(model.Embed{
		Description: fmt.Sprintf("💰 Withdrew %d 💸", req.Amount),
		Color:       model.ColorBlue,
	}))
	return nil
}

// Pay transfers wallet money to the first mentioned user: pay @user <amount>.
func (h *AccountHandler) Pay(ctx context.Context, msg *model.Message, args []string) *common.AppError {
	usage := fmt.Sprintf("Usage: %spay @user <amount>", h.prefix)

	recipient, _ := msg.FirstMention()
	req := model.PayRequest{RecipientID: recipient.ID, Amount: common.ParseAmount(args, 1)}
	if err := common.Validate(&req, usage); err != nil {
		return err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"from_account_id": msg.Author.ID,
		"to_account_id":   req.RecipientID,
		"amount":          req.Amount,
	})
	log.Info("Pay request received")

	if _, _, err := h.ledger.Pay(ctx, msg.Author.ID, req.RecipientID, req.Amount); err != nil {
		return ledgerError(err, usage, msgInsufficient)
	}

	send(ctx, h.sender, msg, model.EmbedReply(model.Embed{
		Description: fmt.Sprintf("💸 You paid %s %d 💸", recipient.Username, req.Amount),
		Color:       model.ColorYellow,
	}))
	return nil
}

// Inventory lists owned items.
func (h *AccountHandler) Inventory(ctx context.Context, msg *model.Message, _ []string) *common.AppError {
	account, err := h.ledger.GetAccount(ctx, msg.Author.ID)
	if err != nil {
		return common.Internal(err)
	}

	desc := "Empty"
	if items := account.Inventory.Items(); len(items) > 0 {
		lines := make([]string, 0, len(items))
		for _, item := range items {
			lines = append(lines, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		}
		desc = strings.Join(lines, "\n")
	}

	send(ctx, h.sender, msg, model.EmbedReply(model.Embed{
		Title:       fmt.Sprintf("%s's Inventory", msg.Author.Username),
		Description: desc,
		Color:       model.ColorPurple,
	}))
	return nil
}

// Daily credits the fixed daily reward. There is no cooldown.
func (h *AccountHandler) Daily(ctx context.Context, msg *model.Message, _ []string) *common.AppError {
	if _, err := h.ledger.Credit(ctx, msg.Author.ID, service.DailyReward); err != nil {
		return common.Internal(err)
	}

	send(ctx, h.sender, msg, model.EmbedReply(model.Embed{
		Description: fmt.Sprintf("🌞 You claimed your daily reward of %d 💸!", service.DailyReward),
		Color:       model.ColorGold,
	}))
	return nil
}
