package handler

import (
	"context"
	"errors"
	"fmt"
	"go-economy-bot/common"
	"go-economy-bot/model"
	"go-economy-bot/service"
	"go-economy-bot/waiter"
	"time"
)

// QuizHandler serves the commands that pose a prompt and wait for the
// caller's answer in the same channel.
type QuizHandler struct {
	ledger  *service.LedgerService
	games   *service.GameService
	sender  common.Sender
	waiter  *waiter.Registry
	timeout time.Duration
}

func NewQuizHandler(ledger *service.LedgerService, games *service.GameService, sender common.Sender, w *waiter.Registry, timeout time.Duration) *QuizHandler {
	return &QuizHandler{ledger: ledger, games: games, sender: sender, waiter: w, timeout: timeout}
}

func (h *QuizHandler) Trivia(ctx context.Context, msg *model.Message, _ []string) *common.AppError {
	q := h.games.Trivia()
	return h.ask(ctx, msg, "❓ "+q.Prompt, q.Answer, service.TriviaReward, "❌ Wrong!", msgTimeout)
}

func (h *QuizHandler) Jumble(ctx context.Context, msg *model.Message, _ []string) *common.AppError {
	word, scrambled := h.games.Jumble()
	reveal := fmt.Sprintf("The word was **%s**", word)
	return h.ask(ctx, msg,
		fmt.Sprintf("🔀 Unscramble: **%s**", scrambled),
		word, service.JumbleReward,
		"❌ Wrong! "+reveal, msgTimeout+" "+reveal)
}

// ask listens for the caller's next message, posts prompt and pays reward
// on an exact case-insensitive match.
func (h *QuizHandler) ask(ctx context.Context, msg *model.Message, prompt, answer string, reward int64, wrong, expired string) *common.AppError {
	sub, err := h.waiter.Subscribe(msg.ChannelID, msg.Author.ID)
	if err != nil {
		return common.InvalidInput(msgBusy)
	}

	send(ctx, h.sender, msg, model.Text(prompt))

	reply, err := sub.Await(ctx, h.timeout)
	switch {
	case errors.Is(err, waiter.ErrTimeout):
		send(ctx, h.sender, msg, model.Text(expired))
		return nil
	case err != nil:
		// shutting down
		return nil
	}

	if !service.CheckAnswer(reply.Content, answer) {
		send(ctx, h.sender, msg, model.Text(wrong))
		return nil
	}

	if _, err := h.ledger.Credit(ctx, msg.Author.ID, reward); err != nil {
		return common.Internal(err)
	}
	send(ctx, h.sender, msg, model.Text(fmt.Sprintf("✅ Correct! +%d 💸", reward)))
	return nil
}
