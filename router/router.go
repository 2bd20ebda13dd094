package router

import (
	"context"
	"fmt"
	"go-economy-bot/common"
	"go-economy-bot/handler"
	"go-economy-bot/logger"
	"go-economy-bot/model"
	"go-economy-bot/waiter"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Command is a named chat command.
type Command struct {
	Name    string
	Aliases []string
	Usage   string
	Run     handler.CommandFunc
}

// Router turns inbound messages into command invocations.
type Router struct {
	prefix   string
	sender   common.Sender
	waiter   *waiter.Registry
	commands []Command
	lookup   map[string]func(context.Context, *model.Message, []string)
}

// Handlers groups the command handlers the router dispatches to.
type Handlers struct {
	Account *handler.AccountHandler
	Earn    *handler.EarnHandler
	Game    *handler.GameHandler
	Quiz    *handler.QuizHandler
}

// NewRouter builds a router with the full command set registered.
func NewRouter(prefix string, sender common.Sender, w *waiter.Registry, h Handlers) *Router {
	r := &Router{
		prefix: prefix,
		sender: sender,
		waiter: w,
		lookup: make(map[string]func(context.Context, *model.Message, []string)),
	}

	r.Register(Command{Name: "balance", Aliases: []string{"bal"}, Usage: "show your wallet and bank", Run: h.Account.Balance})
	r.Register(Command{Name: "deposit", Aliases: []string{"dep"}, Usage: "<amount> move money to the bank", Run: h.Account.Deposit})
	r.Register(Command{Name: "withdraw", Aliases: []string{"with"}, Usage: "<amount> move money to the wallet", Run: h.Account.Withdraw})
	r.Register(Command{Name: "pay", Usage: "@user <amount> give money to someone", Run: h.Account.Pay})
	r.Register(Command{Name: "inventory", Aliases: []string{"inv"}, Usage: "list your items", Run: h.Account.Inventory})
	r.Register(Command{Name: "daily", Usage: "claim the daily reward", Run: h.Account.Daily})
	r.Register(Command{Name: "beg", Usage: "ask strangers for money", Run: h.Earn.Beg})
	r.Register(Command{Name: "work", Usage: "work a shift", Run: h.Earn.Work})
	r.Register(Command{Name: "fish", Usage: "go fishing", Run: h.Earn.Fish})
	r.Register(Command{Name: "punch", Usage: "punch something for loot", Run: h.Earn.Punch})
	r.Register(Command{Name: "gamble", Usage: "<amount> double or nothing", Run: h.Game.Gamble})
	r.Register(Command{Name: "slots", Usage: "<amount> three of a kind pays 3x", Run: h.Game.Slots})
	r.Register(Command{Name: "coinflip", Aliases: []string{"cf"}, Usage: "<amount> <heads/tails> call the flip", Run: h.Game.Coinflip})
	r.Register(Command{Name: "trivia", Usage: "answer a question", Run: h.Quiz.Trivia})
	r.Register(Command{Name: "jumble", Usage: "unscramble a word", Run: h.Quiz.Jumble})
	r.Register(Command{Name: "help", Usage: "list commands", Run: r.help})

	return r
}

// Register adds cmd under its name and aliases, replacing earlier bindings.
func (r *Router) Register(cmd Command) {
	r.commands = append(r.commands, cmd)
	run := handler.ErrorHandlingMiddleware(r.sender, cmd.Run)
	r.lookup[strings.ToLower(cmd.Name)] = run
	for _, alias := range cmd.Aliases {
		r.lookup[strings.ToLower(alias)] = run
	}
}

// Parse splits content into a lower-cased command name and its arguments.
// ok is false when content does not start with prefix or names nothing.
func Parse(prefix, content string) (name string, args []string, ok bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(content[len(prefix):])
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// Handle processes one inbound message. Messages from bots are ignored, a
// pending answer wait gets first claim on the message, and unknown
// commands are dropped silently.
func (r *Router) Handle(ctx context.Context, msg *model.Message) {
	if msg.Author.Bot {
		return
	}
	if r.waiter.Deliver(msg) {
		return
	}

	name, args, ok := Parse(r.prefix, msg.Content)
	if !ok {
		return
	}
	run, found := r.lookup[name]
	if !found {
		return
	}

	log := logger.Log.WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"command":    name,
		"author_id":  msg.Author.ID,
		"channel_id": msg.ChannelID,
	})
	log.Info("Command received")

	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", fmt.Sprint(rec)).Error("Command panicked")
			common.Internal(fmt.Errorf("panic: %v", rec)).Send(ctx, r.sender, msg)
		}
	}()

	run(ctx, msg, args)
}

func (r *Router) help(ctx context.Context, msg *model.Message, _ []string) *common.AppError {
	fields := make([]model.EmbedField, 0, len(r.commands))
	for _, cmd := range r.commands {
		name := r.prefix + cmd.Name
		if len(cmd.Aliases) > 0 {
			name += " (" + r.prefix + strings.Join(cmd.Aliases, ", "+r.prefix) + ")"
		}
		fields = append(fields, model.EmbedField{Name: name, Value: cmd.Usage})
	}

	reply := model.EmbedReply(model.Embed{Title: "Commands", Color: model.ColorBlue, Fields: fields})
	if err := r.sender.Send(ctx, msg.ChannelID, reply); err != nil {
		logger.Log.WithError(err).Error("Failed to send help")
	}
	return nil
}
