package router

import (
	"context"
	"errors"
	"go-economy-bot/handler"
	"go-economy-bot/logger"
	"go-economy-bot/model"
	"go-economy-bot/random"
	"go-economy-bot/service"
	"go-economy-bot/waiter"
	"os"
	"sync"
	"testing"
	"time"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

var errStorage = errors.New("storage unavailable")

// memRepo is an in-memory IAccountRepository.
type memRepo struct {
	mu       sync.Mutex
	accounts map[string]*model.Account
	fail     bool
}

func newMemRepo() *memRepo {
	return &memRepo{accounts: make(map[string]*model.Account)}
}

func (r *memRepo) get(id string) *model.Account {
	a, ok := r.accounts[id]
	if !ok {
		a = &model.Account{ID: id, Inventory: model.Inventory{}}
		r.accounts[id] = a
	}
	return a
}

func clone(a *model.Account) *model.Account {
	c := *a
	c.Inventory = model.Inventory{}
	for k, v := range a.Inventory {
		c.Inventory[k] = v
	}
	return &c
}

func (r *memRepo) GetOrCreateAccount(_ context.Context, id string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStorage
	}
	return clone(r.get(id)), nil
}

func (r *memRepo) AdjustBalance(_ context.Context, id string, delta int64) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStorage
	}
	a := r.get(id)
	a.Balance += delta
	return clone(a), nil
}

func (r *memRepo) AdjustBank(_ context.Context, id string, delta int64) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStorage
	}
	a := r.get(id)
	a.Bank += delta
	return clone(a), nil
}

func (r *memRepo) AdjustInventory(_ context.Context, id, item string, qty int64) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStorage
	}
	a := r.get(id)
	a.Inventory.Add(item, qty)
	return clone(a), nil
}

func (r *memRepo) Transfer(_ context.Context, fromID, toID string, amount int64) (*model.Account, *model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, nil, errStorage
	}
	from, to := r.get(fromID), r.get(toID)
	from.Balance -= amount
	to.Balance += amount
	return clone(from), clone(to), nil
}

func (r *memRepo) MoveToBank(_ context.Context, id string, delta int64) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStorage
	}
	a := r.get(id)
	a.Balance -= delta
	a.Bank += delta
	return clone(a), nil
}

func (r *memRepo) set(id string, balance, bank int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.get(id)
	a.Balance, a.Bank = balance, bank
}

func (r *memRepo) snapshot(id string) model.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *clone(r.get(id))
}

type sent struct {
	channelID string
	reply     model.Reply
}

type recordingSender struct {
	mu      sync.Mutex
	replies []sent
}

func (s *recordingSender) Send(_ context.Context, channelID string, reply model.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies = append(s.replies, sent{channelID: channelID, reply: reply})
	return nil
}

func (s *recordingSender) all() []sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sent(nil), s.replies...)
}

func (s *recordingSender) last() model.Reply {
	all := s.all()
	if len(all) == 0 {
		return model.Reply{}
	}
	return all[len(all)-1].reply
}

// text returns the visible text of a reply.
func text(r model.Reply) string {
	if r.Embed != nil {
		return r.Embed.Description
	}
	return r.Content
}

type testBot struct {
	router *Router
	repo   *memRepo
	sender *recordingSender
	waiter *waiter.Registry
}

func newTestBot(t *testing.T, src random.Source, timeout time.Duration) *testBot {
	t.Helper()
	repo := newMemRepo()
	sender := &recordingSender{}
	w := waiter.New()
	ledger := service.NewLedgerService(repo, nil)
	games := service.NewGameService(src)

	r := NewRouter("!", sender, w, Handlers{
		Account: handler.NewAccountHandler(ledger, sender, "!"),
		Earn:    handler.NewEarnHandler(ledger, games, sender),
		Game:    handler.NewGameHandler(ledger, games, sender, "!"),
		Quiz:    handler.NewQuizHandler(ledger, games, sender, w, timeout),
	})
	return &testBot{router: r, repo: repo, sender: sender, waiter: w}
}

var alice = model.User{ID: "alice", Username: "Alice"}
var bob = model.User{ID: "bob", Username: "Bob"}

func (b *testBot) say(author model.User, content string, mentions ...model.User) {
	b.router.Handle(context.Background(), &model.Message{
		ID:        "m-" + content,
		ChannelID: "general",
		Author:    author,
		Content:   content,
		Mentions:  mentions,
	})
}
