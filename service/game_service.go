package service

import (
	"fmt"
	"go-economy-bot/random"
	"strings"
)

const (
	DailyReward  int64 = 500
	TriviaReward int64 = 100
	JumbleReward int64 = 150

	workMinEarnings   = 50
	workEarningsRange = 200
	slotsMultiplier   = 3
)

// BegOutcome is one flavor result of begging.
type BegOutcome struct {
	Text   string
	Reward int64
}

var begOutcomes = []random.Weighted[BegOutcome]{
	{Value: BegOutcome{"A kind stranger gave you 50 💸", 50}, Weight: 1},
	{Value: BegOutcome{"You found 20 💸 on the ground", 20}, Weight: 1},
	{Value: BegOutcome{"Nobody helped you... you got nothing", 0}, Weight: 1},
	{Value: BegOutcome{"A dog dropped 10 💸", 10}, Weight: 1},
	{Value: BegOutcome{"💀 Someone roasted you instead of helping. +0", 0}, Weight: 1},
	{Value: BegOutcome{"📚 Trivia fact: Honey never spoils. +5 💸", 5}, Weight: 1},
}

var jobs = []string{"Farmer", "Coder", "Chef", "Streamer"}

// Catch is a fishing result.
type Catch struct {
	Name  string
	Value int64
}

var catches = []random.Weighted[Catch]{
	{Value: Catch{"🐟 Common Fish", 20}, Weight: 1},
	{Value: Catch{"🐠 Rare Fish", 100}, Weight: 1},
	{Value: Catch{"🐡 Epic Blowfish", 300}, Weight: 1},
	{Value: Catch{"🐋 Legendary Whale", 1000}, Weight: 1},
}

var slotSymbols = []string{"🍒", "🍋", "🍉", "⭐", "💎"}

// Question is a trivia prompt with its expected lower-case answer.
type Question struct {
	Prompt string
	Answer string
}

var questions = []Question{
	{"What’s the capital of France?", "paris"},
	{"2 + 2 * 2 = ?", "6"},
	{"What color is the sky on a clear day?", "blue"},
}

var jumbleWords = []string{"discord", "economy", "javascript", "gaming"}

var punchTargets = []string{"Thief", "Monster", "NPC"}

const (
	Heads = "heads"
	Tails = "tails"
)

// GameService draws game outcomes. It holds no state beyond its random source.
type GameService struct {
	src random.Source
}

func NewGameService(src random.Source) *GameService {
	return &GameService{src: src}
}

func (g *GameService) Beg() BegOutcome {
	return random.PickWeighted(g.src, begOutcomes)
}

// Work returns a cosmetic job label and earnings in [50, 250).
func (g *GameService) Work() (string, int64) {
	earnings := int64(workMinEarnings + g.src.IntN(workEarningsRange))
	return random.Pick(g.src, jobs), earnings
}

func (g *GameService) Fish() Catch {
	return random.PickWeighted(g.src, catches)
}

// Gamble is an even-odds bet. It returns whether the player won and the
// signed change to their wallet.
func (g *GameService) Gamble(amount int64) (bool, int64) {
	win := random.Chance(g.src)
	if win {
		return true, amount
	}
	return false, -amount
}

// SlotsRoll is three independently drawn symbols.
type SlotsRoll [3]string

// Win reports whether all three symbols are equal.
func (r SlotsRoll) Win() bool {
	return r[0] == r[1] && r[1] == r[2]
}

// Payout is the signed wallet change for staking amount on this roll.
func (r SlotsRoll) Payout(amount int64) int64 {
	if r.Win() {
		return amount * slotsMultiplier
	}
	return -amount
}

func (r SlotsRoll) String() string {
	return strings.Join(r[:], " | ")
}

func (g *GameService) Slots() SlotsRoll {
	var roll SlotsRoll
	for i := range roll {
		roll[i] = random.Pick(g.src, slotSymbols)
	}
	return roll
}

// ParseGuess normalises a coinflip guess.
func ParseGuess(s string) (string, error) {
	switch strings.ToLower(s) {
	case Heads:
		return Heads, nil
	case Tails:
		return Tails, nil
	}
	return "", fmt.Errorf("invalid guess %q", s)
}

// Coinflip flips a coin and returns the side, whether guess matched and
// the signed wallet change.
func (g *GameService) Coinflip(guess string, amount int64) (string, bool, int64) {
	flip := Tails
	if random.Chance(g.src) {
		flip = Heads
	}
	if flip == guess {
		return flip, true, amount
	}
	return flip, false, -amount
}

func (g *GameService) Trivia() Question {
	return random.Pick(g.src, questions)
}

// Jumble picks a word and returns it with its letters shuffled.
func (g *GameService) Jumble() (word, scrambled string) {
	word = random.Pick(g.src, jumbleWords)
	letters := []rune(word)
	random.Shuffle(g.src, letters)
	return word, string(letters)
}

// Punch picks a target and whether the punch lands.
func (g *GameService) Punch() (string, bool) {
	target := random.Pick(g.src, punchTargets)
	return target, random.Chance(g.src)
}

// LootName is the inventory item a landed punch on target yields.
func LootName(target string) string {
	return target + " Loot"
}

// CheckAnswer compares a reply with the expected answer, ignoring case and
// surrounding whitespace.
func CheckAnswer(reply, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(reply), answer)
}
