// file: model/request.go

package model

// AmountRequest is the argument of deposit, withdraw, gamble and slots.
type AmountRequest struct {
	Amount int64 `validate:"gt=0"`
}

// PayRequest is the argument of pay. The recipient comes from the
// message mentions, not from the text.
type PayRequest struct {
	RecipientID string `validate:"required"`
	Amount      int64  `validate:"gt=0"`
}

// CoinflipRequest holds the stake and the called side.
type CoinflipRequest struct {
	Amount int64  `validate:"gt=0"`
	Guess  string `validate:"required,oneof=heads tails"`
}
