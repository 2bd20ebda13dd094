package model

// Account is the economy state of one chat user.
type Account struct {
	ID        string    `json:"id"`
	Balance   int64     `json:"balance"`
	Bank      int64     `json:"bank"`
	Inventory Inventory `json:"inventory"`
}
