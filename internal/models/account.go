package models

// Account holds spendable value for an address.
type Account struct {
	Address string
	Balance int64
}
