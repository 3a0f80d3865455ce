package models

import "time"

type Token struct {
	ID         int64
	ChainIndex string
	Symbol     string
	Name       string
	Address    string
	Decimals   int
	LogoURL    string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
