package models

import (
	"time"
)

type Chain struct {
	ID         int64
	ChainIndex string
	Name       string
	Type       string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
