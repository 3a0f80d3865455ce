package dbconfig

import "github.com/pkg/errors"

var (
	ErrChainNotFound   = errors.New("chain not found")
	ErrTokenNotFound   = errors.New("token not found")
	ErrInvalidChainID  = errors.New("invalid chain id")
	ErrDatabaseConnect = errors.New("failed to connect to database")
)
