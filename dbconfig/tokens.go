package dbconfig

import (
	"context"
	"database/sql"

	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
	"github.com/tarun-khatri/profitpath-smart-swap/dbconfig/models"
)

// GetTokens returns all active tokens for a chain, ordered by symbol.
func (r *DBConfig) GetTokens(ctx context.Context, chainIndex string) ([]models.Token, error) {
	if chainIndex == "" {
		return nil, ErrInvalidChainID
	}

	db, err := sql.Open(r.driverName, r.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
      SELECT
          id,
          chain_index,
          symbol,
          name,
          address,
          decimals,
          logo_url,
          active,
          created_at,
          updated_at
      FROM tokens
      WHERE chain_index = $1 AND active = true
      ORDER BY symbol ASC
  `, chainIndex)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer rows.Close()

	var tokens []models.Token
	for rows.Next() {
		var token models.Token
		var logoURL sql.NullString

		err := rows.Scan(
			&token.ID,
			&token.ChainIndex,
			&token.Symbol,
			&token.Name,
			&token.Address,
			&token.Decimals,
			&logoURL,
			&token.Active,
			&token.CreatedAt,
			&token.UpdatedAt,
		)
		if err != nil {
			return nil, ErrDatabaseConnect
		}

		if logoURL.Valid {
			token.LogoURL = logoURL.String
		}

		tokens = append(tokens, token)
	}

	if err = rows.Err(); err != nil {
		return nil, ErrDatabaseConnect
	}

	return tokens, nil
}

// GetTokenByAddress returns one token by its contract address on a chain.
func (r *DBConfig) GetTokenByAddress(ctx context.Context, chainIndex, address string) (*models.Token, error) {
	if chainIndex == "" {
		return nil, ErrInvalidChainID
	}

	db, err := sql.Open(r.driverName, r.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	var token models.Token
	var logoURL sql.NullString

	err = db.QueryRowContext(ctx, `
      SELECT
          id,
          chain_index,
          symbol,
          name,
          address,
          decimals,
          logo_url,
          active,
          created_at,
          updated_at
      FROM tokens
      WHERE chain_index = $1 AND lower(address) = lower($2)
  `, chainIndex, address).Scan(
		&token.ID,
		&token.ChainIndex,
		&token.Symbol,
		&token.Name,
		&token.Address,
		&token.Decimals,
		&logoURL,
		&token.Active,
		&token.CreatedAt,
		&token.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}

	if err != nil {
		return nil, ErrDatabaseConnect
	}

	if logoURL.Valid {
		token.LogoURL = logoURL.String
	}

	return &token, nil
}

// UpsertToken inserts or refreshes one token row, keyed by chain and address.
func (r *DBConfig) UpsertToken(ctx context.Context, token *models.Token) error {
	db, err := sql.Open(r.driverName, r.dbConnStr)
	if err != nil {
		return ErrDatabaseConnect
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `
      INSERT INTO tokens (chain_index, symbol, name, address, decimals, logo_url, active, created_at, updated_at)
      VALUES ($1, $2, $3, $4, $5, $6, true, NOW(), NOW())
      ON CONFLICT (chain_index, address) DO UPDATE SET
          symbol = EXCLUDED.symbol,
          name = EXCLUDED.name,
          decimals = EXCLUDED.decimals,
          logo_url = EXCLUDED.logo_url,
          active = true,
          updated_at = NOW()
  `, token.ChainIndex, token.Symbol, token.Name, token.Address, token.Decimals, token.LogoURL)
	if err != nil {
		return ErrDatabaseConnect
	}

	return nil
}

// ResolveTokenByAddress looks one token up directly by contract address,
// bypassing the full listing. Implements the registry's address fallback.
func (r *DBConfig) ResolveTokenByAddress(ctx context.Context, chainID, address string) (*types.Token, error) {
	row, err := r.GetTokenByAddress(ctx, chainID, address)
	if err != nil {
		return nil, err
	}

	return &types.Token{
		Symbol:   row.Symbol,
		Name:     row.Name,
		ChainID:  row.ChainIndex,
		Address:  row.Address,
		Decimals: row.Decimals,
		LogoURL:  row.LogoURL,
	}, nil
}

// ListTokens implements the registry token source over the tokens table.
func (r *DBConfig) ListTokens(ctx context.Context, chainID string) ([]types.Token, error) {
	rows, err := r.GetTokens(ctx, chainID)
	if err != nil {
		return nil, err
	}

	tokens := make([]types.Token, 0, len(rows))
	for _, row := range rows {
		tokens = append(tokens, types.Token{
			Symbol:   row.Symbol,
			Name:     row.Name,
			ChainID:  row.ChainIndex,
			Address:  row.Address,
			Decimals: row.Decimals,
			LogoURL:  row.LogoURL,
		})
	}
	return tokens, nil
}
