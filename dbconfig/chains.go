package dbconfig

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tarun-khatri/profitpath-smart-swap/common/types"
	"github.com/tarun-khatri/profitpath-smart-swap/dbconfig/models"
)

// GetChains returns all chains from the database, optionally filtering by active status.
func (r *DBConfig) GetChains(ctx context.Context, activeOnly bool) ([]models.Chain, error) {
	db, err := sql.Open(r.driverName, r.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	query := `
      SELECT
          id,
          chain_index,
          name,
          chain_type,
          active,
          created_at,
          updated_at
      FROM chains
  `

	var args []interface{}
	if activeOnly {
		query += " WHERE active = $1"
		args = append(args, true)
	}

	query += " ORDER BY chain_index ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer rows.Close()

	var chains []models.Chain
	for rows.Next() {
		var chain models.Chain
		var chainType sql.NullString

		err := rows.Scan(
			&chain.ID,
			&chain.ChainIndex,
			&chain.Name,
			&chainType,
			&chain.Active,
			&chain.CreatedAt,
			&chain.UpdatedAt,
		)
		if err != nil {
			return nil, ErrDatabaseConnect
		}

		if chainType.Valid {
			chain.Type = strings.ToUpper(chainType.String)
		}

		chains = append(chains, chain)
	}

	if err = rows.Err(); err != nil {
		return nil, ErrDatabaseConnect
	}

	return chains, nil
}

func (r *DBConfig) GetChainByIndex(ctx context.Context, chainIndex string) (*models.Chain, error) {
	if chainIndex == "" {
		return nil, ErrInvalidChainID
	}

	db, err := sql.Open(r.driverName, r.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	var chain models.Chain
	var chainType sql.NullString

	err = db.QueryRowContext(ctx, `
       SELECT
           id,
           chain_index,
           name,
           chain_type,
           active,
           created_at,
           updated_at
       FROM chains
       WHERE chain_index = $1
    `, chainIndex).Scan(
		&chain.ID,
		&chain.ChainIndex,
		&chain.Name,
		&chainType,
		&chain.Active,
		&chain.CreatedAt,
		&chain.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrChainNotFound
	}

	if err != nil {
		return nil, ErrDatabaseConnect
	}

	if chainType.Valid {
		chain.Type = strings.ToUpper(chainType.String)
	}

	return &chain, nil
}

// ListChains implements the registry token source over the chains table.
func (r *DBConfig) ListChains(ctx context.Context) ([]types.Chain, error) {
	rows, err := r.GetChains(ctx, true)
	if err != nil {
		return nil, err
	}

	chains := make([]types.Chain, 0, len(rows))
	for _, row := range rows {
		chains = append(chains, types.Chain{
			ID:   row.ChainIndex,
			Name: row.Name,
			Type: types.ParseChainType(row.Type),
		})
	}
	return chains, nil
}
