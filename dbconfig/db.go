// Package dbconfig reads swap reference data (supported chains and token
// listings) from PostgreSQL. It serves as an alternative token source when
// the provider's listing endpoints are unavailable or rate limited.
package dbconfig

import (
	_ "github.com/lib/pq"
)

type DBConfig struct {
	driverName string
	dbConnStr  string
}

// NewDBConfig creates a new DBConfig instance with the provided connection string.
//
// Parameters:
// - connStr: the database connection string.
//
// Returns:
// - *DBConfig: a pointer to the newly created DBConfig instance.
// - error: an error if the creation of the DBConfig instance fails.
func NewDBConfig(connStr string) (*DBConfig, error) {
	return &DBConfig{
		driverName: "postgres",
		dbConnStr:  connStr,
	}, nil
}
