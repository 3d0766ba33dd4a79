// Package postgres implements the store ports over PostgreSQL through
// database/sql with the pgx stdlib driver. Monetary columns are
// NUMERIC(20,4) scanned through shopspring/decimal; tag lists and matched
// transaction ids are stored as JSONB.
package postgres
