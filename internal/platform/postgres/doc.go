// Package postgres implements the store interfaces on top of a
// PostgreSQL database accessed through database/sql and the pgx driver.
package postgres
