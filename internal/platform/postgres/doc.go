// Package postgres contains the PostgreSQL implementations of the store
// interfaces, built on database/sql with the pgx stdlib driver. Each store
// accepts a store.DBTX so it can run against the connection pool or join a
// caller-managed transaction via WithTx.
package postgres
