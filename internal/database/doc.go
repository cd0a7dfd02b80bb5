// Package database provides PostgreSQL connectivity and repositories.
//
// Uses pgx for connection pooling. Repositories implement the domain
// interfaces (ReviewRepository).
package database
