// Package postgres provides PostgreSQL-backed persistence: a write-through
// snapshot source for the in-memory ferment collection and a user account
// store. The database is never the authority for ferments while the process
// runs; it seeds the collection at startup and absorbs each completed
// mutation afterwards.
package postgres
