// Package store defines interfaces for the authoritative ferment
// collection and its persistence collaborators. These interfaces keep the
// core logic independent of how the collection is held or bootstrapped.
package store
