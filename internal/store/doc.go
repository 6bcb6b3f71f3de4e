// Package store defines the persistence contracts the application depends
// on: entity stores for users and places, the DBTX abstraction that lets
// implementations run against either a connection or a transaction, and
// the RunInTransaction helper used for multi-entity atomic writes.
//
// The place/user relationship has no database-level foreign key; the
// referential integrity between places.creator_id and users.place_ids is
// emulated by the service layer through the transaction primitive here.
package store
