// Package database provides connection pool management for the optional
// Postgres listing-event recorder.
//
// The watcher itself keeps its snapshot in memory; Postgres only stores
// detected listings for operators to query after the fact.
package database
