// Package repository stores and loads posts and users. Listings are built
// with the query package and read their total from a window count; every
// write runs as a single statement in its own transaction.
package repository
