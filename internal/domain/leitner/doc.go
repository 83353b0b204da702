// Package leitner implements the Leitner-box scheduler that decides which
// cards are practiced on a given day and where a card moves after a review.
//
// Cards live in numbered buckets. Bucket 0 holds cards that were just failed
// or never reviewed and is practiced every day; bucket i > 0 is practiced on
// days divisible by 2^i, so better-known cards come back exponentially less
// often. Every function in this package is pure: it reads the values passed
// in and returns new values, leaving locking and persistence to the caller.
package leitner
