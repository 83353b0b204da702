// Package domain contains the core business entities and value objects of the
// practice service: flashcards, review difficulties and practice records. It is
// independent of any storage engine or delivery mechanism.
package domain
