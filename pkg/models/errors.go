package models

import "errors"

// Domain errors are pure sentinels; callers match with errors.Is.
var (
	// ErrInvalidInput rejects a mutation whose preconditions fail
	// (empty name/phone, non-positive amount). Nothing is mutated.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means the referenced debt id is absent from the
	// collection.
	ErrNotFound = errors.New("debt not found")

	// ErrInvalidState rejects a transition the status machine forbids,
	// such as disputing a paid debt.
	ErrInvalidState = errors.New("invalid debt state")

	// ErrPersistence wraps a failed write-through. In-memory state stays
	// authoritative for the session; the change may not survive a reload.
	ErrPersistence = errors.New("persistence failure")

	// ErrCorruptData marks stored data that could not be deserialized.
	ErrCorruptData = errors.New("corrupt stored data")
)
