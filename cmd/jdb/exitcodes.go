package main

// Exit codes. Zero-match queries, updates and deletes are successes;
// every classified failure exits 1.
const (
	ExitSuccess = 0 // Success
	ExitError   = 1 // Any classified error
)
