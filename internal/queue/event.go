// Package queue defines message payloads exchanged over the message broker.
package queue

// MovieWatchedEvent is published when a user marks a movie as watched.
// It carries enough information for downstream consumers to log or run
// analytics without querying the primary database.
type MovieWatchedEvent struct {
	UserID     uint64 `json:"user_id"`
	Username   string `json:"username"`
	MovieID    uint64 `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	Category   string `json:"category"`
	WatchedAt  string `json:"watched_at"`
}
