// Package types contains common types used across the application
package types

// Entry represents a leaderboard entry
type Entry struct {
	Rank   int     `json:"rank"`
	Player string  `json:"player"`
	Team   string  `json:"team"`
	Role   string  `json:"role"`
	Score  float64 `json:"fantasy_points_per_game"`
}
