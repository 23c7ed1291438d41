package domain

import "time"

// Team owns projects. Members are the display names offered as responsibles.
type Team struct {
	ID        string
	Name      string
	Members   []string
	CreatedAt time.Time
}
