package domain

import (
	"time"
)

// SocialLink points at one of the portfolio owner's profiles elsewhere.
type SocialLink struct {
	ID        int64     `json:"id"`
	Platform  string    `json:"platform"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
