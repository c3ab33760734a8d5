package domain

import "time"

// Testset is an evaluation corpus uploaded for a language pair.
type Testset struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	LanguagePairID string    `json:"language_pair_id"`
	Segments       int       `json:"segments"`
	CreatedAt      time.Time `json:"created_at"`
}
