package domain

import "time"

// LanguagePair is a source/target direction that models are released for.
type LanguagePair struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Code renders the pair as "src-tgt".
func (p LanguagePair) Code() string {
	return p.Source + "-" + p.Target
}
