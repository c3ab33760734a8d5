package domain

import "time"

// TrainingResult is one metric score of a model version on a testset.
type TrainingResult struct {
	ID        string    `json:"id"`
	ModelID   string    `json:"model_id"`
	TestsetID string    `json:"testset_id"`
	Metric    string    `json:"metric"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}
