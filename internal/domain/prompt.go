package domain

import "time"

// Names of the prompt templates the agent looks up.
const (
	PromptDecisionAgent  = "decision_agent"
	PromptTextGenerator  = "text_generator"
	PromptQualityChecker = "quality_checker"
)

// PromptTemplate is a named, parameterized prompt editable by administrators.
type PromptTemplate struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Template    string    `json:"template"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
