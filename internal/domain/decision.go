package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Decision is the agent's answer to "should we contact this user now".
// It is never persisted; a message row is its only durable trace.
type Decision struct {
	ShouldEngage bool    `json:"should_engage"`
	Reasoning    string  `json:"reasoning"`
	Action       *Action `json:"action"`
}

// Action describes the message the agent wants to send.
type Action struct {
	Type            Channel  `json:"type"`
	Subject         string   `json:"subject,omitempty"`
	Body            string   `json:"body,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// UnmarshalJSON accepts the loose shapes models produce. The channel is
// trimmed and lower-cased, and recommendations that are not strings are kept
// as their compact JSON text.
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type            *string           `json:"type"`
		Subject         string            `json:"subject"`
		Body            string            `json:"body"`
		Recommendations []json.RawMessage `json:"recommendations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = Action{Subject: raw.Subject, Body: raw.Body}
	if raw.Type != nil {
		a.Type = Channel(strings.ToLower(strings.TrimSpace(*raw.Type)))
	}
	for _, r := range raw.Recommendations {
		if rec := recommendationText(r); rec != "" {
			a.Recommendations = append(a.Recommendations, rec)
		}
	}
	return nil
}

func recommendationText(r json.RawMessage) string {
	var s string
	if err := json.Unmarshal(r, &s); err == nil {
		return s
	}
	if bytes.Equal(bytes.TrimSpace(r), []byte("null")) {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, r); err != nil {
		return string(r)
	}
	return buf.String()
}

// Engages reports whether the decision must produce an outbound message.
func (d Decision) Engages() bool {
	return d.ShouldEngage && d.Action != nil && d.Action.Type != ""
}

// QualityReport is the editor verdict on a drafted message.
type QualityReport struct {
	OverallScore         float64            `json:"overall_score"`
	CriteriaScores       map[string]float64 `json:"criteria_scores"`
	Approved             bool               `json:"approved"`
	Comments             string             `json:"comments"`
	SuggestedImprovement string             `json:"suggested_improvement"`
}

// GrowthOpportunity is one lifetime-value lever suggested for a user.
type GrowthOpportunity struct {
	Type                string  `json:"type"`
	Reason              string  `json:"reason"`
	Suggestion          string  `json:"suggestion"`
	ExpectedLTVIncrease float64 `json:"expected_ltv_increase"`
}
