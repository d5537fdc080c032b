package model

import "time"

// AIAssessment is the confidence verdict returned by the reasoning step.
type AIAssessment struct {
	Success            bool     `json:"success"`
	ConfidenceScore    int      `json:"confidence_score"`
	ExplanationBullets []string `json:"explanation_bullets"`
	Error              string   `json:"error,omitempty"`
}

// Assessment is the full per-account evaluation result: the raw account, its
// resolved parent (when linked and resolvable), the computed flag bundle, and
// the optional AI confidence verdict.
type Assessment struct {
	Account Account           `json:"account"`
	Parent  *Account          `json:"parent,omitempty"`
	Flags   RelationshipFlags `json:"flags"`
	AI      *AIAssessment     `json:"ai_assessment,omitempty"`
}

// RunStatus tracks the lifecycle of a persisted assessment run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one persisted batch of assessments.
type Run struct {
	ID          string       `json:"id"`
	Source      string       `json:"source"` // SOQL query, file path, or ID list descriptor
	Status      RunStatus    `json:"status"`
	Assessments []Assessment `json:"assessments,omitempty"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
