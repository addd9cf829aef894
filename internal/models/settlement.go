package models

import (
	"time"
)

type SettlementStatus string

const (
	SettlementRunning   SettlementStatus = "running"
	SettlementCompleted SettlementStatus = "completed"
	SettlementFailed    SettlementStatus = "failed"
	// SettlementNoop is returned, not stored, when a week has no pending bids.
	SettlementNoop SettlementStatus = "noop"
)

type SettlementRun struct {
	ID             string           `json:"id" db:"id"`
	WeekKey        string           `json:"weekKey" db:"week_key"`
	Status         SettlementStatus `json:"status" db:"status"`
	WonCount       int              `json:"wonCount" db:"won_count"`
	LostCount      int              `json:"lostCount" db:"lost_count"`
	LateCount      int              `json:"lateCount" db:"late_count"`
	RefundedPoints int64            `json:"refundedPoints" db:"refunded_points"`
	FailedChunks   int              `json:"failedChunks" db:"failed_chunks"`
	Error          string           `json:"error,omitempty" db:"error"`
	StartedAt      time.Time        `json:"startedAt" db:"started_at"`
	CompletedAt    *time.Time       `json:"completedAt,omitempty" db:"completed_at"`
}
