package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionNone      SubscriptionStatus = "none"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

type Partner struct {
	ID                  string             `json:"id" db:"partner_id"`
	SubscriptionStatus  SubscriptionStatus `json:"subscriptionStatus" db:"subscription_status"`
	SubscriptionPlan    string             `json:"subscriptionPlan,omitempty" db:"subscription_plan"`
	SubscriptionEndDate *time.Time         `json:"subscriptionEndDate,omitempty" db:"subscription_end_date"`
	CreatedAt           time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time          `json:"updatedAt" db:"updated_at"`
}
