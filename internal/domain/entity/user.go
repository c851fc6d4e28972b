// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RewardPreference is the user's stated reward-type preference. It decides
// the unit for BOTH-type cards and, when set, filters ranking to one unit.
type RewardPreference string

const (
	RewardPreferenceMiles    RewardPreference = "Miles"
	RewardPreferenceCashback RewardPreference = "Cashback"
	RewardPreferenceNone     RewardPreference = "No preference"
)

// ValidRewardPreference reports whether s is a known reward preference.
func ValidRewardPreference(s string) bool {
	switch RewardPreference(s) {
	case RewardPreferenceMiles, RewardPreferenceCashback, RewardPreferenceNone:
		return true
	}
	return false
}

// User represents a registered user of the rewards tracker.
type User struct {
	ID               uuid.UUID
	Email            string
	Name             string
	PasswordHash     string
	RewardPreference RewardPreference
	MonthlyDigest    bool
	TermsAcceptedAt  time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:               uuid.New(),
		Email:            email,
		Name:             name,
		PasswordHash:     passwordHash,
		RewardPreference: RewardPreferenceNone,
		MonthlyDigest:    true,
		TermsAcceptedAt:  termsAcceptedAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
