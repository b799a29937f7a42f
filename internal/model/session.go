package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle status of a pre-order session.
type SessionStatus string

const (
	SessionDraft  SessionStatus = "DRAFT"
	SessionActive SessionStatus = "ACTIVE"
	SessionClosed SessionStatus = "CLOSED"
)

// Valid reports whether s is a known session status.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionDraft, SessionActive, SessionClosed:
		return true
	}
	return false
}

// POSession represents a time-bounded pre-order campaign tied to a subset of
// products.
type POSession struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description *string       `json:"description" db:"description"`
	StartDate   time.Time     `json:"startDate" db:"start_date"`
	EndDate     time.Time     `json:"endDate" db:"end_date"`
	Status      SessionStatus `json:"status" db:"status"`
	CreatedByID uuid.UUID     `json:"-" db:"created_by_id"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
}

// IsOpen reports whether the session accepts orders at the given time.
func (s *POSession) IsOpen(now time.Time) bool {
	return s.Status == SessionActive && !now.Before(s.StartDate) && !now.After(s.EndDate)
}

// SessionInput represents the request payload for creating or updating a
// pre-order session. The product set is replaced wholesale on update.
type SessionInput struct {
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Status      SessionStatus `json:"status"`
	ProductIDs  []uuid.UUID   `json:"productIds"`
}

// UserSummary is the creator block embedded in session responses.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// SessionResponse is a pre-order session with its joined product details and
// order count.
type SessionResponse struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Status      SessionStatus `json:"status"`
	CreatedBy   *UserSummary  `json:"createdBy,omitempty"`
	Products    []Product     `json:"products"`
	TotalOrders int           `json:"totalOrders"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// SessionSummary is the reduced session block embedded in order responses.
type SessionSummary struct {
	ID     uuid.UUID     `json:"id"`
	Name   string        `json:"name"`
	Status SessionStatus `json:"status"`
}
