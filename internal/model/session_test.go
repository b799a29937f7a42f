package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPOSession_IsOpen(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session POSession
		open    bool
	}{
		{
			name:    "active within window",
			session: POSession{Status: SessionActive, StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1)},
			open:    true,
		},
		{
			name:    "active at exact start",
			session: POSession{Status: SessionActive, StartDate: now, EndDate: now.AddDate(0, 0, 1)},
			open:    true,
		},
		{
			name:    "active at exact end",
			session: POSession{Status: SessionActive, StartDate: now.AddDate(0, 0, -1), EndDate: now},
			open:    true,
		},
		{
			name:    "draft within window",
			session: POSession{Status: SessionDraft, StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1)},
			open:    false,
		},
		{
			name:    "closed within window",
			session: POSession{Status: SessionClosed, StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1)},
			open:    false,
		},
		{
			name:    "active before start",
			session: POSession{Status: SessionActive, StartDate: now.AddDate(0, 0, 1), EndDate: now.AddDate(0, 0, 2)},
			open:    false,
		},
		{
			name:    "active after end",
			session: POSession{Status: SessionActive, StartDate: now.AddDate(0, 0, -2), EndDate: now.AddDate(0, 0, -1)},
			open:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, tt.session.IsOpen(now))
		})
	}
}
