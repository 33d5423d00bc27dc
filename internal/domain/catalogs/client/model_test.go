package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecencyLabel(t *testing.T) {
	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	ts := func(t time.Time) *time.Time { return &t }

	tests := []struct {
		name        string
		lastVisited *time.Time
		want        string
	}{
		{"never visited", nil, "never"},
		{"same day", ts(time.Date(2026, 3, 15, 7, 30, 0, 0, time.UTC)), "today"},
		{"late last evening is yesterday", ts(time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)), "yesterday"},
		{"five days", ts(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)), "5 days ago"},
		{"29 days stays in days", ts(time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)), "29 days ago"},
		{"a month", ts(time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC)), "1 months ago"},
		{"three months", ts(time.Date(2025, 12, 10, 12, 0, 0, 0, time.UTC)), "3 months ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{LastVisited: tt.lastVisited}
			assert.Equal(t, tt.want, c.RecencyLabel(now))
		})
	}
}

func TestValidateRequiresName(t *testing.T) {
	c := New("", "Muscat", "")
	assert.Error(t, c.Validate(context.Background()))

	c = New("Matcha Corner", "Muscat", "")
	assert.NoError(t, c.Validate(context.Background()))
}
