package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thclabs/growroom/internal/domain"
)

type recordingSink struct {
	got []domain.Notification
}

func (s *recordingSink) Notify(ctx context.Context, n domain.Notification) {
	s.got = append(s.got, n)
}

func TestHarvestNotification(t *testing.T) {
	n := HarvestNotification("0x1234567890abcdef1234567890abcdef12345678", 2.35, 6.2)

	assert.Equal(t, "Harvest complete", n.Title)
	assert.Equal(t, domain.NotifySuccess, n.Variant)
	assert.Contains(t, n.Description, "0x1234…5678")
	assert.Contains(t, n.Description, "2.35 THC")
	assert.Contains(t, n.Description, "quality 6.2")
}

func TestShortAddress(t *testing.T) {
	tests := []struct {
		name     string
		address  string
		expected string
	}{
		{name: "full address truncated", address: "0xabcdef0123456789abcdef0123456789abcdef01", expected: "0xabcd…ef01"},
		{name: "short string untouched", address: "0x1234", expected: "0x1234"},
		{name: "empty", address: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortAddress(tt.address))
		})
	}
}

func TestMulti_FansOut(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	multi := Multi{first, second}

	n := HarvestNotification("0x1234567890abcdef1234567890abcdef12345678", 1.0, 3.0)
	multi.Notify(context.Background(), n)

	require.Len(t, first.got, 1)
	require.Len(t, second.got, 1)
	assert.Equal(t, n, first.got[0])
}

func TestMulti_Empty(t *testing.T) {
	// A nil slice is a valid no-op notifier.
	var multi Multi
	multi.Notify(context.Background(), domain.Notification{Title: "ignored"})
}
