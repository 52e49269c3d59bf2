package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMessageWritesLogLine(t *testing.T) {
	t.Chdir(t.TempDir())

	ev := OrderPlacedEvent{
		OrderID:         12,
		UserID:          3,
		TicketOfferID:   7,
		TicketType:      "Golden Circle",
		NumTickets:      2,
		TotalPrice:      "270.00",
		DiscountApplied: true,
		PlacedAt:        "2026-06-01T10:00:00Z",
		ConcertArtist:   "Taylor Swift",
		ConcertLocation: "Koning Boudewijnstadion, Brussel",
		ConcertDate:     "2026-06-12T20:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, handleMessage(body))

	data, err := os.ReadFile(filepath.Join("logs", "orders.log"))
	require.NoError(t, err)
	line := string(data)
	assert.Contains(t, line, "order_id=12")
	assert.Contains(t, line, `artist="Taylor Swift"`)
	assert.Contains(t, line, "total=270.00")
	assert.Contains(t, line, "discount=yes")
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	t.Chdir(t.TempDir())
	assert.Error(t, handleMessage([]byte("{not json")))
}
