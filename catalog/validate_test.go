package catalog

import (
	"testing"
	"time"

	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2030, time.March, 10, 9, 0, 0, 0, time.UTC)

func TestParseTime(t *testing.T) {
	for _, s := range []string{
		"2030-06-01T18:00:00Z",
		"2030-06-01T18:00",
		"2030-06-01 18:00",
		"2030-06-01 18:00:30",
		"2030-06-01 6:00 PM",
		"2030-06-01",
	} {
		_, err := ParseTime(s, time.UTC)
		assert.NoError(t, err, s)
	}

	_, err := ParseTime("next friday", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestTimeRange(t *testing.T) {
	valid := TimeRange(testutil.FixedClock(testNow), time.UTC)

	tests := []struct {
		name       string
		start, end string
		want       bool
	}{
		{"past dates", "2020-01-01 10:00", "2020-01-01 12:00", false},
		{"start after end on the same future day", "2030-06-01 20:00", "2030-06-01 18:00", false},
		{"equal endpoints", "2030-06-01 18:00", "2030-06-01 18:00", false},
		{"start in the past", "2030-03-10 08:00", "2030-03-10 12:00", false},
		{"unparseable", "tomorrow evening", "2030-06-01 18:00", false},
		{"missing end", "2030-06-01 18:00", "", false},
		{"future ordered pair", "2030-06-01 18:00", "2030-06-01 20:00", true},
		{"multi-day", "2030-06-01", "2030-06-03 23:59", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, valid(core.Fields{"startTime": tt.start, "endTime": tt.end}))
		})
	}
}

func TestValidPrice(t *testing.T) {
	for _, s := range []string{"free", "FREE", "$30", "30", "30.00", "€12.50", "USD 25", "25 EUR", "$1,250.00"} {
		assert.True(t, ValidPrice(s), s)
	}
	for _, s := range []string{"-5", "abc", "0", "", "$0.00", "$", "30$", "1,25"} {
		assert.False(t, ValidPrice(s), s)
	}
}

func TestValidQuantity(t *testing.T) {
	for _, s := range []string{"1", "250", "1,000", " 42 "} {
		assert.True(t, ValidQuantity(s), s)
	}
	for _, s := range []string{"0", "-3", "2.5", "lots", ""} {
		assert.False(t, ValidQuantity(s), s)
	}
}

func TestTickets(t *testing.T) {
	assert.True(t, Tickets(core.Fields{"ticketQuantity": "100", "ticketPrice": "free"}))
	assert.False(t, Tickets(core.Fields{"ticketQuantity": "100", "ticketPrice": "0"}))
	assert.False(t, Tickets(core.Fields{"ticketQuantity": "none", "ticketPrice": "$30"}))
}

func TestPlanEvent(t *testing.T) {
	t.Run("without images", func(t *testing.T) {
		c := PlanEvent(func(o *Options) { o.Now = testutil.FixedClock(testNow) })
		require.NoError(t, c.Check())
		names := make([]string, len(c))
		for i, s := range c {
			names[i] = s.Name
		}
		assert.Equal(t, []string{
			"TitleAndDescriptionAgent", "TimeAgent", "TicketAgent",
			"VenueAgent", "BudgetAgent", "NftTicketingAndPaymentAgent",
		}, names)
	})

	t.Run("with images", func(t *testing.T) {
		c := PlanEvent(func(o *Options) { o.Images = testutil.NewFakeImageGenerator("https://img") })
		require.NoError(t, c.Check())
		s, ok := c.Find("ImageAgent")
		require.True(t, ok)
		assert.Equal(t, []string{"imageReference"}, s.Derived)
		assert.Equal(t, "ImageAgent", c[5].Name)
	})

	t.Run("schema includes image fields", func(t *testing.T) {
		assert.Contains(t, PlanEventSchema(), "imageReference")
		assert.Contains(t, PlanEventSchema(), "nftTicketingAndPayment")
	})
}

func TestTimeAgent_NoticeAndInstruction(t *testing.T) {
	s := TimeAgent(testutil.FixedClock(testNow), time.UTC)
	assert.Equal(t, TimeNotice, s.Notice([]string{"endTime"}))

	instr, err := s.ExtractionInstruction(core.Fields{}, s.Missing(core.Fields{}), map[string]any{"now": "2030-03-10 09:00"})
	require.NoError(t, err)
	assert.Contains(t, instr, "The current date and time is 2030-03-10 09:00.")
}
