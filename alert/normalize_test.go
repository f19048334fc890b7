package alert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalizeOne(t *testing.T, payload string) Alert {
	t.Helper()
	ev, err := DecodeEvent([]byte(payload))
	require.NoError(t, err)
	alerts := Normalize(ev)
	require.Len(t, alerts, 1)
	return alerts[0]
}

func TestSubscriptionSingleMonth(t *testing.T) {
	a := normalizeOne(t, `{"type":"subscription","message":[{"name":"NewSub","months":1,"message":"hi"}]}`)
	assert.Equal(t, CategorySubscription, a.Category)
	assert.Equal(t, "", a.AmountLabel)
	assert.Equal(t, "hi", a.Note)
	assert.Equal(t, 80, a.Priority())
}

func TestSubscriptionResub(t *testing.T) {
	a := normalizeOne(t, `{"type":"subscription","message":[{"name":"Loyal","months":12}]}`)
	assert.Equal(t, CategoryResub, a.Category)
	assert.Equal(t, "12 months", a.AmountLabel)
	assert.Equal(t, "", a.Note)
	assert.Equal(t, 75, a.Priority())
}

func TestDonationPrefersFormattedAmount(t *testing.T) {
	a := normalizeOne(t, `{"type":"donation","message":[{"from":"Giver","name":"ignored","amount":"99","formatted_amount":"$25.00"}]}`)
	assert.Equal(t, "$25.00", a.AmountLabel)
	assert.Equal(t, "Giver", a.DisplayName)
}

func TestDonationRawAmount(t *testing.T) {
	a := normalizeOne(t, `{"type":"donation","message":[{"name":"Giver","amount":5}]}`)
	assert.Equal(t, "$5", a.AmountLabel)
	assert.Equal(t, "Giver", a.DisplayName)
}

func TestFieldMapping(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		category Category
		display  string
		note     string
		amount   string
	}{
		{"bits", `{"type":"bits","message":[{"name":"Cheer","amount":"500","message":"Cheer100"}]}`, CategoryBits, "Cheer", "Cheer100", "500 bits"},
		{"follow drops message", `{"type":"follow","message":[{"name":"Fan","message":"x","amount":3}]}`, CategoryFollow, "Fan", "", ""},
		{"host with viewers", `{"type":"host","message":[{"name":"Friend","viewers":42}]}`, CategoryHost, "Friend", "", "42 viewers"},
		{"host without viewers", `{"type":"host","message":[{"name":"Friend"}]}`, CategoryHost, "Friend", "", ""},
		{"raid viewers", `{"type":"raid","message":[{"name":"Captain","viewers":150}]}`, CategoryRaid, "Captain", "", "150 raiders"},
		{"host zero viewers", `{"type":"host","message":[{"name":"Friend","viewers":0}]}`, CategoryHost, "Friend", "", ""},
		{"host string zero viewers", `{"type":"host","message":[{"name":"Friend","viewers":"0"}]}`, CategoryHost, "Friend", "", "0 viewers"},
		{"raid zero viewers uses raiders", `{"type":"raid","message":[{"name":"Captain","viewers":0,"raiders":150}]}`, CategoryRaid, "Captain", "", "150 raiders"},
		{"raid raiders fallback", `{"type":"raid","message":[{"raider":"Captain","raiders":"30"}]}`, CategoryRaid, "Captain", "", "30 raiders"},
		{"missing name", `{"type":"bits","message":[{"amount":1}]}`, CategoryBits, AnonymousName, "", "1 bits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := normalizeOne(t, tt.payload)
			assert.Equal(t, tt.category, a.Category)
			assert.Equal(t, tt.display, a.DisplayName)
			assert.Equal(t, tt.note, a.Note)
			assert.Equal(t, tt.amount, a.AmountLabel)
		})
	}
}

func TestNormalizeIgnoresEmptyAndUnknown(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"donation","message":[]}`))
	require.NoError(t, err)
	assert.Empty(t, Normalize(ev))

	ev, err = DecodeEvent([]byte(`{"type":"streamlabels","message":{"total":"1"}}`))
	require.NoError(t, err)
	assert.Empty(t, Normalize(ev))

	ev, err = DecodeEvent([]byte(`{"type":"merch","message":[{"name":"x"}]}`))
	require.NoError(t, err)
	assert.Empty(t, Normalize(ev))
}

func TestNormalizeMultipleItems(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"follow","for":"twitch_account","message":[{"name":"a"},{"name":"b"},{"name":"c"}]}`))
	require.NoError(t, err)
	alerts := Normalize(ev)
	require.Len(t, alerts, 3)
	assert.Equal(t, "twitch_account", ev.For)
	assert.Equal(t, "c", alerts[2].DisplayName)
}

func TestDecodeEventMalformed(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"type":`))
	assert.Error(t, err)
}
