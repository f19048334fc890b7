package alert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Value is a loosely typed payload field that may arrive as a JSON string, number or null
type Value struct {
	raw     string
	set     bool
	numeric bool
}

// UnmarshalJSON accepts strings and numbers verbatim; null leaves the value unset
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Value{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{raw: s, set: s != ""}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// Booleans and objects carry nothing presentable
		*v = Value{}
		return nil
	}
	*v = Value{raw: n.String(), set: true, numeric: true}
	return nil
}

// V builds a set Value from a string, used by tests and local alert injection
func V(s string) Value {
	return Value{raw: s, set: s != ""}
}

// IsSet reports whether the field was present and non-empty
func (v Value) IsSet() bool {
	return v.set
}

// Counted reports whether the field holds a usable count
// A JSON number equal to zero counts as absent; the string "0" does not
func (v Value) Counted() bool {
	if !v.set {
		return false
	}
	if !v.numeric {
		return true
	}
	f, err := strconv.ParseFloat(v.raw, 64)
	return err != nil || f != 0
}

// String returns the raw text, empty when unset
func (v Value) String() string {
	return v.raw
}

// Int parses the value as an integer, 0 when unset or not numeric
func (v Value) Int() int {
	if !v.set {
		return 0
	}
	if n, err := strconv.Atoi(v.raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v.raw, 64); err == nil {
		return int(f)
	}
	return 0
}

// Item is one entry of an event's item list; every field is optional
type Item struct {
	Name            Value `json:"name"`
	From            Value `json:"from"`
	Message         Value `json:"message"`
	Amount          Value `json:"amount"`
	FormattedAmount Value `json:"formatted_amount"`
	Months          Value `json:"months"`
	Viewers         Value `json:"viewers"`
	Raiders         Value `json:"raiders"`
	Raider          Value `json:"raider"`
}

// Event is a raw event as delivered by the live feed
type Event struct {
	Type     string          `json:"type"`
	For      string          `json:"for"`
	Items    []Item          `json:"-"`
	ItemsRaw json.RawMessage `json:"message"`
}

// DecodeEvent parses a raw event payload
// A non-array item list is treated as empty, not as an error
func DecodeEvent(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("decoding event: %w", err)
	}
	raw := bytes.TrimSpace(ev.ItemsRaw)
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &ev.Items); err != nil {
			return Event{}, fmt.Errorf("decoding event items: %w", err)
		}
	}
	return ev, nil
}

// Normalize maps every item of ev to at most one Alert
// Unknown event types and empty item lists produce no alerts
func Normalize(ev Event) []Alert {
	if len(ev.Items) == 0 {
		return nil
	}
	category, ok := ParseCategory(ev.Type)
	if !ok {
		return nil
	}

	alerts := make([]Alert, 0, len(ev.Items))
	for _, item := range ev.Items {
		if a, ok := NormalizeItem(category, item); ok {
			alerts = append(alerts, a)
		}
	}
	return alerts
}

// NormalizeItem applies the per-category field mapping to a single item
func NormalizeItem(category Category, item Item) (Alert, bool) {
	switch category {
	case CategoryDonation:
		amount := item.FormattedAmount.String()
		if amount == "" && item.Amount.IsSet() {
			amount = "$" + item.Amount.String()
		}
		return New(CategoryDonation, firstSet(item.From, item.Name), item.Message.String(), amount), true

	case CategoryBits:
		amount := ""
		if item.Amount.IsSet() {
			amount = item.Amount.String() + " bits"
		}
		return New(CategoryBits, item.Name.String(), item.Message.String(), amount), true

	case CategoryFollow:
		return New(CategoryFollow, item.Name.String(), "", ""), true

	case CategorySubscription, CategoryResub:
		months := item.Months.Int()
		if months > 1 {
			return New(CategoryResub, item.Name.String(), item.Message.String(), strconv.Itoa(months)+" months"), true
		}
		return New(CategorySubscription, item.Name.String(), item.Message.String(), ""), true

	case CategoryHost:
		amount := ""
		if item.Viewers.Counted() {
			amount = item.Viewers.String() + " viewers"
		}
		return New(CategoryHost, item.Name.String(), "", amount), true

	case CategoryRaid:
		viewers := item.Viewers
		if !viewers.Counted() {
			viewers = Value{}
		}
		amount := firstSet(viewers, item.Raiders)
		if amount != "" {
			amount += " raiders"
		}
		return New(CategoryRaid, firstSet(item.Name, item.Raider), "", amount), true
	}
	return Alert{}, false
}

func firstSet(values ...Value) string {
	for _, v := range values {
		if v.IsSet() {
			return strings.TrimSpace(v.String())
		}
	}
	return ""
}
