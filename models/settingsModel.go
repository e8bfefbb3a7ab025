package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DayHours describes one weekday's opening window. Times are "HH:MM" 24h strings.
type DayHours struct {
	Open     bool   `json:"open"`
	OpensAt  string `json:"opensAt"`
	ClosesAt string `json:"closesAt"`
}

type BusinessSettings struct {
	gorm.Model
	Address         string         `json:"address"`
	Hours           datatypes.JSON `json:"hours"`
	PrepTimeBuffer  int            `json:"prepTimeBuffer"`
	TaxRate         float64        `json:"taxRate"`
	AcceptingOrders bool           `json:"acceptingOrders"`
	PauseMessage    string         `json:"pauseMessage"`
}

// DefaultHours is the schedule a fresh deployment starts with: open every day
// except Monday, 11:00 to 21:00.
func DefaultHours() map[string]DayHours {
	hours := make(map[string]DayHours, 7)
	for _, day := range []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"} {
		hours[day] = DayHours{Open: day != "monday", OpensAt: "11:00", ClosesAt: "21:00"}
	}
	return hours
}

// OpenAt reports whether the schedule has the kitchen open at t. Times
// compare lexically, which works for zero-padded "HH:MM" strings.
func OpenAt(hours map[string]DayHours, t time.Time) bool {
	day, ok := hours[strings.ToLower(t.Weekday().String())]
	if !ok || !day.Open {
		return false
	}
	clock := t.Format("15:04")
	return clock >= day.OpensAt && clock < day.ClosesAt
}

// OpenNow evaluates the stored hours against the local clock.
func (s BusinessSettings) OpenNow() bool {
	var hours map[string]DayHours
	if err := json.Unmarshal(s.Hours, &hours); err != nil {
		return false
	}
	return OpenAt(hours, time.Now())
}

func DefaultSettings() BusinessSettings {
	hoursJSON, _ := json.Marshal(DefaultHours())
	return BusinessSettings{
		Address:         "1 Mission Plaza, San Luis Obispo, CA",
		Hours:           hoursJSON,
		PrepTimeBuffer:  0,
		TaxRate:         0.0875,
		AcceptingOrders: true,
	}
}
