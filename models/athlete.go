package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// AthleteRecord is one scraped roster entry with its decoded tally.
type AthleteRecord struct {
	Nickname    string `json:"Nickname"`
	Fullname    string `json:"Fullname"`
	Weight      string `json:"Weight"`
	Record      string `json:"Record"`
	TotalWins   Count  `json:"totalwins"`
	TotalLosses Count  `json:"totalloss"`
	TotalDraws  Count  `json:"totaldraws"`
	TotalFights Count  `json:"totalfights"`
}

// Recount sets TotalFights from the three outcome counts.
func (a *AthleteRecord) Recount() {
	a.TotalFights = a.TotalWins + a.TotalLosses + a.TotalDraws
}

// IsEmpty reports whether the athlete has no wins, losses, or draws.
func (a AthleteRecord) IsEmpty() bool {
	return a.TotalWins == 0 && a.TotalLosses == 0 && a.TotalDraws == 0
}

// Count is a non-negative fight count. It is written as a JSON number but
// also accepts numeric strings ("21") on input.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*c = 0
			return nil
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid count %q", raw)
	}
	if n < 0 {
		return fmt.Errorf("count must not be negative, got %d", n)
	}
	*c = Count(n)
	return nil
}
