// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DisplayDateLayout is the layout of Game.DisplayDate as served by the
// game history API. Fields may come with or without zero padding.
const DisplayDateLayout = "1/2/2006 15:4:5"

// Game is one entry of a participant's game history.
type Game struct {
	DisplayDate  string `json:"display_date"`
	GameMode     string `json:"game_mode"`
	HomeName     string `json:"home_name"`
	AwayName     string `json:"away_name"`
	HomeFullName string `json:"home_full_name"`
	AwayFullName string `json:"away_full_name"`
	HomeRuns     Runs   `json:"home_runs"`
	AwayRuns     Runs   `json:"away_runs"`
}

// HistoryPage is one page of the game history endpoint.
type HistoryPage struct {
	Page        int    `json:"page"`
	TotalPages  int    `json:"total_pages"`
	GameHistory []Game `json:"game_history"`
}

// Runs is a score as reported by the API. It arrives as a number, a numeric
// string, an empty string or null; the raw text is kept and parsed on demand.
type Runs string

// UnmarshalJSON accepts numbers, strings and null.
func (r *Runs) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Runs(s)
		return nil
	}
	*r = Runs(b)
	return nil
}

// Int returns the score. Empty values count as zero and whole floats such
// as 5.0 are accepted; fractional or non-numeric values are errors.
func (r Runs) Int() (int, error) {
	s := strings.TrimSpace(string(r))
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid runs %q: %w", s, err)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("invalid runs %q: not a whole number", s)
	}
	return int(f), nil
}
