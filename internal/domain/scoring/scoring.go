// Package scoring turns per-team counters into ranked standings rows.
package scoring

import (
	"sort"

	"github.com/okian/sdc-standings/internal/domain/model"
)

// Point values. A mercy win is worth one point more than a regular win and a
// mercy loss one point less than a regular loss.
const (
	pointsPerWin           = 3
	pointsPerLoss          = 2
	pointsPerMercyGiven    = 1
	pointsPerMercyReceived = 1
)

// Adjustment is the manual correction recorded for one team.
type Adjustment struct {
	MercyGiven    int `koanf:"mercy_given" yaml:"mercy_given"`
	MercyReceived int `koanf:"mercy_received" yaml:"mercy_received"`
	Forfeits      int `koanf:"forfeits" yaml:"forfeits"`
}

// Team is the scorer's input for one team.
type Team struct {
	Name        string
	Participant string
	Counters    model.Counters
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithScheduled sets the number of games each team is scheduled to play.
func WithScheduled(n int) Option {
	return func(s *Scorer) {
		if n >= 0 {
			s.scheduled = n
		}
	}
}

// WithAdjustments sets the per-team manual adjustments, keyed by team name.
func WithAdjustments(adj map[string]Adjustment) Option {
	return func(s *Scorer) {
		s.adjustments = make(map[string]Adjustment, len(adj))
		for team, a := range adj {
			s.adjustments[team] = a
		}
	}
}

// Scorer computes standings rows.
type Scorer struct {
	scheduled   int
	adjustments map[string]Adjustment
}

// New creates a Scorer.
func New(opts ...Option) *Scorer {
	s := &Scorer{adjustments: map[string]Adjustment{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Row scores a single team.
func (s *Scorer) Row(t Team) model.Row {
	c := t.Counters
	adj := s.adjustments[t.Name]

	mg := clamp(adj.MercyGiven, 0, c.Won)
	mr := clamp(adj.MercyReceived, 0, c.Lost)
	ab := max(0, adj.Forfeits)

	pts := pointsPerWin*c.Won + pointsPerLoss*c.Lost + pointsPerMercyGiven*mg - pointsPerMercyReceived*mr

	return model.Row{
		Team:          t.Name,
		Participant:   t.Participant,
		Scheduled:     s.scheduled,
		Played:        c.Played,
		Won:           c.Won,
		Lost:          c.Lost,
		Remaining:     max(0, s.scheduled-c.Played),
		Points:        max(0, pts),
		MercyGiven:    mg,
		MercyReceived: mr,
		Forfeits:      ab,
		Tied:          c.Tied,
	}
}

// Rank scores every team and orders the rows.
func (s *Scorer) Rank(teams []Team) []model.Row {
	rows := make([]model.Row, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, s.Row(t))
	}
	Sort(rows)
	return rows
}

// rankKey is the composite ordering key (points, wins, played, -losses).
type rankKey [4]int

func keyOf(r model.Row) rankKey {
	return rankKey{r.Points, r.Won, r.Played, -r.Lost}
}

// greater compares keys lexicographically.
func (k rankKey) greater(o rankKey) bool {
	for i := range k {
		if k[i] != o[i] {
			return k[i] > o[i]
		}
	}
	return false
}

// Sort orders rows descending by the composite key: more points first, then
// more wins, then more games played, then fewer losses. Rows with equal keys
// keep their input order.
func Sort(rows []model.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return keyOf(rows[i]).greater(keyOf(rows[j]))
	})
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
