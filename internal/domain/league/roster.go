// Package league holds the participant/team roster of a league and the rules
// for turning raw game-history identifiers into roster participants.
package league

import (
	"fmt"
	"strings"
)

// Default identifier handling for the game history API.
const (
	DefaultComputerSentinel = "cpu"
)

// DefaultMarkers are formatting markers the API embeds in display names.
var DefaultMarkers = []string{"^b53^", "^b54^"} //nolint:gochecknoglobals // read-only defaults

// Member binds a participant (game account) to the team they manage.
type Member struct {
	Participant string `koanf:"participant" yaml:"participant"`
	Team        string `koanf:"team" yaml:"team"`
}

// Option applies a configuration option to the Roster.
type Option func(*Roster)

// WithMarkers replaces the formatting markers stripped during normalization.
func WithMarkers(markers []string) Option {
	return func(r *Roster) {
		if markers != nil {
			r.markers = append([]string(nil), markers...)
		}
	}
}

// WithComputerSentinel sets the identifier used for computer-controlled sides.
func WithComputerSentinel(sentinel string) Option {
	return func(r *Roster) {
		if s := strings.ToLower(strings.TrimSpace(sentinel)); s != "" {
			r.sentinel = s
		}
	}
}

// Roster is an immutable one-to-one mapping between participants and teams.
type Roster struct {
	members  []Member
	markers  []string
	sentinel string

	teamByKey  map[string]string // normalized participant -> team
	keyByTeam  map[string]string // team -> normalized participant
	userByTeam map[string]string // team -> participant as configured
}

// NewRoster validates members and builds the lookup tables. Two members may
// not share a participant (after normalization) or a team.
func NewRoster(members []Member, opts ...Option) (*Roster, error) {
	r := &Roster{
		markers:  append([]string(nil), DefaultMarkers...),
		sentinel: DefaultComputerSentinel,
	}
	for _, opt := range opts {
		opt(r)
	}
	if len(members) == 0 {
		return nil, ErrEmptyRoster
	}

	r.members = make([]Member, 0, len(members))
	r.teamByKey = make(map[string]string, len(members))
	r.keyByTeam = make(map[string]string, len(members))
	r.userByTeam = make(map[string]string, len(members))
	for _, m := range members {
		team := strings.TrimSpace(m.Team)
		key := r.Normalize(m.Participant)
		if team == "" || key == "" {
			return nil, fmt.Errorf("%w: %q -> %q", ErrBlankIdentity, m.Participant, m.Team)
		}
		if prev, ok := r.teamByKey[key]; ok {
			return nil, fmt.Errorf("%w: participant %q already manages %q", ErrNotBijective, m.Participant, prev)
		}
		if prev, ok := r.userByTeam[team]; ok {
			return nil, fmt.Errorf("%w: team %q already managed by %q", ErrNotBijective, team, prev)
		}
		r.teamByKey[key] = team
		r.keyByTeam[team] = key
		r.userByTeam[team] = m.Participant
		r.members = append(r.members, Member{Participant: m.Participant, Team: team})
	}
	return r, nil
}

// Members returns the roster in configured order.
func (r *Roster) Members() []Member {
	return append([]Member(nil), r.members...)
}

// Len returns the number of members.
func (r *Roster) Len() int { return len(r.members) }

// Normalize strips formatting markers, case-folds and trims an identifier.
func (r *Roster) Normalize(id string) string {
	for _, m := range r.markers {
		if m != "" {
			id = strings.ReplaceAll(id, m, "")
		}
	}
	return strings.TrimSpace(strings.ToLower(id))
}

// IsComputer reports whether a normalized identifier is the computer sentinel.
func (r *Roster) IsComputer(key string) bool {
	return key == r.sentinel
}

// TeamOf returns the team managed by a normalized participant key.
func (r *Roster) TeamOf(key string) (string, bool) {
	t, ok := r.teamByKey[key]
	return t, ok
}

// ParticipantOf returns the participant managing team, as configured.
func (r *Roster) ParticipantOf(team string) string {
	return r.userByTeam[team]
}

// Resolve turns a normalized side identifier into a participant key. A
// computer side is attributed to the participant managing fullName.
func (r *Roster) Resolve(key, fullName string) (string, bool) {
	if !r.IsComputer(key) {
		return key, true
	}
	return ResolveComputer(r.keyByTeam, fullName)
}

// ResolveComputer looks up the participant of a computer-controlled side by
// the side's full team name. The lookup is exact.
func ResolveComputer(teams map[string]string, fullName string) (string, bool) {
	p, ok := teams[fullName]
	return p, ok
}
