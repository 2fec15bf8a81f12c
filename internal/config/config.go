// Package config defines the standings builder configuration and its loader.
//
// Conventions:
// - New() returns the built-in SDC league defaults.
// - Load layers a YAML file and SDC_* environment variables on top.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"fmt"
	"time"

	"github.com/okian/sdc-standings/internal/domain/league"
	"github.com/okian/sdc-standings/internal/domain/scoring"
)

// SeasonStartLayout is the layout of Config.SeasonStart.
const SeasonStartLayout = "2006-01-02"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" yaml:"log_level"`

	// APIURL is the game history endpoint.
	APIURL string `koanf:"api_url" yaml:"api_url"`

	// Platform is sent as the platform query parameter, e.g. "psn".
	Platform string `koanf:"platform" yaml:"platform"`

	// RequestTimeout is the deadline of a single page request.
	RequestTimeout time.Duration `koanf:"request_timeout" yaml:"request_timeout"`

	// UserAgent is sent with every page request.
	UserAgent string `koanf:"user_agent" yaml:"user_agent"`

	// SeasonStart (YYYY-MM-DD); earlier games are ignored.
	SeasonStart string `koanf:"season_start" yaml:"season_start"`

	// LeagueMode is the game_mode tag that counts toward the standings.
	LeagueMode string `koanf:"league_mode" yaml:"league_mode"`

	// Scheduled is the number of games each team is scheduled to play.
	Scheduled int `koanf:"scheduled" yaml:"scheduled"`

	// Cutoff is the rank after which presenters draw the playoff line.
	Cutoff int `koanf:"cutoff" yaml:"cutoff"`

	// ComputerSentinel is the side name used for computer-controlled teams.
	ComputerSentinel string `koanf:"computer_sentinel" yaml:"computer_sentinel"`

	// NameMarkers are stripped from display names before matching.
	NameMarkers []string `koanf:"name_markers" yaml:"name_markers"`

	// Members maps each participant to the team they manage.
	Members []league.Member `koanf:"members" yaml:"members"`

	// Adjustments holds manual mercy/forfeit corrections keyed by team.
	Adjustments map[string]scoring.Adjustment `koanf:"adjustments" yaml:"adjustments"`

	// OutputDir receives the HTML, JSON and JS files.
	OutputDir string `koanf:"output_dir" yaml:"output_dir"`
	HTMLFile  string `koanf:"html_file" yaml:"html_file"`
	JSONFile  string `koanf:"json_file" yaml:"json_file"`
	JSFile    string `koanf:"js_file" yaml:"js_file"`

	// JSVariable is the global the script payload is assigned to.
	JSVariable string `koanf:"js_variable" yaml:"js_variable"`

	// MetricsTextfile, when set, receives Prometheus metrics after a build.
	MetricsTextfile string `koanf:"metrics_textfile" yaml:"metrics_textfile"`

	// Addr is the HTTP listen address of the serve command.
	Addr string `koanf:"addr" yaml:"addr"`

	// RefreshInterval is how often the serve command rebuilds the table.
	RefreshInterval time.Duration `koanf:"refresh_interval" yaml:"refresh_interval"`
}

// New creates a Config holding the SDC league defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		APIURL:           "https://mlb25.theshow.com/apis/game_history.json",
		Platform:         "psn",
		RequestTimeout:   20 * time.Second,
		UserAgent:        "sdc-standings/1.0",
		SeasonStart:      "2025-08-23",
		LeagueMode:       "LEAGUE",
		Scheduled:        12,
		Cutoff:           8,
		ComputerSentinel: league.DefaultComputerSentinel,
		NameMarkers:      append([]string(nil), league.DefaultMarkers...),
		Members: []league.Member{
			{Participant: "Junior192415", Team: "Dodgers"},
			{Participant: "Yosoyreynoso_", Team: "Padres"},
			{Participant: "edwar13-21", Team: "Yankees"},
			{Participant: "Passing-wile5", Team: "Brewers"},
			{Participant: "LuisMiguelRD", Team: "Phillies"},
			{Participant: "rauz-444", Team: "Braves"},
			{Participant: "ALEXCONDE01", Team: "Cubs"},
			{Participant: "Joshuan_c95", Team: "Mariners"},
			{Participant: "MVP140605", Team: "Blue Jays"},
			{Participant: "SergiioRD", Team: "Tigers"},
			{Participant: "vicentealoise", Team: "Mets"},
			{Participant: "Ernerst12cuba", Team: "Astros"},
			{Participant: "Bititi2024", Team: "Diamondbacks"},
		},
		Adjustments:     map[string]scoring.Adjustment{},
		OutputDir:       ".",
		HTMLFile:        "tabla_SDC.html",
		JSONFile:        "standings.json",
		JSFile:          "standings.js",
		JSVariable:      "window.STANDINGS",
		Addr:            ":9080",
		RefreshInterval: 15 * time.Minute,
	}
}

// SeasonStartTime parses SeasonStart as a UTC midnight.
func (c *Config) SeasonStartTime() (time.Time, error) {
	t, err := time.Parse(SeasonStartLayout, c.SeasonStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: season_start %q: %w", ErrInvalidConfig, c.SeasonStart, err)
	}
	return t, nil
}

// Roster builds the league roster described by the configuration.
func (c *Config) Roster() (*league.Roster, error) {
	r, err := league.NewRoster(c.Members,
		league.WithMarkers(c.NameMarkers),
		league.WithComputerSentinel(c.ComputerSentinel),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return r, nil
}

// Validate checks the configuration for values the builder cannot use.
func (c *Config) Validate() error {
	switch {
	case c.APIURL == "":
		return fmt.Errorf("%w: api_url must not be empty", ErrInvalidConfig)
	case c.LeagueMode == "":
		return fmt.Errorf("%w: league_mode must not be empty", ErrInvalidConfig)
	case c.Scheduled <= 0:
		return fmt.Errorf("%w: scheduled must be positive", ErrInvalidConfig)
	case c.Cutoff < 0:
		return fmt.Errorf("%w: cutoff must not be negative", ErrInvalidConfig)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalidConfig)
	}
	if _, err := c.SeasonStartTime(); err != nil {
		return err
	}
	if _, err := c.Roster(); err != nil {
		return err
	}
	return nil
}
