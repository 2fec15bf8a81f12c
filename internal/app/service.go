// Package service builds the league standings: it pulls every participant's
// game history, tallies accepted matches and ranks the teams.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/sdc-standings/internal/domain/dedupe"
	"github.com/okian/sdc-standings/internal/domain/league"
	"github.com/okian/sdc-standings/internal/domain/model"
	"github.com/okian/sdc-standings/internal/domain/scoring"
	"github.com/okian/sdc-standings/internal/domain/types"
	"github.com/okian/sdc-standings/pkg/logger"
	"github.com/okian/sdc-standings/pkg/metrics"
)

// Fetcher retrieves the full game history of a participant. On failure it
// returns whatever was gathered before the error.
type Fetcher interface {
	FetchAll(ctx context.Context, username, platform string) ([]model.Game, error)
}

// Service aggregates game history into standings and keeps the latest build.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	fetcher    Fetcher
	roster     *league.Roster
	scorer     *scoring.Scorer
	newDeduper func() dedupe.Deduper

	// League rules
	seasonStart time.Time
	mode        string
	platform    string

	now       func() time.Time
	publisher func(context.Context, types.Payload) error
	logger    logger.Logger

	// State
	latest types.Payload
	ready  bool
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the game history source.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithRoster sets the league roster.
func WithRoster(r *league.Roster) Option {
	return func(s *Service) {
		if r != nil {
			s.roster = r
		}
	}
}

// WithScorer sets the scorer that ranks tallied teams.
func WithScorer(sc *scoring.Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithDeduperFactory sets how a fresh deduper is made for every build.
func WithDeduperFactory(fn func() dedupe.Deduper) Option {
	return func(s *Service) {
		if fn != nil {
			s.newDeduper = fn
		}
	}
}

// WithSeasonStart drops matches played before t.
func WithSeasonStart(t time.Time) Option {
	return func(s *Service) {
		s.seasonStart = t
	}
}

// WithLeagueMode sets the game mode tag that counts toward the standings.
func WithLeagueMode(mode string) Option {
	return func(s *Service) {
		if mode != "" {
			s.mode = mode
		}
	}
}

// WithPlatform sets the platform tag sent with history requests.
func WithPlatform(p string) Option {
	return func(s *Service) {
		if p != "" {
			s.platform = p
		}
	}
}

// WithClock overrides the time source used for generated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPublisher sets a hook Run calls with every successful build.
func WithPublisher(fn func(context.Context, types.Payload) error) Option {
	return func(s *Service) {
		s.publisher = fn
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		scorer:     scoring.New(),
		newDeduper: func() dedupe.Deduper { return dedupe.NewInMemoryDeduper() },
		mode:       "LEAGUE",
		platform:   "psn",
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Aggregate fetches every participant's history in roster order and tallies
// the accepted matches. A participant whose fetch fails contributes the pages
// retrieved before the failure. Only context cancellation is returned.
func (s *Service) Aggregate(ctx context.Context) (model.Table, error) {
	if s.fetcher == nil || s.roster == nil {
		return nil, ErrNotConfigured
	}
	log := s.log()

	table := make(model.Table, s.roster.Len())
	for _, m := range s.roster.Members() {
		table[m.Team] = &model.Counters{}
	}
	seen := s.newDeduper()

	for _, m := range s.roster.Members() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		games, err := s.fetcher.FetchAll(ctx, m.Participant, s.platform)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Warn(ctx, "history incomplete, keeping partial pages",
				logger.String("participant", m.Participant),
				logger.Int("games", len(games)),
				logger.Error(err),
			)
		}

		accepted := 0
		for i := range games {
			outcome := s.tally(ctx, table, seen, &games[i])
			metrics.RecordMatch(outcome)
			if outcome == metrics.OutcomeAccepted {
				accepted++
				continue
			}
			log.Debug(ctx, "match skipped",
				logger.String("participant", m.Participant),
				logger.String("reason", outcome),
				logger.String("display_date", games[i].DisplayDate),
				logger.String("home", games[i].HomeName),
				logger.String("away", games[i].AwayName),
			)
		}
		log.Info(ctx, "participant aggregated",
			logger.String("participant", m.Participant),
			logger.Int("games", len(games)),
			logger.Int("accepted", accepted),
		)
	}
	return table, nil
}

// tally applies one match record to table and reports its outcome.
func (s *Service) tally(ctx context.Context, table model.Table, seen dedupe.Deduper, g *model.Game) string {
	if g.DisplayDate == "" {
		return metrics.OutcomeNoDate
	}
	at, err := time.Parse(model.DisplayDateLayout, g.DisplayDate)
	if err != nil {
		return metrics.OutcomeBadDate
	}
	if at.Before(s.seasonStart) {
		return metrics.OutcomeBeforeSeason
	}
	if g.GameMode != s.mode {
		return metrics.OutcomeWrongMode
	}

	home, ok := s.roster.Resolve(s.roster.Normalize(g.HomeName), g.HomeFullName)
	if !ok {
		return metrics.OutcomeUnresolvedCPU
	}
	away, ok := s.roster.Resolve(s.roster.Normalize(g.AwayName), g.AwayFullName)
	if !ok {
		return metrics.OutcomeUnresolvedCPU
	}
	homeTeam, homeOK := s.roster.TeamOf(home)
	awayTeam, awayOK := s.roster.TeamOf(away)
	if !homeOK || !awayOK {
		return metrics.OutcomeUnknownParticipant
	}
	if home == away {
		return metrics.OutcomeSelfMatch
	}

	homeRuns, err := g.HomeRuns.Int()
	if err != nil {
		return metrics.OutcomeInvalidScore
	}
	awayRuns, err := g.AwayRuns.Int()
	if err != nil {
		return metrics.OutcomeInvalidScore
	}

	if seen.SeenAndRecord(ctx, dedupe.MatchKey(home, away, at)) {
		return metrics.OutcomeDuplicate
	}

	h, a := table[homeTeam], table[awayTeam]
	h.Played++
	a.Played++
	switch {
	case homeRuns > awayRuns:
		h.Won++
		a.Lost++
	case awayRuns > homeRuns:
		a.Won++
		h.Lost++
	default:
		h.Tied++
		a.Tied++
	}
	return metrics.OutcomeAccepted
}

// Build runs a full aggregation, ranks the teams and publishes the payload
// as the latest standings.
func (s *Service) Build(ctx context.Context) (types.Payload, error) {
	start := time.Now()
	log := s.log().With(logger.String("run_id", uuid.NewString()))
	log.Info(ctx, "standings build started", logger.Int("participants", s.rosterLen()))

	table, err := s.Aggregate(ctx)
	if err != nil {
		log.Error(ctx, "standings build aborted", logger.Error(err))
		return types.Payload{}, err
	}

	teams := make([]scoring.Team, 0, len(table))
	for _, m := range s.roster.Members() {
		teams = append(teams, scoring.Team{
			Name:        m.Team,
			Participant: m.Participant,
			Counters:    *table[m.Team],
		})
	}
	payload := types.Payload{
		GeneratedAt: s.now().UTC().Truncate(time.Second),
		Rows:        s.scorer.Rank(teams),
	}

	s.mu.Lock()
	s.latest = payload
	s.ready = true
	s.mu.Unlock()

	elapsed := time.Since(start)
	metrics.UpdateTeams(len(payload.Rows))
	metrics.RecordBuild(elapsed, payload.GeneratedAt)
	log.Info(ctx, "standings build finished",
		logger.Int("teams", len(payload.Rows)),
		logger.Duration("duration", elapsed),
	)
	return payload, nil
}

// Latest returns the most recent build and whether one exists.
func (s *Service) Latest() (types.Payload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.ready
}

// Run builds immediately and then every interval until ctx is done, handing
// each successful build to the publisher. A failed build keeps the previous
// standings.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	s.buildLogged(ctx)
	if interval <= 0 {
		<-ctx.Done()
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.buildLogged(ctx)
		}
	}
}

func (s *Service) buildLogged(ctx context.Context) {
	payload, err := s.Build(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.log().Error(ctx, "scheduled build failed", logger.Error(err))
		}
		return
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher(ctx, payload); err != nil {
		s.log().Error(ctx, "publishing standings failed", logger.Error(err))
	}
}

func (s *Service) rosterLen() int {
	if s.roster == nil {
		return 0
	}
	return s.roster.Len()
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Named("service")
	}
	return s.logger
}
