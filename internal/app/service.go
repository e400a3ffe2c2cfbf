// Package service provides the core business service that implements the
// dependencies required by the HTTP API: pool access, proposal lifecycle,
// the asynchronous build pipeline, and the dashboard.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/benchwise/teamforge/internal/adapters/mq/queue"
	workerpool "github.com/benchwise/teamforge/internal/adapters/mq/worker"
	"github.com/benchwise/teamforge/internal/adapters/repository"
	"github.com/benchwise/teamforge/internal/domain/guard"
	"github.com/benchwise/teamforge/internal/domain/model"
	"github.com/benchwise/teamforge/internal/domain/ranking"
	"github.com/benchwise/teamforge/internal/domain/scoring"
	"github.com/benchwise/teamforge/internal/domain/team"
	"github.com/benchwise/teamforge/pkg/logger"
	"github.com/benchwise/teamforge/pkg/metrics"
)

// Service errors.
var (
	// ErrBuildInFlight is returned when a proposal already has a build pass
	// queued or running.
	ErrBuildInFlight = errors.New("build already in flight for proposal")
	// ErrQueueFull is returned when the job queue refuses a build.
	ErrQueueFull = errors.New("build queue is full")
	// ErrValidation wraps rejected input.
	ErrValidation = errors.New("invalid input")
)

// Service wires the stores, the ranking engine, the selection boards and
// the asynchronous build pipeline together.
type Service struct {
	mu sync.RWMutex

	pool          repository.PoolStore
	proposals     repository.ProposalStore
	opportunities repository.OpportunityStore

	engine     *ranking.Engine
	boards     map[string]*team.Board
	buildGuard guard.Guard
	jobQueue   jobqueue.Queue
	workers    []*workerpool.InMemoryWorker

	workerCount     int
	queueSize       int
	topSuggestions  int
	slotMinScore    int
	slotEffortDays  int
	buildMinLatency time.Duration
	buildMaxLatency time.Duration
	confidenceHigh  int
	confidenceMed   int

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of build workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the build job queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithTopSuggestions caps the ranked list per requirement.
func WithTopSuggestions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topSuggestions = n
		}
	}
}

// WithSlotMinScore sets the slot-mode score floor.
func WithSlotMinScore(minScore int) Option {
	return func(s *Service) {
		if minScore >= 0 {
			s.slotMinScore = minScore
		}
	}
}

// WithSlotEffortDays sets the placeholder engagement length for slot costing.
func WithSlotEffortDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.slotEffortDays = days
		}
	}
}

// WithBuildLatencyRange bounds the simulated analysis delay. A zero range
// disables the delay; tests use that.
func WithBuildLatencyRange(minLatency, maxLatency time.Duration) Option {
	return func(s *Service) {
		if minLatency >= 0 && maxLatency >= minLatency {
			s.buildMinLatency = minLatency
			s.buildMaxLatency = maxLatency
		}
	}
}

// WithConfidenceThresholds sets the summary confidence cut-offs.
func WithConfidenceThresholds(high, medium int) Option {
	return func(s *Service) {
		if high >= medium && medium >= 0 {
			s.confidenceHigh = high
			s.confidenceMed = medium
		}
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

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		boards:          make(map[string]*team.Board),
		workerCount:     runtime.NumCPU(),
		queueSize:       1024,
		topSuggestions:  5,
		slotMinScore:    20,
		slotEffortDays:  30,
		buildMinLatency: 400 * time.Millisecond,
		buildMaxLatency: 900 * time.Millisecond,
		confidenceHigh:  70,
		confidenceMed:   50,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the stores, the ranking engine and the worker pool.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting matching service")

	s.pool = repository.NewPoolStore()
	s.proposals = repository.NewProposalStore()
	s.opportunities = repository.NewOpportunityStore()
	s.buildGuard = guard.NewInMemoryGuard()
	s.engine = ranking.NewEngine(scoring.NewMatcher(),
		ranking.WithTopN(s.topSuggestions),
		ranking.WithSlotMinScore(s.slotMinScore),
		ranking.WithSlotEffortDays(s.slotEffortDays),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(jobqueue.WithCapacity(s.queueSize))

	s.workers = make([]*workerpool.InMemoryWorker, 0, s.workerCount)
	for i := 0; i < s.workerCount; i++ {
		w := workerpool.NewInMemoryWorker(s.jobQueue, s,
			workerpool.WithName(fmt.Sprintf("build-worker-%d", i)),
		)
		s.workers = append(s.workers, w)
		go w.Run(ctx)
	}
	metrics.UpdateWorkerCount(s.workerCount)

	s.started = true
	s.logger.Info(ctx, "matching service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("topSuggestions", s.topSuggestions),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping matching service")

	if err := s.jobQueue.Close(); err != nil {
		s.logger.Warn(ctx, "queue close failed", logger.Error(err))
	}
	for _, w := range s.workers {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := w.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn(ctx, "worker shutdown timed out", logger.Error(err))
		}
		cancel()
	}

	s.started = false
	s.logger.Info(ctx, "matching service stopped")
}

// Seed loads the demo data set into the stores.
func (s *Service) Seed(ctx context.Context, resources []model.Resource, opportunities []model.Opportunity, proposals []model.Proposal) error {
	for _, res := range resources {
		if err := s.pool.Put(ctx, res); err != nil {
			return fmt.Errorf("seeding resource %s: %w", res.ID, err)
		}
	}
	for _, opp := range opportunities {
		if err := s.opportunities.Create(ctx, opp); err != nil {
			return fmt.Errorf("seeding opportunity %s: %w", opp.ID, err)
		}
	}
	for _, p := range proposals {
		if err := s.proposals.Create(ctx, p); err != nil {
			return fmt.Errorf("seeding proposal %s: %w", p.ID, err)
		}
	}

	metrics.UpdatePoolSize(s.pool.Count(ctx))
	s.logger.Info(ctx, "demo data seeded",
		logger.Int("resources", len(resources)),
		logger.Int("opportunities", len(opportunities)),
		logger.Int("proposals", len(proposals)),
	)
	return nil
}

// StartBuild queues a ranking pass for the proposal. At most one pass per
// proposal runs at a time; a second request is refused with ErrBuildInFlight.
func (s *Service) StartBuild(ctx context.Context, proposalID string) (string, error) {
	return s.enqueueJob(ctx, proposalID, jobqueue.KindBuild)
}

// StartUpload queues the simulated document parse for the proposal.
func (s *Service) StartUpload(ctx context.Context, proposalID string) (string, error) {
	return s.enqueueJob(ctx, proposalID, jobqueue.KindUpload)
}

func (s *Service) enqueueJob(ctx context.Context, proposalID string, kind jobqueue.Kind) (string, error) {
	if _, err := s.proposals.Get(ctx, proposalID); err != nil {
		return "", err
	}
	if !s.buildGuard.Acquire(ctx, proposalID) {
		metrics.RecordBuildRejected()
		return "", ErrBuildInFlight
	}

	job := jobqueue.Job{
		ID:         uuid.NewString(),
		Kind:       kind,
		ProposalID: proposalID,
		EnqueuedAt: time.Now(),
	}
	if !s.jobQueue.Enqueue(ctx, job) {
		s.buildGuard.Release(ctx, proposalID)
		return "", ErrQueueFull
	}

	s.logger.Info(ctx, "job queued",
		logger.String("job", job.ID),
		logger.String("kind", string(kind)),
		logger.String("proposal", proposalID),
	)
	return job.ID, nil
}

// BuildInFlight reports whether a pass is queued or running for the proposal.
func (s *Service) BuildInFlight(ctx context.Context, proposalID string) bool {
	if s.buildGuard.Acquire(ctx, proposalID) {
		s.buildGuard.Release(ctx, proposalID)
		return false
	}
	return true
}

// Process executes one dequeued job. It satisfies the worker pool's
// Processor interface.
func (s *Service) Process(ctx context.Context, job jobqueue.Job) error {
	defer s.buildGuard.Release(ctx, job.ProposalID)

	if err := s.simulateAnalysisDelay(ctx); err != nil {
		return err
	}

	switch job.Kind {
	case jobqueue.KindBuild:
		return s.runBuildPass(ctx, job.ProposalID)
	case jobqueue.KindUpload:
		return s.runUploadParse(ctx, job.ProposalID)
	default:
		return fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

// simulateAnalysisDelay stands in for the external analysis call. The sleep
// is context-aware so shutdown does not hang on it.
func (s *Service) simulateAnalysisDelay(ctx context.Context) error {
	if s.buildMaxLatency <= 0 {
		return nil
	}
	delay := s.buildMinLatency
	if jitter := s.buildMaxLatency - s.buildMinLatency; jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(jitter)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("analysis delay interrupted: %w", ctx.Err())
	}
}

// runBuildPass ranks the whole pool against every requirement and slot of
// the proposal and swaps the results into its board in one locked update.
// Prior selections, manual overrides included, are discarded.
func (s *Service) runBuildPass(ctx context.Context, proposalID string) error {
	start := time.Now()

	p, err := s.proposals.Get(ctx, proposalID)
	if err != nil {
		return err
	}
	pool, err := s.pool.List(ctx, repository.ResourceFilter{})
	if err != nil {
		return err
	}

	type ranked struct {
		key     string
		members []model.TeamMember
	}
	results := make([]ranked, 0, len(p.Requirements)+len(p.Slots))
	total := 0

	for _, req := range p.Requirements {
		members, err := s.engine.RankForRequirement(ctx, pool, req)
		if err != nil {
			return fmt.Errorf("ranking requirement %s: %w", req.ID, err)
		}
		results = append(results, ranked{key: req.ID, members: members})
		total += len(members)
	}
	for _, slot := range p.Slots {
		members, err := s.engine.RankForSlot(ctx, pool, slot)
		if err != nil {
			return fmt.Errorf("ranking slot %s: %w", slot.ID, err)
		}
		results = append(results, ranked{key: slot.ID, members: members})
		total += len(members)
	}

	s.mu.Lock()
	board := s.boardLocked(proposalID)
	board.Reset()
	for _, r := range results {
		board.SetSuggestions(r.key, r.members)
	}
	s.mu.Unlock()

	if p.Status == model.ProposalDraft {
		p.Status = model.ProposalInProgress
		if err := s.proposals.Update(ctx, p); err != nil {
			return err
		}
	}

	metrics.RecordBuildPass()
	metrics.RecordSuggestions(total)
	metrics.RecordRankingLatency(float64(time.Since(start).Milliseconds()))

	s.logger.Info(ctx, "build pass done",
		logger.String("proposal", proposalID),
		logger.Int("keys", len(results)),
		logger.Int("suggestions", total),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

// runUploadParse emits the canned extraction the demo document parser
// produces: three roles replacing the proposal's requirement list.
func (s *Service) runUploadParse(ctx context.Context, proposalID string) error {
	p, err := s.proposals.Get(ctx, proposalID)
	if err != nil {
		return err
	}

	p.Requirements = parsedRequirements()
	p.Slots = nil
	p.Status = model.ProposalDraft
	if err := s.proposals.Update(ctx, p); err != nil {
		return err
	}

	s.mu.Lock()
	if board, ok := s.boards[proposalID]; ok {
		board.Reset()
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "upload parsed",
		logger.String("proposal", proposalID),
		logger.Int("requirements", len(p.Requirements)),
	)
	return nil
}

// parsedRequirements is the fixed output of the simulated document parse.
func parsedRequirements() []model.RoleRequirement {
	return []model.RoleRequirement{
		{
			ID:              uuid.NewString(),
			RoleName:        "Frontend Developer",
			RequiredSkills:  []string{"React", "TypeScript"},
			ExperienceLevel: model.LevelMid,
			EffortDays:      45,
			StartDate:       "2026-10-01",
			EndDate:         "2026-12-15",
		},
		{
			ID:              uuid.NewString(),
			RoleName:        "Backend Developer",
			RequiredSkills:  []string{"Node.js", "PostgreSQL"},
			ExperienceLevel: model.LevelSenior,
			EffortDays:      60,
			StartDate:       "2026-10-01",
			EndDate:         "2027-01-15",
		},
		{
			ID:              uuid.NewString(),
			RoleName:        "QA Engineer",
			RequiredSkills:  []string{"Python"},
			ExperienceLevel: model.LevelMid,
			EffortDays:      30,
			StartDate:       "2026-11-01",
			EndDate:         "2026-12-15",
		},
	}
}

// boardLocked returns the proposal's board, creating it on first use.
// Callers hold s.mu.
func (s *Service) boardLocked(proposalID string) *team.Board {
	board, ok := s.boards[proposalID]
	if !ok {
		board = team.NewBoard(team.WithConfidenceThresholds(s.confidenceHigh, s.confidenceMed))
		s.boards[proposalID] = board
	}
	return board
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":        s.started,
		"workerCount":    s.workerCount,
		"queueSize":      s.queueSize,
		"topSuggestions": s.topSuggestions,
	}

	if s.started {
		poolSize := s.pool.Count(ctx)
		queueLen := s.jobQueue.Len(ctx)
		buildsInFlight := s.buildGuard.InFlight()

		stats["poolSize"] = poolSize
		stats["queueLength"] = queueLen
		stats["buildsInFlight"] = buildsInFlight

		metrics.UpdatePoolSize(poolSize)
		metrics.UpdateQueueSize(queueLen)
	}

	return stats
}
