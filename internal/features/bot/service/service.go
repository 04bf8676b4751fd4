package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	apperrors "affiliate-bot-backend/internal/common/errors"
	"affiliate-bot-backend/internal/features/bot/models"
	"affiliate-bot-backend/internal/features/bot/repository"
	earnings "affiliate-bot-backend/internal/features/earnings/service"
	usermodels "affiliate-bot-backend/internal/features/user/models"
	userrepo "affiliate-bot-backend/internal/features/user/repository"
	"affiliate-bot-backend/internal/service/notifications"
)

// ManualCycleResult is returned by an ad-hoc cycle trigger.
type ManualCycleResult struct {
	Report   models.CycleReport `json:"report"`
	Earnings earnings.Snapshot  `json:"earnings"`
	Credited float64            `json:"credited"`
}

type BotService interface {
	Start(ctx context.Context, userID int64, platform string, keywords, platforms []string) (*models.BotStatus, error)
	Stop(ctx context.Context, userID int64, platform string) (*models.BotStatus, error)
	Status(ctx context.Context, userID int64, platform string) (*models.BotStatus, error)
	TriggerCycle(ctx context.Context, userID int64, platform, keyword string) (*ManualCycleResult, error)
	ActiveTaskCount() int
	Shutdown()
}

// Timings groups the scheduling knobs; tests shrink them to near zero.
type Timings struct {
	CyclePeriod     time.Duration
	KeywordDelay    time.Duration
	DefaultKeywords []string
}

type botTask struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// botService schedules recurring cycles per (user, platform) key. The task
// registry holds at most one cancellable task per key: Start always retires
// the previous task before installing a new one, so repeated starts cannot
// leak timers.
type botService struct {
	repo     repository.BotRepository
	users    userrepo.UserRepository
	runner   *Runner
	earnings *earnings.Aggregator
	hub      notifications.Hub
	timings  Timings

	mu    sync.Mutex
	tasks map[string]*botTask
	wg    sync.WaitGroup

	logger *log.Logger
}

func NewBotService(repo repository.BotRepository, users userrepo.UserRepository, runner *Runner, aggregator *earnings.Aggregator, hub notifications.Hub, timings Timings) BotService {
	if timings.CyclePeriod <= 0 {
		timings.CyclePeriod = time.Minute
	}
	if len(timings.DefaultKeywords) == 0 {
		timings.DefaultKeywords = []string{"wireless earbuds", "phone accessories", "home gadgets"}
	}
	return &botService{
		repo:     repo,
		users:    users,
		runner:   runner,
		earnings: aggregator,
		hub:      hub,
		timings:  timings,
		tasks:    make(map[string]*botTask),
		logger:   log.New(os.Stdout, "[BotService] ", log.LstdFlags),
	}
}

func (s *botService) Start(ctx context.Context, userID int64, platform string, keywords, platforms []string) (*models.BotStatus, error) {
	if platform == "" {
		return nil, apperrors.NewValidationError("platform", "must not be empty")
	}
	if len(keywords) == 0 {
		keywords = s.timings.DefaultKeywords
	}
	if len(platforms) == 0 {
		platforms = []string{platform}
	}

	if _, err := s.users.GetOrCreate(ctx, userID, ""); err != nil {
		return nil, apperrors.NewStorageError("get or create user", err)
	}

	cfg := &models.BotConfig{
		UserID:    userID,
		Platform:  platform,
		Keywords:  keywords,
		Platforms: platforms,
		Active:    true,
		StartedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, apperrors.NewStorageError("save bot config", err)
	}

	if _, err := s.users.Update(ctx, userID, func(u *usermodels.User) error {
		u.ActivePlatforms[platform] = true
		u.AppendActivity(fmt.Sprintf("Bot started on %s", platform))
		return nil
	}); err != nil {
		s.logger.Printf("user update after start failed: %v", err)
	}

	s.installTask(userID, platform)
	s.logger.Printf("bot started user=%d platform=%s keywords=%d", userID, platform, len(keywords))

	return s.statusFromConfig(cfg), nil
}

// installTask replaces any existing task for the key with a fresh one.
// The old task is cancelled and drained first, which is what makes Start
// idempotent at the scheduler level. Checking the slot and inserting happen
// under the same lock acquisition, so a task is never running without being
// in the registry: concurrent Starts retire each other's tasks instead of
// orphaning them.
func (s *botService) installTask(userID int64, platform string) {
	key := models.Key(userID, platform)

	taskCtx, cancel := context.WithCancel(context.Background())
	task := &botTask{cancel: cancel, done: make(chan struct{})}

	for {
		s.mu.Lock()
		existing := s.tasks[key]
		if existing == nil {
			s.tasks[key] = task
			s.mu.Unlock()
			break
		}
		s.mu.Unlock()

		// The drained task removes itself from the registry before closing
		// done, so the next pass sees either an empty slot or a newer rival.
		existing.cancel()
		<-existing.done
	}

	s.wg.Add(1)
	go s.runLoop(taskCtx, task, key, userID, platform)
}

func (s *botService) runLoop(ctx context.Context, task *botTask, key string, userID int64, platform string) {
	defer s.wg.Done()
	defer close(task.done)
	defer func() {
		s.mu.Lock()
		if s.tasks[key] == task {
			delete(s.tasks, key)
		}
		s.mu.Unlock()
	}()

	ticker := time.NewTicker(s.timings.CyclePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, userID, platform)
		}
	}
}

// tick runs the scheduled pass: re-validate the active flag, cycle every
// configured keyword, then poll earnings and credit the delta.
func (s *botService) tick(ctx context.Context, userID int64, platform string) {
	cfg, err := s.repo.Get(ctx, userID, platform)
	if err != nil {
		if err != repository.ErrNotFound {
			s.logger.Printf("tick config read failed: %v", err)
		}
		return
	}
	// The timer can fire after Stop cleared the flag but before the task
	// was cancelled; that tick must be a no-op.
	if !cfg.Active {
		return
	}

	for i, keyword := range cfg.Keywords {
		if ctx.Err() != nil {
			return
		}
		report := s.runner.RunCycle(ctx, keyword, cfg.Platforms)
		s.publishPostEvents(ctx, userID, keyword, report)

		if i < len(cfg.Keywords)-1 {
			if !sleepCtx(ctx, s.timings.KeywordDelay) {
				return
			}
		}
	}

	snapshot := s.earnings.Collect(ctx)
	s.creditEarnings(ctx, userID, snapshot)
}

func (s *botService) publishPostEvents(ctx context.Context, userID int64, keyword string, report models.CycleReport) {
	for _, post := range report.Posts {
		s.hub.Publish(ctx, notifications.Event{
			Type:   notifications.EventBotActivity,
			UserID: userID,
			Payload: map[string]interface{}{
				"message":  fmt.Sprintf("Posted %q to %s", post.ProductTitle, post.Platform),
				"platform": post.Platform,
				"post_id":  post.PostID,
				"keyword":  keyword,
				"link":     post.Link,
			},
		})
	}
}

// creditEarnings applies the positive delta between the provider-reported
// cumulative total and the user's stored baseline. Re-polling the same
// cumulative figure credits nothing.
func (s *botService) creditEarnings(ctx context.Context, userID int64, snapshot earnings.Snapshot) float64 {
	if snapshot.Total <= 0 {
		return 0
	}

	var credited float64
	_, err := s.users.Update(ctx, userID, func(u *usermodels.User) error {
		delta := snapshot.Total - u.ReportedTotal
		if delta <= 0 {
			credited = 0
			return nil
		}
		u.ReportedTotal = snapshot.Total
		u.TotalEarnings += delta
		u.AvailableBalance += delta
		u.Revenue += delta
		u.Profit += delta
		u.AppendActivity(fmt.Sprintf("Earnings credited: $%.2f", delta))
		credited = delta
		return nil
	})
	if err != nil {
		s.logger.Printf("earnings credit failed user=%d: %v", userID, err)
		return 0
	}

	if credited > 0 {
		s.hub.Publish(ctx, notifications.Event{
			Type:   notifications.EventEarningUpdate,
			UserID: userID,
			Payload: map[string]interface{}{
				"credited":     credited,
				"total":        snapshot.Total,
				"per_provider": snapshot.PerProvider,
			},
		})
	}
	return credited
}

func (s *botService) Stop(ctx context.Context, userID int64, platform string) (*models.BotStatus, error) {
	if platform == "" {
		return nil, apperrors.NewValidationError("platform", "must not be empty")
	}

	cfg, err := s.repo.Get(ctx, userID, platform)
	if err != nil && err != repository.ErrNotFound {
		return nil, apperrors.NewStorageError("get bot config", err)
	}

	if cfg != nil {
		cfg.Active = false
		if err := s.repo.Save(ctx, cfg); err != nil {
			return nil, apperrors.NewStorageError("save bot config", err)
		}
		if _, err := s.users.Update(ctx, userID, func(u *usermodels.User) error {
			u.ActivePlatforms[platform] = false
			u.AppendActivity(fmt.Sprintf("Bot stopped on %s", platform))
			return nil
		}); err != nil {
			s.logger.Printf("user update after stop failed: %v", err)
		}
	}

	// Cancel the tracked task and wait for it to drain. An in-flight tick
	// finishes its current external call chain before the task exits.
	key := models.Key(userID, platform)
	s.mu.Lock()
	task := s.tasks[key]
	delete(s.tasks, key)
	s.mu.Unlock()
	if task != nil {
		task.cancel()
		<-task.done
	}

	s.logger.Printf("bot stopped user=%d platform=%s", userID, platform)

	if cfg == nil {
		return &models.BotStatus{Platform: platform, Active: false}, nil
	}
	return s.statusFromConfig(cfg), nil
}

func (s *botService) Status(ctx context.Context, userID int64, platform string) (*models.BotStatus, error) {
	if platform == "" {
		return nil, apperrors.NewValidationError("platform", "must not be empty")
	}

	cfg, err := s.repo.Get(ctx, userID, platform)
	if err != nil {
		if err == repository.ErrNotFound {
			return &models.BotStatus{Platform: platform, Active: false}, nil
		}
		return nil, apperrors.NewStorageError("get bot config", err)
	}
	return s.statusFromConfig(cfg), nil
}

func (s *botService) statusFromConfig(cfg *models.BotConfig) *models.BotStatus {
	s.mu.Lock()
	_, running := s.tasks[models.Key(cfg.UserID, cfg.Platform)]
	s.mu.Unlock()

	return &models.BotStatus{
		Platform:  cfg.Platform,
		Active:    cfg.Active,
		Running:   running,
		Keywords:  cfg.Keywords,
		Platforms: cfg.Platforms,
		StartedAt: cfg.StartedAt,
	}
}

// TriggerCycle runs one ad-hoc cycle outside the schedule. The bot must
// have been started first; rejecting before any fetch or publish keeps a
// bad call free of side effects.
func (s *botService) TriggerCycle(ctx context.Context, userID int64, platform, keyword string) (*ManualCycleResult, error) {
	if platform == "" {
		return nil, apperrors.NewValidationError("platform", "must not be empty")
	}

	cfg, err := s.repo.Get(ctx, userID, platform)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NewBotNotStartedError(userID, platform)
		}
		return nil, apperrors.NewStorageError("get bot config", err)
	}
	if !cfg.Active {
		return nil, apperrors.NewBotNotStartedError(userID, platform)
	}

	if keyword == "" {
		if len(cfg.Keywords) == 0 {
			return nil, apperrors.NewValidationError("keyword", "must not be empty")
		}
		keyword = cfg.Keywords[0]
	}

	report := s.runner.RunCycle(ctx, keyword, cfg.Platforms)
	s.publishPostEvents(ctx, userID, keyword, report)

	snapshot := s.earnings.Collect(ctx)
	credited := s.creditEarnings(ctx, userID, snapshot)

	return &ManualCycleResult{Report: report, Earnings: snapshot, Credited: credited}, nil
}

// ActiveTaskCount reports how many scheduled tasks are installed.
func (s *botService) ActiveTaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Shutdown cancels every task and waits for the loops to drain.
func (s *botService) Shutdown() {
	s.mu.Lock()
	tasks := make([]*botTask, 0, len(s.tasks))
	for key, task := range s.tasks {
		tasks = append(tasks, task)
		delete(s.tasks, key)
	}
	s.mu.Unlock()

	for _, task := range tasks {
		task.cancel()
	}
	s.wg.Wait()
}
