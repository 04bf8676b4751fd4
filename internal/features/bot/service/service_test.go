package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "affiliate-bot-backend/internal/common/errors"
	botmemory "affiliate-bot-backend/internal/features/bot/repository/memory"
	earnings "affiliate-bot-backend/internal/features/earnings/service"
	userrepo "affiliate-bot-backend/internal/features/user/repository"
	usermemory "affiliate-bot-backend/internal/features/user/repository/memory"
	"affiliate-bot-backend/internal/platform/publisher"
	"affiliate-bot-backend/internal/service/notifications"
)

type fakeProvider struct {
	mu     sync.Mutex
	name   string
	amount float64
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Earnings(ctx context.Context) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.amount, nil
}

func (p *fakeProvider) set(amount float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.amount = amount
}

type fixture struct {
	svc      BotService
	users    userrepo.UserRepository
	hub      *notifications.MemoryHub
	provider *fakeProvider
	twitter  *stubPublisher
}

func newFixture(t *testing.T) (*fixture, func()) {
	t.Helper()

	provider := &fakeProvider{name: "associates"}
	twitter := &stubPublisher{name: "twitter"}
	hub := notifications.NewMemoryHub()
	users := usermemory.NewUserRepository()

	runner := NewRunner(
		&stubSource{products: twoProducts()},
		publisher.NewRegistry(twitter),
		"demo-20", 5, 0,
	)

	svc := NewBotService(
		botmemory.NewBotRepository(),
		users,
		runner,
		earnings.NewAggregator(provider),
		hub,
		Timings{CyclePeriod: time.Hour, KeywordDelay: 0},
	)

	f := &fixture{
		svc:      svc,
		users:    users,
		hub:      hub,
		provider: provider,
		twitter:  twitter,
	}
	return f, svc.Shutdown
}

func TestStartInstallsSingleTask(t *testing.T) {
	f, shutdown := newFixture(t)
	defer shutdown()

	status, err := f.svc.Start(context.Background(), 7, "twitter", nil, nil)
	require.NoError(t, err)
	assert.True(t, status.Active)
	assert.True(t, status.Running)
	assert.NotEmpty(t, status.Keywords)
	assert.Equal(t, []string{"twitter"}, status.Platforms)
	assert.Equal(t, 1, f.svc.ActiveTaskCount())

	user, err := f.users.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, user.ActivePlatforms["twitter"])
	require.NotEmpty(t, user.ActivityLog)
	assert.Contains(t, user.ActivityLog[0].Message, "started")
}

func TestStartTwiceKeepsOneTask(t *testing.T) {
	f, shutdown := newFixture(t)
	defer shutdown()

	_, err := f.svc.Start(context.Background(), 7, "twitter", []string{"earbuds"}, nil)
	require.NoError(t, err)
	_, err = f.svc.Start(context.Background(), 7, "twitter", []string{"stands"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, f.svc.ActiveTaskCount())

	status, err := f.svc.Status(context.Background(), 7, "twitter")
	require.NoError(t, err)
	assert.Equal(t, []string{"stands"}, status.Keywords)
}

func TestStopCancelsTaskAndClearsFlag(t *testing.T) {
	f, shutdown := newFixture(t)
	defer shutdown()

	_, err := f.svc.Start(context.Background(), 7, "twitter", nil, nil)
	require.NoError(t, err)

	status, err := f.svc.Stop(context.Background(), 7, "twitter")
	require.NoError(t, err)
	assert.False(t, status.Active)
	assert.False(t, status.Running)
	assert.Equal(t, 0, f.svc.ActiveTaskCount())

	user, err := f.users.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, user.ActivePlatforms["twitter"])
}

func TestStopWithoutStartIsGraceful(t *testing.T) {
	f, shutdown := newFixture(t)
	defer shutdown()

	status, err := f.svc.Stop(context.Background(), 7, "twitter")
	require.NoError(t, err)
	assert.False(t, status.Active)
}

func TestTriggerCycleBeforeStartHasNoSideEffects(t *testing.T) {
	f, shutdown := newFixture(t)
	defer shutdown()

	_, err := f.svc.TriggerCycle(context.Background(), 7, "twitter", "earbuds")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeBotNotStarted, appErr.Code)

	assert.Zero(t, f.twitter.calls)
	assert.Empty(t, f.hub.Events())
}

func TestTriggerCyclePostsAndCreditsEarnings(t *testing.T) {
	f, shutdown := newFixture(t)
	defer shutdown()

	f.provider.set(10.00)

	_, err := f.svc.Start(context.Background(), 7, "twitter", []string{"earbuds"}, nil)
	require.NoError(t, err)

	result, err := f.svc.TriggerCycle(context.Background(), 7, "twitter", "earbuds")
	require.NoError(t, err)
	assert.Len(t, result.Report.Posts, 2)
	assert.Equal(t, 10.00, result.Credited)

	user, err := f.users.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 10.00, user.TotalEarnings)
	assert.Equal(t, 10.00, user.AvailableBalance)
	assert.Equal(t, 10.00, user.ReportedTotal)

	var activityEvents, earningEvents int
	for _, event := range f.hub.Events() {
		switch event.Type {
		case notifications.EventBotActivity:
			activityEvents++
		case notifications.EventEarningUpdate:
			earningEvents++
		}
	}
	assert.Equal(t, 2, activityEvents)
	assert.Equal(t, 1, earningEvents)
}

func TestEarningsCreditedOnlyOnPositiveDelta(t *testing.T) {
	f, shutdown := newFixture(t)
	defer shutdown()

	f.provider.set(25.00)

	_, err := f.svc.Start(context.Background(), 7, "twitter", []string{"earbuds"}, nil)
	require.NoError(t, err)

	first, err := f.svc.TriggerCycle(context.Background(), 7, "twitter", "earbuds")
	require.NoError(t, err)
	assert.Equal(t, 25.00, first.Credited)

	// Same cumulative total again: nothing new to credit.
	second, err := f.svc.TriggerCycle(context.Background(), 7, "twitter", "earbuds")
	require.NoError(t, err)
	assert.Zero(t, second.Credited)

	f.provider.set(40.00)
	third, err := f.svc.TriggerCycle(context.Background(), 7, "twitter", "earbuds")
	require.NoError(t, err)
	assert.Equal(t, 15.00, third.Credited)

	user, err := f.users.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 40.00, user.TotalEarnings)
	assert.Equal(t, 40.00, user.ReportedTotal)
}

func TestTriggerCycleAfterStopRejected(t *testing.T) {
	f, shutdown := newFixture(t)
	defer shutdown()

	_, err := f.svc.Start(context.Background(), 7, "twitter", nil, nil)
	require.NoError(t, err)
	_, err = f.svc.Stop(context.Background(), 7, "twitter")
	require.NoError(t, err)

	_, err = f.svc.TriggerCycle(context.Background(), 7, "twitter", "earbuds")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeBotNotStarted, appErr.Code)
}

func TestShutdownDrainsAllTasks(t *testing.T) {
	f, _ := newFixture(t)

	_, err := f.svc.Start(context.Background(), 7, "twitter", nil, nil)
	require.NoError(t, err)
	_, err = f.svc.Start(context.Background(), 7, "pinterest", nil, nil)
	require.NoError(t, err)
	_, err = f.svc.Start(context.Background(), 8, "twitter", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, f.svc.ActiveTaskCount())

	f.svc.Shutdown()
	assert.Equal(t, 0, f.svc.ActiveTaskCount())
}

func TestStatusUnknownBotInactive(t *testing.T) {
	f, shutdown := newFixture(t)
	defer shutdown()

	status, err := f.svc.Status(context.Background(), 7, "twitter")
	require.NoError(t, err)
	assert.False(t, status.Active)
	assert.False(t, status.Running)
}

func TestConcurrentStartsLeaveNoOrphanTask(t *testing.T) {
	f, _ := newFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Start(context.Background(), 7, "twitter", nil, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, f.svc.ActiveTaskCount())

	_, err := f.svc.Stop(context.Background(), 7, "twitter")
	require.NoError(t, err)
	assert.Equal(t, 0, f.svc.ActiveTaskCount())

	// A loop running outside the registry would keep the wait group from
	// draining here.
	done := make(chan struct{})
	go func() {
		f.svc.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("bot task still running after stop")
	}
}
