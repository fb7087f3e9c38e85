package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/comitanigiacomo/habitflow/internal/core/calendar"
	"github.com/comitanigiacomo/habitflow/internal/core/domain"
)

var _ domain.Store = (*MemoryStore)(nil)

type memoryData struct {
	users   map[string]*domain.User
	habits  map[string]*domain.Habit
	logs    map[string]*domain.HabitLog
	tasks   map[string]*domain.Task
	catalog map[string]*domain.Achievement
	earned  map[string]*domain.UserAchievement
}

func newMemoryData() *memoryData {
	return &memoryData{
		users:   make(map[string]*domain.User),
		habits:  make(map[string]*domain.Habit),
		logs:    make(map[string]*domain.HabitLog),
		tasks:   make(map[string]*domain.Task),
		catalog: make(map[string]*domain.Achievement),
		earned:  make(map[string]*domain.UserAchievement),
	}
}

func (d *memoryData) clone() *memoryData {
	c := newMemoryData()
	for k, v := range d.users {
		c.users[k] = copyUser(v)
	}
	for k, v := range d.habits {
		c.habits[k] = copyHabit(v)
	}
	for k, v := range d.logs {
		l := *v
		c.logs[k] = &l
	}
	for k, v := range d.tasks {
		c.tasks[k] = copyTask(v)
	}
	for k, v := range d.catalog {
		a := *v
		c.catalog[k] = &a
	}
	for k, v := range d.earned {
		ua := *v
		c.earned[k] = &ua
	}
	return c
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	if u.LastCompletedDate != nil {
		d := *u.LastCompletedDate
		c.LastCompletedDate = &d
	}
	return &c
}

func copyHabit(h *domain.Habit) *domain.Habit {
	c := *h
	c.Days = append([]int(nil), h.Days...)
	if h.SharedID != nil {
		s := *h.SharedID
		c.SharedID = &s
	}
	return &c
}

func copyTask(t *domain.Task) *domain.Task {
	c := *t
	if t.ScheduledDate != nil {
		d := *t.ScheduledDate
		c.ScheduledDate = &d
	}
	if t.CompletedDate != nil {
		d := *t.CompletedDate
		c.CompletedDate = &d
	}
	return &c
}

func logKey(habitID string, date time.Time) string {
	return habitID + "|" + calendar.Format(date)
}

// MemoryStore keeps everything in process memory. Transactions work on a
// private copy that replaces the live data on commit; they are serialized.
type MemoryStore struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *memoryData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: newMemoryData(),
	}
}

func (s *MemoryStore) Repos() domain.Repositories {
	return (&memoryView{store: s}).repos()
}

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos domain.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	working := s.data.clone()
	s.mu.RUnlock()

	if err := fn(ctx, (&memoryView{store: s, tx: working}).repos()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = working
	s.mu.Unlock()
	return nil
}

// memoryView reads the live data under the store lock, or a transaction's
// private copy without locking.
type memoryView struct {
	store *MemoryStore
	tx    *memoryData
}

func (v *memoryView) repos() domain.Repositories {
	return domain.Repositories{
		Users:        &memoryUserRepository{v},
		Habits:       &memoryHabitRepository{v},
		Logs:         &memoryHabitLogRepository{v},
		Tasks:        &memoryTaskRepository{v},
		Achievements: &memoryAchievementRepository{v},
	}
}

func (v *memoryView) read() (*memoryData, func()) {
	if v.tx != nil {
		return v.tx, func() {}
	}
	v.store.mu.RLock()
	return v.store.data, v.store.mu.RUnlock
}

func (v *memoryView) write() (*memoryData, func()) {
	if v.tx != nil {
		return v.tx, func() {}
	}
	v.store.mu.Lock()
	return v.store.data, v.store.mu.Unlock
}

type memoryUserRepository struct{ v *memoryView }

func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	d, done := r.v.write()
	defer done()

	if _, ok := d.users[user.ID]; ok {
		return domain.ErrConflict
	}
	for _, u := range d.users {
		if strings.EqualFold(u.Username, user.Username) {
			return domain.ErrConflict
		}
	}
	d.users[user.ID] = copyUser(user)
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	d, done := r.v.read()
	defer done()

	u, ok := d.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	d, done := r.v.read()
	defer done()

	for _, u := range d.users {
		if strings.EqualFold(u.Username, username) {
			return copyUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepository) UpdateStreak(ctx context.Context, user *domain.User) error {
	d, done := r.v.write()
	defer done()

	u, ok := d.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	updated := copyUser(user)
	u.CurrentStreak = updated.CurrentStreak
	u.LastCompletedDate = updated.LastCompletedDate
	return nil
}

type memoryHabitRepository struct{ v *memoryView }

func (r *memoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	d, done := r.v.write()
	defer done()

	if _, ok := d.users[habit.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := d.habits[habit.ID]; ok {
		return domain.ErrConflict
	}
	d.habits[habit.ID] = copyHabit(habit)
	return nil
}

func (r *memoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	d, done := r.v.read()
	defer done()

	h, ok := d.habits[id]
	if !ok {
		return nil, domain.ErrHabitNotFound
	}
	return copyHabit(h), nil
}

func (r *memoryHabitRepository) list(userID string, keep func(*domain.Habit) bool) []*domain.Habit {
	d, done := r.v.read()
	defer done()

	habits := make([]*domain.Habit, 0)
	for _, h := range d.habits {
		if h.UserID == userID && keep(h) {
			habits = append(habits, copyHabit(h))
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		if !habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].CreatedAt.Before(habits[j].CreatedAt)
		}
		return habits[i].ID < habits[j].ID
	})
	return habits
}

func (r *memoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return r.list(userID, func(*domain.Habit) bool { return true }), nil
}

func (r *memoryHabitRepository) ListByFrequency(ctx context.Context, userID, frequency string) ([]*domain.Habit, error) {
	return r.list(userID, func(h *domain.Habit) bool { return h.Frequency == frequency }), nil
}

func (r *memoryHabitRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	return len(r.list(userID, func(*domain.Habit) bool { return true })), nil
}

func (r *memoryHabitRepository) Delete(ctx context.Context, id string) error {
	d, done := r.v.write()
	defer done()

	if _, ok := d.habits[id]; !ok {
		return domain.ErrHabitNotFound
	}

	delete(d.habits, id)
	for k, l := range d.logs {
		if l.HabitID == id {
			delete(d.logs, k)
		}
	}
	return nil
}

type memoryHabitLogRepository struct{ v *memoryView }

func (r *memoryHabitLogRepository) GetByHabitAndDate(ctx context.Context, habitID string, date time.Time) (*domain.HabitLog, error) {
	d, done := r.v.read()
	defer done()

	l, ok := d.logs[logKey(habitID, date)]
	if !ok {
		return nil, domain.ErrLogNotFound
	}
	c := *l
	return &c, nil
}

func (r *memoryHabitLogRepository) Save(ctx context.Context, log *domain.HabitLog) error {
	d, done := r.v.write()
	defer done()

	if _, ok := d.habits[log.HabitID]; !ok {
		return domain.ErrHabitNotFound
	}

	key := logKey(log.HabitID, log.Date)
	if existing, ok := d.logs[key]; ok {
		existing.Value = log.Value
		existing.Completed = log.Completed
		log.ID = existing.ID
		return nil
	}

	c := *log
	c.Date = calendar.Day(log.Date)
	d.logs[key] = &c
	return nil
}

func sortLogs(logs []*domain.HabitLog) {
	sort.Slice(logs, func(i, j int) bool {
		if !logs[i].Date.Equal(logs[j].Date) {
			return logs[i].Date.Before(logs[j].Date)
		}
		return logs[i].HabitID < logs[j].HabitID
	})
}

func (r *memoryHabitLogRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.HabitLog, error) {
	d, done := r.v.read()
	defer done()

	logs := make([]*domain.HabitLog, 0)
	for _, l := range d.logs {
		if l.HabitID == habitID {
			c := *l
			logs = append(logs, &c)
		}
	}
	sortLogs(logs)
	return logs, nil
}

func (r *memoryHabitLogRepository) ListByUserIDAndDateRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.HabitLog, error) {
	d, done := r.v.read()
	defer done()

	from, to = calendar.Day(from), calendar.Day(to)
	logs := make([]*domain.HabitLog, 0)
	for _, l := range d.logs {
		h, ok := d.habits[l.HabitID]
		if !ok || h.UserID != userID {
			continue
		}
		if l.Date.Before(from) || l.Date.After(to) {
			continue
		}
		c := *l
		logs = append(logs, &c)
	}
	sortLogs(logs)
	return logs, nil
}

func (r *memoryHabitLogRepository) CountCompletedByUserID(ctx context.Context, userID string) (int, error) {
	d, done := r.v.read()
	defer done()

	count := 0
	for _, l := range d.logs {
		if h, ok := d.habits[l.HabitID]; ok && h.UserID == userID && l.Completed {
			count++
		}
	}
	return count, nil
}

type memoryTaskRepository struct{ v *memoryView }

func (r *memoryTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	d, done := r.v.write()
	defer done()

	if _, ok := d.users[task.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	if _, ok := d.tasks[task.ID]; ok {
		return domain.ErrConflict
	}
	d.tasks[task.ID] = copyTask(task)
	return nil
}

func (r *memoryTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	d, done := r.v.read()
	defer done()

	t, ok := d.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return copyTask(t), nil
}

func (r *memoryTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	d, done := r.v.write()
	defer done()

	t, ok := d.tasks[task.ID]
	if !ok {
		return domain.ErrTaskNotFound
	}
	updated := copyTask(task)
	t.Completed = updated.Completed
	t.CompletedDate = updated.CompletedDate
	return nil
}

func (r *memoryTaskRepository) ListRecent(ctx context.Context, userID string, since time.Time) ([]*domain.Task, error) {
	d, done := r.v.read()
	defer done()

	since = calendar.Day(since)
	tasks := make([]*domain.Task, 0)
	for _, t := range d.tasks {
		if t.UserID != userID {
			continue
		}
		if t.Completed {
			if t.CompletedDate == nil || t.CompletedDate.Before(since) {
				continue
			}
		} else if t.EffectiveDate().Before(since) {
			continue
		}
		tasks = append(tasks, copyTask(t))
	}

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

func (r *memoryTaskRepository) CountCompletedByUserID(ctx context.Context, userID string) (int, error) {
	d, done := r.v.read()
	defer done()

	count := 0
	for _, t := range d.tasks {
		if t.UserID == userID && t.Completed {
			count++
		}
	}
	return count, nil
}

type memoryAchievementRepository struct{ v *memoryView }

func (r *memoryAchievementRepository) SeedCatalog(ctx context.Context, catalog []*domain.Achievement) (int, error) {
	d, done := r.v.write()
	defer done()

	slugs := make(map[string]bool, len(d.catalog))
	for _, a := range d.catalog {
		slugs[a.Slug] = true
	}

	added := 0
	for _, a := range catalog {
		if slugs[a.Slug] {
			continue
		}
		c := *a
		d.catalog[a.ID] = &c
		slugs[a.Slug] = true
		added++
	}
	return added, nil
}

func (r *memoryAchievementRepository) ListCatalog(ctx context.Context) ([]*domain.Achievement, error) {
	d, done := r.v.read()
	defer done()

	out := make([]*domain.Achievement, 0, len(d.catalog))
	for _, a := range d.catalog {
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ConditionType != out[j].ConditionType {
			return out[i].ConditionType < out[j].ConditionType
		}
		if out[i].Threshold != out[j].Threshold {
			return out[i].Threshold < out[j].Threshold
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (r *memoryAchievementRepository) ListEarned(ctx context.Context, userID string) ([]*domain.UserAchievement, error) {
	d, done := r.v.read()
	defer done()

	out := make([]*domain.UserAchievement, 0)
	for _, ua := range d.earned {
		if ua.UserID == userID {
			c := *ua
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AchievementID < out[j].AchievementID
	})
	return out, nil
}

func (r *memoryAchievementRepository) Award(ctx context.Context, ua *domain.UserAchievement) (bool, error) {
	d, done := r.v.write()
	defer done()

	if _, ok := d.users[ua.UserID]; !ok {
		return false, domain.ErrUserNotFound
	}

	key := ua.UserID + "|" + ua.AchievementID
	if _, ok := d.earned[key]; ok {
		return false, nil
	}
	c := *ua
	d.earned[key] = &c
	return true, nil
}
