package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/habitflow/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habitflow/internal/adapters/repository"
	"github.com/comitanigiacomo/habitflow/internal/core/domain"
	"github.com/comitanigiacomo/habitflow/internal/core/services"
)

type testServer struct {
	router *gin.Engine
	users  *services.UserService
	tokens *services.TokenService
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	achievements := services.NewAchievementService(store)
	_, err := achievements.SeedCatalog(context.Background())
	require.NoError(t, err)

	habits := services.NewHabitService(store, achievements, nil)
	entries := services.NewEntryService(store, services.NewStreakTracker(), achievements, services.NoopSharedHabitHook{}, nil)
	tasks := services.NewTaskService(store, achievements, nil)
	state := services.NewStateService(store, nil)
	stats := services.NewStatsService(store)
	users := services.NewUserService(store)
	tokens := services.NewTokenService("handler-test-secret", "habitflow-test", time.Hour, store.Repos().Users)

	clock := adapterHTTP.Clock{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) },
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		StateHandler:       adapterHTTP.NewStateHandler(state, clock),
		HabitHandler:       adapterHTTP.NewHabitHandler(habits, entries, stats, clock),
		TaskHandler:        adapterHTTP.NewTaskHandler(tasks, clock),
		AchievementHandler: adapterHTTP.NewAchievementHandler(achievements),
		UserHandler:        adapterHTTP.NewUserHandler(users),
		TokenService:       tokens,
		StartTime:          time.Now(),
	})

	return &testServer{router: router, users: users, tokens: tokens}
}

// login provisions a user and returns its id and bearer token.
func (s *testServer) login(t *testing.T, username string) (string, string) {
	t.Helper()
	user, err := s.users.Provision(context.Background(), username)
	require.NoError(t, err)
	token, err := s.tokens.GenerateToken(user)
	require.NoError(t, err)
	return user.ID, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type habitCreated struct {
	Success    bool         `json:"success"`
	Habit      domain.Habit `json:"habit"`
	SharedWith int          `json:"shared_with"`
}

type failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *testServer) createHabit(t *testing.T, token string, body gin.H) domain.Habit {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/habits", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[habitCreated](t, w).Habit
}

func TestHealth(t *testing.T) {
	srv := setupServer(t)

	w := srv.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	res := decode[map[string]string](t, w)
	assert.Equal(t, "memory", res["database"])
	assert.Equal(t, "disabled", res["redis"])
}

func TestAuthRequired(t *testing.T) {
	srv := setupServer(t)

	w := srv.do(t, http.MethodGet, "/api/v1/state", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, decode[failure](t, w).Success)
}

func TestCreateHabit(t *testing.T) {
	t.Run("Success: 201 Created with default target", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")

		w := srv.do(t, http.MethodPost, "/api/v1/habits", token, gin.H{"text": "Read", "frequency": "daily"})

		assert.Equal(t, http.StatusCreated, w.Code)
		res := decode[habitCreated](t, w)
		assert.True(t, res.Success)
		assert.Equal(t, "Read", res.Habit.Text)
		assert.Equal(t, 1, res.Habit.Target)
		assert.Equal(t, 0, res.SharedWith)
		assert.False(t, res.Habit.IsShared)
	})

	t.Run("Success: Shared with a friend", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")
		bobID, bobToken := srv.login(t, "bob")

		w := srv.do(t, http.MethodPost, "/api/v1/habits", token, gin.H{"text": "Run", "friends": []string{bobID}})

		require.Equal(t, http.StatusCreated, w.Code)
		res := decode[habitCreated](t, w)
		assert.Equal(t, 1, res.SharedWith)
		assert.True(t, res.Habit.IsShared)

		list := decode[[]domain.Habit](t, srv.do(t, http.MethodGet, "/api/v1/habits", bobToken, nil))
		require.Len(t, list, 1)
		assert.Equal(t, *res.Habit.SharedID, *list[0].SharedID)
	})

	t.Run("Fail: Validation error is 400", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")

		cases := []gin.H{
			{"text": "   "},
			{"text": "Read", "frequency": "monthly"},
			{"text": "Read", "target": 0},
			{"text": "Gym", "frequency": "specific", "days": []int{7}},
		}
		for _, body := range cases {
			w := srv.do(t, http.MethodPost, "/api/v1/habits", token, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.False(t, decode[failure](t, w).Success)
		}
	})

	t.Run("Fail: Malformed JSON", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/habits", bytes.NewBufferString(`{"text": `))
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Unknown friend is 404", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")

		w := srv.do(t, http.MethodPost, "/api/v1/habits", token, gin.H{"text": "Run", "friends": []string{"nobody"}})

		assert.Equal(t, http.StatusNotFound, w.Code)
		list := decode[[]domain.Habit](t, srv.do(t, http.MethodGet, "/api/v1/habits", token, nil))
		assert.Empty(t, list)
	})
}

func TestToggleHabit(t *testing.T) {
	t.Run("Success: Toggle completes and updates state", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")
		habit := srv.createHabit(t, token, gin.H{"text": "Read"})

		w := srv.do(t, http.MethodPost, "/api/v1/habits/"+habit.ID+"/toggle", token, nil)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		res := decode[struct {
			Success bool            `json:"success"`
			Log     domain.HabitLog `json:"log"`
		}](t, w)
		assert.True(t, res.Success)
		assert.Equal(t, 1, res.Log.Value)
		assert.True(t, res.Log.Completed)

		state := decode[domain.UserState](t, srv.do(t, http.MethodGet, "/api/v1/state", token, nil))
		assert.Equal(t, "2026-10-19", state.Date)
		assert.Equal(t, 1, state.Streak)
		require.Len(t, state.Habits, 1)
		assert.True(t, state.Habits[0].Completed)
	})

	t.Run("Success: Date override", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")
		habit := srv.createHabit(t, token, gin.H{"text": "Read"})

		w := srv.do(t, http.MethodPost, "/api/v1/habits/"+habit.ID+"/toggle?date=2026-10-18", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		today := decode[domain.UserState](t, srv.do(t, http.MethodGet, "/api/v1/state", token, nil))
		require.Len(t, today.Habits, 1)
		assert.False(t, today.Habits[0].Completed)
		assert.Equal(t, 1, today.Streak, "Credited yesterday, not broken yet")

		past := decode[domain.UserState](t, srv.do(t, http.MethodGet, "/api/v1/state?date=2026-10-18", token, nil))
		assert.True(t, past.Habits[0].Completed)
	})

	t.Run("Fail: Not owner is 403", func(t *testing.T) {
		srv := setupServer(t)
		_, aliceToken := srv.login(t, "alice")
		_, bobToken := srv.login(t, "bob")
		habit := srv.createHabit(t, aliceToken, gin.H{"text": "Read"})

		w := srv.do(t, http.MethodPost, "/api/v1/habits/"+habit.ID+"/toggle", bobToken, nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Fail: Missing habit is 404", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")

		w := srv.do(t, http.MethodPost, "/api/v1/habits/missing/toggle", token, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Fail: Bad date is 400", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")

		w := srv.do(t, http.MethodGet, "/api/v1/state?date=19.10.2026", token, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHabitDetailAndDelete(t *testing.T) {
	srv := setupServer(t)
	_, token := srv.login(t, "alice")
	habit := srv.createHabit(t, token, gin.H{"text": "Read"})

	srv.do(t, http.MethodPost, "/api/v1/habits/"+habit.ID+"/toggle?date=2026-10-18", token, nil)
	srv.do(t, http.MethodPost, "/api/v1/habits/"+habit.ID+"/toggle", token, nil)

	t.Run("Success: Detail reports streaks and history", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/habits/"+habit.ID, token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		detail := decode[domain.HabitDetail](t, w)
		assert.Equal(t, 2, detail.CurrentStreak)
		assert.Equal(t, 2, detail.BestStreak)
		assert.Equal(t, 100, detail.CompletionRate)
		assert.Len(t, detail.History, domain.HistoryDays)
		require.Len(t, detail.Recent, 2)
		assert.Equal(t, "Today", detail.Recent[0].Label)
	})

	t.Run("Success: Delete removes the habit", func(t *testing.T) {
		w := srv.do(t, http.MethodDelete, "/api/v1/habits/"+habit.ID, token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = srv.do(t, http.MethodGet, "/api/v1/habits", token, nil)
		assert.Equal(t, "[]", w.Body.String())

		w = srv.do(t, http.MethodGet, "/api/v1/habits/"+habit.ID, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTasks(t *testing.T) {
	t.Run("Success: Create and toggle", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")

		w := srv.do(t, http.MethodPost, "/api/v1/tasks", token, gin.H{"text": "Call mom"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		created := decode[struct {
			Success bool        `json:"success"`
			Task    domain.Task `json:"task"`
		}](t, w)
		assert.True(t, created.Success)

		state := decode[domain.UserState](t, srv.do(t, http.MethodGet, "/api/v1/state", token, nil))
		require.Len(t, state.Tasks, 1)
		assert.Equal(t, "Today", state.Tasks[0].Tag)
		assert.False(t, state.Tasks[0].Completed)

		w = srv.do(t, http.MethodPost, "/api/v1/tasks/"+created.Task.ID+"/toggle", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		state = decode[domain.UserState](t, srv.do(t, http.MethodGet, "/api/v1/state", token, nil))
		require.Len(t, state.Tasks, 1)
		assert.True(t, state.Tasks[0].Completed)
	})

	t.Run("Success: Future task is hidden today", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")

		w := srv.do(t, http.MethodPost, "/api/v1/tasks", token, gin.H{"text": "Dentist", "offset": 2})
		require.Equal(t, http.StatusCreated, w.Code)

		state := decode[domain.UserState](t, srv.do(t, http.MethodGet, "/api/v1/state", token, nil))
		assert.Empty(t, state.Tasks)

		state = decode[domain.UserState](t, srv.do(t, http.MethodGet, "/api/v1/state?date=2026-10-21", token, nil))
		require.Len(t, state.Tasks, 1)
		assert.Equal(t, "Today", state.Tasks[0].Tag)
	})

	t.Run("Fail: Negative offset is 400", func(t *testing.T) {
		srv := setupServer(t)
		_, token := srv.login(t, "alice")

		w := srv.do(t, http.MethodPost, "/api/v1/tasks", token, gin.H{"text": "Call", "offset": -1})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Fail: Foreign task is 403", func(t *testing.T) {
		srv := setupServer(t)
		_, aliceToken := srv.login(t, "alice")
		_, bobToken := srv.login(t, "bob")

		w := srv.do(t, http.MethodPost, "/api/v1/tasks", aliceToken, gin.H{"text": "Call"})
		task := decode[struct {
			Task domain.Task `json:"task"`
		}](t, w).Task

		w = srv.do(t, http.MethodPost, "/api/v1/tasks/"+task.ID+"/toggle", bobToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAchievementsAndProfile(t *testing.T) {
	srv := setupServer(t)
	_, token := srv.login(t, "alice")
	bobID, _ := srv.login(t, "bob")
	srv.createHabit(t, token, gin.H{"text": "Read"})

	t.Run("Success: Catalog with earned flags", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/achievements", token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		views := decode[[]domain.AchievementView](t, w)
		assert.Len(t, views, len(domain.DefaultCatalog()))

		earned := map[string]bool{}
		for _, v := range views {
			earned[v.Slug] = v.Earned
		}
		assert.True(t, earned["first_habit"])
		assert.False(t, earned["habit_builder"])
	})

	t.Run("Success: Friend profile", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/users/"+bobID, token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		profile := decode[map[string]interface{}](t, w)
		assert.Equal(t, "bob", profile["username"])
		assert.EqualValues(t, 0, profile["current_streak"])
	})

	t.Run("Fail: Unknown profile is 404", func(t *testing.T) {
		w := srv.do(t, http.MethodGet, "/api/v1/users/nobody", token, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
