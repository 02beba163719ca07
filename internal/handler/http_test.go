package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"scenario-server/internal/handler"
	"scenario-server/internal/models"
	"scenario-server/internal/repository/mocks"
	"scenario-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Локальный мок CompletionProvider
type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, maxTokens)
	return args.String(0), args.Error(1)
}

type testEnv struct {
	router    *gin.Engine
	users     *mocks.UserRepository
	scenarios *mocks.ScenarioRepository
	steps     *mocks.StepRepository
	points    *mocks.PointsRepository
	provider  *mockProvider
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		users:     new(mocks.UserRepository),
		scenarios: new(mocks.ScenarioRepository),
		steps:     new(mocks.StepRepository),
		points:    new(mocks.PointsRepository),
		provider:  new(mockProvider),
	}

	logger := zap.NewNop()
	scenarioSvc := service.NewScenarioService(env.users, env.scenarios, env.steps, logger)
	pointsSvc := service.NewPointsService(env.points, env.steps, logger)
	generationSvc := service.NewGenerationService(scenarioSvc, pointsSvc, env.steps, env.provider, logger)

	router := gin.New()
	handler.NewAPIHandler(scenarioSvc, pointsSvc, generationSvc, logger).RegisterRoutes(router)
	env.router = router
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestLiveness(t *testing.T) {
	env := newTestEnv()

	w := env.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "running")
}

func TestCreateScenarioEndpoint(t *testing.T) {
	t.Run("201 with created scenario", func(t *testing.T) {
		env := newTestEnv()
		env.users.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()
		env.scenarios.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		w := env.do(t, http.MethodPost, "/api/scenarios", gin.H{"title": "Онбординг"})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Scenario models.Scenario `json:"scenario"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Онбординг", resp.Scenario.Title)
		assert.NotNil(t, resp.Scenario.Steps)
	})

	t.Run("400 on missing title", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(t, http.MethodPost, "/api/scenarios", gin.H{})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing title"}`, w.Body.String())
		env.scenarios.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGetScenarioEndpoint(t *testing.T) {
	t.Run("200 with steps attached", func(t *testing.T) {
		env := newTestEnv()
		id := uuid.New()
		env.scenarios.On("GetByID", mock.Anything, id).Return(&models.Scenario{
			ID:    id,
			Title: "Онбординг",
			Steps: []models.Step{{ID: uuid.New(), ScenarioID: id, Content: "Встретить команду"}},
		}, nil).Once()

		w := env.do(t, http.MethodGet, "/api/scenarios/"+id.String(), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Scenario models.Scenario `json:"scenario"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Scenario.Steps, 1)
		assert.Equal(t, "Встретить команду", resp.Scenario.Steps[0].Content)
	})

	t.Run("404 on unknown id", func(t *testing.T) {
		env := newTestEnv()
		id := uuid.New()
		env.scenarios.On("GetByID", mock.Anything, id).Return(nil, models.ErrScenarioNotFound).Once()

		w := env.do(t, http.MethodGet, "/api/scenarios/"+id.String(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("404 on malformed id", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(t, http.MethodGet, "/api/scenarios/not-a-uuid", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAddStepEndpoint(t *testing.T) {
	t.Run("201 with created step", func(t *testing.T) {
		env := newTestEnv()
		id := uuid.New()
		env.scenarios.On("Exists", mock.Anything, id).Return(true, nil).Once()
		env.steps.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		w := env.do(t, http.MethodPost, "/api/scenarios/"+id.String()+"/steps", gin.H{"content": "Встретить команду"})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Step models.Step `json:"step"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Встретить команду", resp.Step.Content)
	})

	t.Run("400 on missing content", func(t *testing.T) {
		env := newTestEnv()
		id := uuid.New()

		w := env.do(t, http.MethodPost, "/api/scenarios/"+id.String()+"/steps", gin.H{})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing content"}`, w.Body.String())
	})

	t.Run("404 on missing scenario", func(t *testing.T) {
		env := newTestEnv()
		id := uuid.New()
		env.scenarios.On("Exists", mock.Anything, id).Return(false, nil).Once()

		w := env.do(t, http.MethodPost, "/api/scenarios/"+id.String()+"/steps", gin.H{"content": "Шаг"})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Scenario not found"}`, w.Body.String())
	})
}

func TestGenerateStepEndpoint(t *testing.T) {
	t.Run("201 even when provider fails", func(t *testing.T) {
		env := newTestEnv()
		id := uuid.New()
		env.scenarios.On("GetByID", mock.Anything, id).Return(&models.Scenario{ID: id, Title: "Онбординг"}, nil).Once()
		env.provider.On("Complete", mock.Anything, mock.Anything, 100).Return("", errors.New("timeout")).Once()
		env.scenarios.On("Exists", mock.Anything, id).Return(true, nil).Once()
		env.steps.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		env.points.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		w := env.do(t, http.MethodPost, "/api/scenarios/"+id.String()+"/generate-step", nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Step models.Step `json:"step"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Тестовый шаг (AI-заглушка).", resp.Step.Content)
	})

	t.Run("404 on missing scenario", func(t *testing.T) {
		env := newTestEnv()
		id := uuid.New()
		env.scenarios.On("GetByID", mock.Anything, id).Return(nil, models.ErrScenarioNotFound).Once()

		w := env.do(t, http.MethodPost, "/api/scenarios/"+id.String()+"/generate-step", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		env.provider.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCompleteStepEndpoint(t *testing.T) {
	scenarioID := uuid.New()
	path := "/api/scenarios/" + scenarioID.String() + "/complete-step"

	t.Run("200 with new total", func(t *testing.T) {
		env := newTestEnv()
		stepID := uuid.New()
		env.steps.On("Exists", mock.Anything, stepID).Return(true, nil).Once()
		env.points.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		env.points.On("SumByUser", mock.Anything, models.AnonymousUserID).Return(10, nil).Once()

		w := env.do(t, http.MethodPost, path, gin.H{"stepId": stepID.String()})
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"points":10}`, w.Body.String())
	})

	t.Run("400 on missing stepId", func(t *testing.T) {
		env := newTestEnv()

		w := env.do(t, http.MethodPost, path, gin.H{})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing stepId"}`, w.Body.String())
	})

	t.Run("404 on unknown stepId without ledger write", func(t *testing.T) {
		env := newTestEnv()
		stepID := uuid.New()
		env.steps.On("Exists", mock.Anything, stepID).Return(false, nil).Once()

		w := env.do(t, http.MethodPost, path, gin.H{"stepId": stepID.String()})
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Step not found"}`, w.Body.String())
		env.points.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAssessmentCompleteEndpoint(t *testing.T) {
	env := newTestEnv()
	env.points.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	env.points.On("SumByUser", mock.Anything, models.AnonymousUserID).Return(30, nil).Once()

	w := env.do(t, http.MethodPost, "/api/assessment-complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"points":30}`, w.Body.String())
}

func TestGetPointsEndpoint(t *testing.T) {
	env := newTestEnv()
	env.points.On("SumByUser", mock.Anything, models.AnonymousUserID).Return(250, nil).Twice()

	w := env.do(t, http.MethodGet, "/api/points", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"points":250,"level":2}`, w.Body.String())
}

func TestIDPEndpoint(t *testing.T) {
	t.Run("200 with parsed recommendations", func(t *testing.T) {
		env := newTestEnv()
		env.points.On("SumByUser", mock.Anything, models.AnonymousUserID).Return(45, nil).Once()
		env.steps.On("CountByAuthor", mock.Anything, models.AnonymousUserID).Return(7, nil).Once()
		env.provider.On("Complete", mock.Anything, mock.Anything, 200).Return("1. Do X\n2. Do Y\n\n3. Do Z", nil).Once()

		w := env.do(t, http.MethodPost, "/api/idp", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"idp":["Do X","Do Y","Do Z"]}`, w.Body.String())
	})

	t.Run("200 with fallback on provider failure", func(t *testing.T) {
		env := newTestEnv()
		env.points.On("SumByUser", mock.Anything, models.AnonymousUserID).Return(0, nil).Once()
		env.steps.On("CountByAuthor", mock.Anything, models.AnonymousUserID).Return(0, nil).Once()
		env.provider.On("Complete", mock.Anything, mock.Anything, 200).Return("", errors.New("provider down")).Once()

		w := env.do(t, http.MethodPost, "/api/idp", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			IDP []string `json:"idp"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.IDP, 3)
	})
}

func TestInternalErrorMapping(t *testing.T) {
	env := newTestEnv()
	env.scenarios.On("List", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	w := env.do(t, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "connection refused")
}
