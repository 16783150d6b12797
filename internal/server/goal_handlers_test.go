package server

import (
	"fmt"
	"testing"
	"time"

	"fittrack/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createGoalViaAPI(t *testing.T, app *fiber.App, token string, body map[string]any) models.Goal {
	t.Helper()

	resp := doJSON(t, app, fiber.MethodPost, "/api/goals", token, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var goal models.Goal
	decodeBody(t, resp, &goal)
	return goal
}

func baseGoalBody() map[string]any {
	return map[string]any{
		"title":       "Run a 5k",
		"description": "Couch to 5k program",
		"targetDate":  time.Now().AddDate(0, 2, 0).Format(time.RFC3339),
		"category":    models.GoalCategoryCardio,
	}
}

func TestGoalCRUD(t *testing.T) {
	app, _ := setupTestServer(t)
	token := registerTestUser(t, app, "goal@example.com")

	created := createGoalViaAPI(t, app, token, baseGoalBody())
	assert.NotZero(t, created.ID)
	assert.Equal(t, 0, created.Progress)

	resp := doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/goals/%d", created.ID), token, map[string]any{
		"progress": 60,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Goal
	decodeBody(t, resp, &updated)
	assert.Equal(t, 60, updated.Progress)
	assert.False(t, updated.Completed)

	resp = doJSON(t, app, fiber.MethodGet, "/api/goals", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []models.Goal
	decodeBody(t, resp, &list)
	assert.Len(t, list, 1)

	resp = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/goals/%d", created.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/goals/%d", created.ID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGoalToggleForcesProgressAndDrivesStats(t *testing.T) {
	app, _ := setupTestServer(t)
	token := registerTestUser(t, app, "goalstats@example.com")

	created := createGoalViaAPI(t, app, token, baseGoalBody())

	resp := doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/goals/%d/toggle-complete", created.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var toggled models.Goal
	decodeBody(t, resp, &toggled)
	assert.True(t, toggled.Completed)
	assert.Equal(t, 100, toggled.Progress)

	stats := getProfileStats(t, app, token)
	assert.Equal(t, 1, stats.GoalsAchieved)

	// Toggle off: count drops, progress stays where it was.
	resp = doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/goals/%d/toggle-complete", created.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &toggled)
	assert.False(t, toggled.Completed)
	assert.Equal(t, 100, toggled.Progress)

	stats = getProfileStats(t, app, token)
	assert.Equal(t, 0, stats.GoalsAchieved)
}

func TestGoalDirectCompleteWithPartialProgress(t *testing.T) {
	app, _ := setupTestServer(t)
	token := registerTestUser(t, app, "goalpartial@example.com")

	created := createGoalViaAPI(t, app, token, baseGoalBody())

	resp := doJSON(t, app, fiber.MethodPut, fmt.Sprintf("/api/goals/%d", created.ID), token, map[string]any{
		"progress":  30,
		"completed": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Goal
	decodeBody(t, resp, &updated)
	// Direct updates do not force progress to 100.
	assert.True(t, updated.Completed)
	assert.Equal(t, 30, updated.Progress)

	stats := getProfileStats(t, app, token)
	assert.Equal(t, 1, stats.GoalsAchieved)
}

func TestGoalDeleteWhileCompletedDecrements(t *testing.T) {
	app, _ := setupTestServer(t)
	token := registerTestUser(t, app, "goaldelete@example.com")

	body := baseGoalBody()
	body["completed"] = true
	created := createGoalViaAPI(t, app, token, body)

	stats := getProfileStats(t, app, token)
	require.Equal(t, 1, stats.GoalsAchieved)

	resp := doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/goals/%d", created.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	stats = getProfileStats(t, app, token)
	assert.Equal(t, 0, stats.GoalsAchieved)
}

func TestGoalOwnership(t *testing.T) {
	app, _ := setupTestServer(t)
	alice := registerTestUser(t, app, "goalalice@example.com")
	mallory := registerTestUser(t, app, "goalmallory@example.com")

	created := createGoalViaAPI(t, app, alice, baseGoalBody())

	path := fmt.Sprintf("/api/goals/%d", created.ID)
	assert.Equal(t, fiber.StatusForbidden, doJSON(t, app, fiber.MethodGet, path, mallory, nil).StatusCode)
	assert.Equal(t, fiber.StatusForbidden,
		doJSON(t, app, fiber.MethodPut, path+"/toggle-complete", mallory, nil).StatusCode)
}

func TestGoalInvalidCategory(t *testing.T) {
	app, _ := setupTestServer(t)
	token := registerTestUser(t, app, "goalbadcat@example.com")

	body := baseGoalBody()
	body["category"] = "Swimming"

	resp := doJSON(t, app, fiber.MethodPost, "/api/goals", token, body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
