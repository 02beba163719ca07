package handler

import "scenario-server/internal/models"

// --- Запросы ---

type createScenarioRequest struct {
	Title string `json:"title"`
}

type addStepRequest struct {
	Content string `json:"content"`
}

type completeStepRequest struct {
	StepID string `json:"stepId"`
}

// --- Ответы ---

type scenarioResponse struct {
	Scenario *models.Scenario `json:"scenario"`
}

type scenarioListResponse struct {
	Scenarios []models.Scenario `json:"scenarios"`
}

type stepResponse struct {
	Step *models.Step `json:"step"`
}

type pointsResponse struct {
	Points int `json:"points"`
}

type pointsLevelResponse struct {
	Points int `json:"points"`
	Level  int `json:"level"`
}

type idpResponse struct {
	IDP []string `json:"idp"`
}

type errorResponse struct {
	Error string `json:"error"`
}
