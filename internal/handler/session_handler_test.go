package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dapur-manis/internal/middleware"
	"dapur-manis/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionHandler_ListActive(t *testing.T) {
	sessions := []model.SessionResponse{
		{ID: uuid.New(), Name: "PO Lebaran", Status: model.SessionActive},
	}

	mockService := new(MockSessionService)
	mockService.On("ListActive", mock.Anything).Return(sessions, nil)

	h := NewSessionHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/po-sessions/active", nil)
	w := httptest.NewRecorder()

	h.ListActive(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []model.SessionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "PO Lebaran", body[0].Name)
	mockService.AssertExpectations(t)
}

func TestSessionHandler_Create_UsesContextUser(t *testing.T) {
	admin := &model.User{ID: uuid.New(), Email: "owner@dapurmanis.id", Role: model.RoleAdmin}

	mockService := new(MockSessionService)
	mockService.On("Create", mock.Anything, admin.ID, mock.AnythingOfType("*model.SessionInput")).
		Return(&model.SessionResponse{ID: uuid.New(), Name: "PO Natal"}, nil)

	h := NewSessionHandler(mockService, zerolog.Nop())

	input := model.SessionInput{
		Name:       "PO Natal",
		StartDate:  time.Now(),
		EndDate:    time.Now().Add(72 * time.Hour),
		Status:     model.SessionDraft,
		ProductIDs: []uuid.UUID{uuid.New()},
	}
	payload, err := json.Marshal(input)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/po-sessions", strings.NewReader(string(payload)))
	req = req.WithContext(middleware.ContextWithUser(req.Context(), admin))
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestSessionHandler_Create_NoContextUser(t *testing.T) {
	mockService := new(MockSessionService)
	h := NewSessionHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/po-sessions", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.Create(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionHandler_Delete_HasOrders(t *testing.T) {
	sessionID := uuid.New()

	mockService := new(MockSessionService)
	mockService.On("Delete", mock.Anything, sessionID).Return(model.ErrSessionHasOrders)

	h := NewSessionHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/api/po-sessions/"+sessionID.String(), nil)
	req.SetPathValue("id", sessionID.String())
	w := httptest.NewRecorder()

	h.Delete(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var body model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, model.ErrCodeSessionHasOrders, body.Error)
}

func TestSessionHandler_GetByID_InvalidUUID(t *testing.T) {
	mockService := new(MockSessionService)
	h := NewSessionHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/po-sessions/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	w := httptest.NewRecorder()

	h.GetByID(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
