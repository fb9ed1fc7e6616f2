package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inkstream/internal/models"
	"inkstream/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetGenres(t *testing.T) {
	ts := newTestServer(t)
	ts.genreRepo.On("List", mock.Anything).Return([]models.Genre{
		{ID: 1, Name: "Arts"},
		{ID: 2, Name: "Technology"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/genres", nil)
	req.Header.Set("Authorization", ts.authHeader(t, 1))
	resp := doRequest(t, ts.app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	genres := body["genres"].([]any)
	assert.Len(t, genres, 2)
}

func TestAddGenre(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(*MockGenreRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{"name": "Philosophy"},
			mockSetup: func(m *MockGenreRepository) {
				m.On("GetByName", mock.Anything, "Philosophy").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Genre).ID = 14
				})
				m.On("AddUserGenre", mock.Anything, uint(1), uint(14)).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Already Exists",
			body: map[string]any{"name": "Technology"},
			mockSetup: func(m *MockGenreRepository) {
				m.On("GetByName", mock.Anything, "Technology").Return(&models.Genre{ID: 1, Name: "Technology"}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Invalid Name",
			body:           map[string]any{"name": "  "},
			mockSetup:      func(m *MockGenreRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			tt.mockSetup(ts.genreRepo)

			req := postJSON(t, "/api/genres", tt.body)
			req.Header.Set("Authorization", ts.authHeader(t, 1))
			resp := doRequest(t, ts.app, req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			ts.genreRepo.AssertExpectations(t)
		})
	}
}

func TestSetMyGenres(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(*MockGenreRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{"genre_ids": []uint{1, 2, 3}},
			mockSetup: func(m *MockGenreRepository) {
				m.On("SetUserGenres", mock.Anything, uint(1), []uint{1, 2, 3}).Return(nil)
				m.On("UserGenres", mock.Anything, uint(1)).Return([]models.Genre{
					{ID: 1, Name: "Arts"},
					{ID: 2, Name: "Music"},
					{ID: 3, Name: "Travel"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Too Few Genres",
			body:           map[string]any{"genre_ids": []uint{1, 2}},
			mockSetup:      func(m *MockGenreRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown Genre",
			body: map[string]any{"genre_ids": []uint{1, 2, 99}},
			mockSetup: func(m *MockGenreRepository) {
				m.On("SetUserGenres", mock.Anything, uint(1), []uint{1, 2, 99}).
					Return(repository.ErrUnknownGenre)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			tt.mockSetup(ts.genreRepo)

			req := jsonRequest(t, http.MethodPut, "/api/genres/me", tt.body)
			req.Header.Set("Authorization", ts.authHeader(t, 1))
			resp := doRequest(t, ts.app, req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetMyGenres(t *testing.T) {
	ts := newTestServer(t)
	ts.genreRepo.On("UserGenres", mock.Anything, uint(7)).Return([]models.Genre{
		{ID: 5, Name: "Music"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/genres/me", nil)
	req.Header.Set("Authorization", ts.authHeader(t, 7))
	resp := doRequest(t, ts.app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	genres := body["genres"].([]any)
	assert.Len(t, genres, 1)
}

func TestGenreStatus(t *testing.T) {
	t.Run("genres selected", func(t *testing.T) {
		ts := newTestServer(t)
		ts.userRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, HasSelectedGenres: true}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/genres/status", nil)
		req.Header.Set("Authorization", ts.authHeader(t, 1))
		resp := doRequest(t, ts.app, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, true, body["has_selected_genres"])
	})

	t.Run("no genres selected", func(t *testing.T) {
		ts := newTestServer(t)
		ts.userRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, HasSelectedGenres: false}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/genres/status", nil)
		req.Header.Set("Authorization", ts.authHeader(t, 1))
		resp := doRequest(t, ts.app, req)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, false, body["has_selected_genres"])
	})
}
