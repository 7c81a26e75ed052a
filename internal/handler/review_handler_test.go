package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kuse-store/internal/model"
	"kuse-store/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReviewHandler_List(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name      string
		query     string
		productID string
	}{
		{name: "All reviews", query: "", productID: ""},
		{name: "Filtered by product", query: "?product_id=p1", productID: "p1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockReviewService)
			mockService.On("List", mock.Anything, tt.productID).
				Return([]store.Document{{"_id": "r1", "product_id": "p1", "rating": 5}}, nil)

			handler := NewReviewHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodGet, "/reviews"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var docs []map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &docs))
			require.Len(t, docs, 1)
			assert.Equal(t, "r1", docs[0]["id"])

			mockService.AssertExpectations(t)
		})
	}
}

func TestReviewHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockReviewService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Success",
			body: `{"product_id":"p1","name":"Ayesha","rating":5,"comment":"Lovely"}`,
			setupMock: func(m *MockReviewService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(r *model.Review) bool {
					return r.Rating != nil && *r.Rating == 5
				})).Return("rev-1", nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Fractional rating rejected while decoding",
			body:           `{"product_id":"p1","name":"Ayesha","rating":4.5,"comment":"ok"}`,
			setupMock:      func(m *MockReviewService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   model.ErrCodeValidation,
		},
		{
			name:           "Empty body",
			body:           ``,
			setupMock:      func(m *MockReviewService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockReviewService)
			tt.setupMock(mockService)

			handler := NewReviewHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
			} else {
				var resp IDResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "rev-1", resp.ID)
			}

			mockService.AssertExpectations(t)
		})
	}
}
