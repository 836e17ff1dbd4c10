package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fin-tools/credit-atlas/pkg/models/api"
	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockController struct {
	mock.Mock
}

func (m *mockController) Analyze(
	ctx context.Context,
	records []domain.ExtractionRecord,
	loan domain.LoanTerms,
) (*domain.FullAnalysisReport, error) {
	args := m.Called(ctx, records, loan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FullAnalysisReport), args.Error(1)
}

func TestWebAPI_Analysis(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	ctrl := new(mockController)
	webAPI := NewWebAPI(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies:    Dependencies{Underwriting: ctrl},
	})
	testServer := httptest.NewServer(webAPI.router)
	defer testServer.Close()

	report := &domain.FullAnalysisReport{
		ID:          "report-1",
		GeneratedAt: time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
		RiskScore:   3,
		RiskRating:  domain.RiskLow,
		Summary: domain.ReportSummary{
			QualifyingIncome: 90000,
			RiskScore:        3,
			RiskRating:       domain.RiskLow,
		},
	}

	tests := []struct {
		name           string
		body           string
		setupMocks     func()
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name: "ValidRequest",
			body: `{"documents":[{"doc_type":"W-2","year":2024,"data":{"wages":90000}}],` +
				`"loan":{"purpose":"purchase","amount":300000,"rate":6.5,"term_months":360}}`,
			setupMocks: func() {
				ctrl.On("Analyze", mock.Anything, mock.Anything, domain.LoanTerms{
					Purpose:    "purchase",
					Amount:     300000,
					Rate:       6.5,
					TermMonths: 360,
				}).Return(report, nil).Once()
			},
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var got api.AnalysisReport
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, "report-1", got.Id)
				assert.Equal(t, "low", got.RiskRating)
				assert.Equal(t, 90000.0, got.Summary.QualifyingIncome)
			},
		},
		{
			name:           "InvalidJSON",
			body:           `{"documents":`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "NoDocuments",
			body:           `{"documents":[],"loan":{}}`,
			setupMocks:     func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "ControllerError",
			body: `{"documents":[{"doc_type":"W-2","data":{}}],"loan":{}}`,
			setupMocks: func() {
				ctrl.On("Analyze", mock.Anything, mock.Anything, domain.LoanTerms{}).
					Return(nil, assert.AnError).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setupMocks()
			resp, err := http.Post(testServer.URL+"/api/v1/analysis", "application/json",
				bytes.NewBufferString(tc.body))
			require.NoError(t, err, "Failed to send request")
			defer resp.Body.Close()

			assert.Equal(t, tc.expectedStatus, resp.StatusCode, "Status code mismatch")

			if tc.check != nil {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err, "Failed to read response body")
				tc.check(t, body)
			}
		})
	}

	ctrl.AssertExpectations(t)
}

func TestWebAPI_Healthz(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	webAPI := NewWebAPI(logger, Config{Addr: ":8080", Dependencies: Dependencies{Underwriting: new(mockController)}})
	testServer := httptest.NewServer(webAPI.router)
	defer testServer.Close()

	resp, err := http.Get(testServer.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
