package controllers

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/fsdevblog/geolink/internal/metrics"
	"github.com/fsdevblog/geolink/internal/models"
	"github.com/fsdevblog/geolink/internal/services"
	"github.com/fsdevblog/geolink/internal/services/smocks"
)

type AccessControllerSuite struct {
	suite.Suite
	verifier *smocks.VerifierMock
	links    *smocks.LinkInfoMock
	ping     *smocks.PingMock
	router   *gin.Engine
}

func (s *AccessControllerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.verifier = new(smocks.VerifierMock)
	s.links = new(smocks.LinkInfoMock)
	s.ping = new(smocks.PingMock)
	s.router = SetupRouter(RouterParams{
		Verifier:    s.verifier,
		LinkInfo:    s.links,
		PingService: s.ping,
		Metrics:     metrics.New().Handler(),
		Logger:      zap.NewNop(),
	})
}

func codeIs(code string) any {
	return mock.MatchedBy(func(r services.VerifyRequest) bool { return r.ShortCode == code })
}

func ptr[T any](v T) *T { return &v }

func (s *AccessControllerSuite) TestVerify_StatusMapping() {
	tests := []struct {
		name       string
		result     *services.VerificationResult
		wantStatus int
		wantTarget bool
		wantRetry  bool
		wantDist   *float64
	}{
		{
			name: "allowed",
			result: &services.VerificationResult{
				Outcome: models.OutcomeAllowed, TargetURL: ptr("https://example.com/x"), DistanceMeters: ptr(49.6),
			},
			wantStatus: http.StatusOK,
			wantTarget: true,
			wantDist:   ptr(50.0),
		},
		{
			name: "out_of_range",
			result: &services.VerificationResult{
				Outcome: models.OutcomeDeniedOutOfRange, DistanceMeters: ptr(150.2), Contact: ptr("admin"),
			},
			wantStatus: http.StatusForbidden,
			wantDist:   ptr(150.0),
		},
		{name: "banned", result: &services.VerificationResult{Outcome: models.OutcomeDeniedBanned}, wantStatus: http.StatusForbidden},
		{name: "not_found", result: &services.VerificationResult{Outcome: models.OutcomeDeniedNotFound}, wantStatus: http.StatusNotFound},
		{name: "deleted", result: &services.VerificationResult{Outcome: models.OutcomeDeniedDeleted}, wantStatus: http.StatusNotFound},
		{name: "expired", result: &services.VerificationResult{Outcome: models.OutcomeDeniedExpired}, wantStatus: http.StatusGone},
		{
			name:       "exhausted",
			result:     &services.VerificationResult{Outcome: models.OutcomeDeniedExhausted, DistanceMeters: ptr(3.0)},
			wantStatus: http.StatusGone,
		},
		{
			name:       "unavailable",
			result:     &services.VerificationResult{Outcome: models.OutcomeDeniedUnavailable},
			wantStatus: http.StatusServiceUnavailable,
			wantRetry:  true,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			code := "c-" + tt.name
			s.verifier.On("Verify", mock.Anything, codeIs(code)).Return(tt.result, nil).Once()

			res := s.makeRequest(requestFields{
				Method:      http.MethodPost,
				URL:         "/api/verify/" + code,
				Body:        strings.NewReader(`{"latitude": 37.7749, "longitude": -122.4194}`),
				ContentType: "application/json",
			})
			defer res.Body.Close()

			s.Equal(tt.wantStatus, res.StatusCode)
			var body verifyResponse
			s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
			s.Equal(tt.result.Outcome, body.Outcome)
			s.Equal(tt.result.Outcome == models.OutcomeAllowed, body.Allowed)
			s.Equal(tt.wantTarget, body.TargetURL != nil)
			s.Equal(tt.wantDist, body.DistanceMeters)
			if tt.wantRetry {
				s.Equal(RetryAfterSeconds, res.Header.Get("Retry-After"))
			} else {
				s.Empty(res.Header.Get("Retry-After"))
			}
		})
	}
	s.verifier.AssertExpectations(s.T())
}

func (s *AccessControllerSuite) TestVerify_PassesClientData() {
	s.verifier.On("Verify", mock.Anything, mock.MatchedBy(func(r services.VerifyRequest) bool {
		return r.ShortCode == "abc123" &&
			r.Point.Lat == 10.5 && r.Point.Lng == -20.25 &&
			r.UserAgent == "geolink-test/1.0" &&
			r.ClientIP != "" &&
			!r.Now.IsZero()
	})).Return(&services.VerificationResult{Outcome: models.OutcomeDeniedNotFound}, nil).Once()

	res := s.makeRequest(requestFields{
		Method:      http.MethodPost,
		URL:         "/api/verify/abc123",
		Body:        strings.NewReader(`{"latitude": 10.5, "longitude": -20.25}`),
		ContentType: "application/json",
		UserAgent:   "geolink-test/1.0",
	})
	defer res.Body.Close()

	s.Equal(http.StatusNotFound, res.StatusCode)
	s.verifier.AssertExpectations(s.T())
}

func (s *AccessControllerSuite) TestVerify_BadInput() {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "malformed", body: `{"latitude": `, wantStatus: http.StatusBadRequest},
		{name: "missing_longitude", body: `{"latitude": 1}`, wantStatus: http.StatusBadRequest},
		{name: "strings", body: `{"latitude": "a", "longitude": "b"}`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.makeRequest(requestFields{
				Method:      http.MethodPost,
				URL:         "/api/verify/abc123",
				Body:        strings.NewReader(tt.body),
				ContentType: "application/json",
			})
			defer res.Body.Close()
			s.Equal(tt.wantStatus, res.StatusCode)
		})
	}
	s.verifier.AssertNotCalled(s.T(), "Verify", mock.Anything, mock.Anything)
}

func (s *AccessControllerSuite) TestVerify_InvalidCoordinate() {
	s.verifier.On("Verify", mock.Anything, codeIs("abc123")).
		Return(nil, services.ErrInvalidCoordinate).Once()

	res := s.makeRequest(requestFields{
		Method:      http.MethodPost,
		URL:         "/api/verify/abc123",
		Body:        strings.NewReader(`{"latitude": 100, "longitude": 0}`),
		ContentType: "application/json",
	})
	defer res.Body.Close()

	s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
}

func (s *AccessControllerSuite) TestVerify_Gzip() {
	s.verifier.On("Verify", mock.Anything, codeIs("abc123")).
		Return(&services.VerificationResult{Outcome: models.OutcomeAllowed, TargetURL: ptr("https://example.com")}, nil).Once()

	res := s.makeRequest(requestFields{
		Method:      http.MethodPost,
		URL:         "/api/verify/abc123",
		Body:        strings.NewReader(`{"latitude": 1, "longitude": 2}`),
		ContentType: "application/json",
		Gzipped:     true,
	})
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	s.Equal("gzip", res.Header.Get("Content-Encoding"))
	body, err := readBody(res.Body, true)
	s.Require().NoError(err)
	s.JSONEq(`{"outcome":"ALLOWED","allowed":true,"target_url":"https://example.com"}`, string(body))
}

func (s *AccessControllerSuite) TestRedirect() {
	s.verifier.On("Verify", mock.Anything, codeIs("abc123")).
		Return(&services.VerificationResult{Outcome: models.OutcomeAllowed, TargetURL: ptr("https://example.com/t")}, nil).Once()
	s.verifier.On("Verify", mock.Anything, codeIs("far001")).
		Return(&services.VerificationResult{Outcome: models.OutcomeDeniedOutOfRange, DistanceMeters: ptr(1000.0)}, nil).Once()

	tests := []struct {
		name         string
		uri          string
		wantStatus   int
		wantLocation string
	}{
		{name: "allowed", uri: "/abc123?lat=1&lng=2", wantStatus: http.StatusTemporaryRedirect, wantLocation: "https://example.com/t"},
		{name: "denied", uri: "/far001?lat=1&lng=2", wantStatus: http.StatusForbidden},
		{name: "no_coordinates", uri: "/abc123", wantStatus: http.StatusBadRequest},
		{name: "bad_coordinates", uri: "/abc123?lat=x&lng=2", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.makeRequest(requestFields{Method: http.MethodGet, URL: tt.uri})
			defer res.Body.Close()

			body, _ := io.ReadAll(res.Body)
			s.Equal(tt.wantStatus, res.StatusCode, "Answer:", string(body))
			s.Equal(tt.wantLocation, res.Header.Get("Location"))
		})
	}
	s.verifier.AssertNumberOfCalls(s.T(), "Verify", 2)
}

func (s *AccessControllerSuite) TestPublicInfo() {
	s.links.On("PublicInfo", mock.Anything, "abc123").Return(&services.PublicLinkInfo{
		ShortCode: "abc123", Title: ptr("Office"), IsActive: true,
	}, nil).Once()
	s.links.On("PublicInfo", mock.Anything, "gone01").Return(nil, services.ErrRecordNotFound).Once()
	s.links.On("PublicInfo", mock.Anything, "fail01").Return(nil, errors.New("boom")).Once()

	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/api/public/abc123"})
	defer res.Body.Close()
	s.Equal(http.StatusOK, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	s.JSONEq(`{"short_code":"abc123","title":"Office","location_name":null,"is_active":true}`, string(body))

	res404 := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/api/public/gone01"})
	defer res404.Body.Close()
	s.Equal(http.StatusNotFound, res404.StatusCode)

	res500 := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/api/public/fail01"})
	defer res500.Body.Close()
	s.Equal(http.StatusInternalServerError, res500.StatusCode)
}

func (s *AccessControllerSuite) TestPing() {
	s.ping.On("CheckConnection", mock.Anything).Return(nil).Once()
	s.ping.On("CheckConnection", mock.Anything).Return(services.ErrPersistenceUnavailable).Once()

	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/ping"})
	defer res.Body.Close()
	s.Equal(http.StatusOK, res.StatusCode)

	resDown := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/ping"})
	defer resDown.Body.Close()
	s.Equal(http.StatusServiceUnavailable, resDown.StatusCode)
}

func (s *AccessControllerSuite) TestMetrics() {
	res := s.makeRequest(requestFields{Method: http.MethodGet, URL: "/metrics"})
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	s.Contains(string(body), "go_goroutines")
}

type requestFields struct {
	Method      string
	URL         string
	Body        io.Reader
	ContentType string
	UserAgent   string
	Gzipped     bool
}

// makeRequest вспомогательная функция создающая тестовый http запрос.
func (s *AccessControllerSuite) makeRequest(fields requestFields) *http.Response {
	var body io.Reader
	if fields.Body != nil {
		body = fields.Body
	}

	// Добавляем gzip сжатие тела запроса, если надо.
	if fields.Gzipped && fields.Body != nil {
		var gzipBuffer bytes.Buffer
		gzipW, gzErr := gzip.NewWriterLevel(&gzipBuffer, gzip.BestSpeed)
		if gzErr != nil {
			s.T().Fatalf("failed to create gzip writer: %v", gzErr)
		}

		// копируем тело в gzip.Writer.
		_, copyErr := io.Copy(gzipW, fields.Body)
		if copyErr != nil {
			s.T().Fatalf("failed to copy request body to gzip writer: %v", copyErr)
		}

		if err := gzipW.Close(); err != nil {
			s.T().Fatalf("failed to close gzip writer: %v", err)
		}
		body = &gzipBuffer
	}

	request := httptest.NewRequest(fields.Method, fields.URL, body)
	if fields.ContentType != "" {
		request.Header.Set("Content-Type", fields.ContentType)
	}
	if fields.UserAgent != "" {
		request.Header.Set("User-Agent", fields.UserAgent)
	}
	if fields.Gzipped {
		request.Header.Set("Content-Encoding", "gzip")
		request.Header.Set("Accept-Encoding", "gzip")
	}

	recorder := httptest.NewRecorder()

	s.router.ServeHTTP(recorder, request)

	return recorder.Result()
}

func TestAccessControllerSuite(t *testing.T) {
	suite.Run(t, new(AccessControllerSuite))
}

func unGzip(r io.Reader) ([]byte, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gzr.Close()

	body, err := io.ReadAll(gzr)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// readBody Читает тело запроса, если тело сжатое - расжимает.
func readBody(r io.Reader, compressed bool) ([]byte, error) {
	if compressed {
		return unGzip(r)
	}
	return io.ReadAll(r)
}
