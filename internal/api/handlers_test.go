package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"card-gateway/internal/common/logger"
	"card-gateway/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	result     gateway.Result
	lastData   map[string]interface{}
	lastSecret string
	calls      int
}

func (s *stubService) GenerateCard(_ context.Context, data map[string]interface{}) gateway.Result {
	s.calls++
	s.lastData = data
	return s.result
}

func (s *stubService) Deposit(_ context.Context, data map[string]interface{}) gateway.Result {
	s.calls++
	s.lastData = data
	return s.result
}

func (s *stubService) CheckBalance(_ context.Context, data map[string]interface{}, secretCode string) gateway.Result {
	s.calls++
	s.lastData = data
	s.lastSecret = secretCode
	return s.result
}

func (s *stubService) Withdraw(_ context.Context, data map[string]interface{}) gateway.Result {
	s.calls++
	s.lastData = data
	return s.result
}

func (s *stubService) ActivateCard(_ context.Context, data map[string]interface{}) gateway.Result {
	s.calls++
	s.lastData = data
	return s.result
}

func newTestServer(t *testing.T, service *stubService) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	NewHandler(service, logger.NewTestLogger(t), nil).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestGenerateCardRoute(t *testing.T) {
	service := &stubService{result: gateway.Result{Code: 200, ARN: "abc", Data: map[string]interface{}{"ResponseCode": "I2C00"}}}
	server := newTestServer(t, service)

	resp := postJSON(t, server.URL+"/v1/cards", `{"Card":{"StartingNumbers":"508877"}}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, service.calls)
	assert.Equal(t, map[string]interface{}{"StartingNumbers": "508877"}, service.lastData["Card"])

	var result gateway.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 200, result.Code)
	assert.Equal(t, "abc", result.ARN)
}

func TestDeclinedResultMapsTo422(t *testing.T) {
	service := &stubService{result: gateway.Result{Code: 422, Message: "Validation error"}}
	server := newTestServer(t, service)

	resp := postJSON(t, server.URL+"/v1/cards/load", `{"Amount":"10"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestTransportFaultMapsToBadGateway(t *testing.T) {
	service := &stubService{result: gateway.Result{Code: 503, Message: "connection refused"}}
	server := newTestServer(t, service)

	resp := postJSON(t, server.URL+"/v1/cards/debit", `{"Amount":"10"}`)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestCheckBalanceRoutePassesSecret(t *testing.T) {
	service := &stubService{result: gateway.Result{Code: 200}}
	server := newTestServer(t, service)

	resp := postJSON(t, server.URL+"/v1/cards/balance",
		`{"data":{"Card":{"ReferenceID":"R1"}},"secretCode":"1234"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1234", service.lastSecret)
	assert.Equal(t, map[string]interface{}{"Card": map[string]interface{}{"ReferenceID": "R1"}}, service.lastData)
}

func TestCheckBalanceRouteRejectsMissingSecret(t *testing.T) {
	service := &stubService{result: gateway.Result{Code: 200}}
	server := newTestServer(t, service)

	resp := postJSON(t, server.URL+"/v1/cards/balance", `{"data":{"Card":{}}}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, service.calls)
}

func TestMalformedBodyRejected(t *testing.T) {
	service := &stubService{result: gateway.Result{Code: 200}}
	server := newTestServer(t, service)

	resp := postJSON(t, server.URL+"/v1/cards/activate", `{not json`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, service.calls)
}
