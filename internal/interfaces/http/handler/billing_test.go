package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	appbilling "github.com/costview/backend/internal/application/billing"
	"github.com/costview/backend/internal/application/currency"
	domain "github.com/costview/backend/internal/domain/billing"
	"github.com/costview/backend/internal/infrastructure/extsource/suite"
	"github.com/costview/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noTags struct{}

func (noTags) GetTagsForInvoice(context.Context, string) ([]domain.InvoiceTag, error) {
	return nil, nil
}

func newBillingRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	adapters := appbilling.AdapterRegistry{
		domain.SourceSuite: suite.NewClient(suite.Config{URL: "https://suite.test"}, logger),
	}
	converter := currency.NewService(currency.Config{URL: "https://rates.test"}, logger)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewBillingHandler(appbilling.NewBillingService(adapters, converter, noTags{}, logger)).RegisterRoutes(api)
	NewInvoiceHandler(appbilling.NewInvoiceService(adapters, converter, noTags{}, logger)).RegisterRoutes(api)
	return engine
}

func doRequest(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, target, nil)
	engine.ServeHTTP(recorder, request)
	return recorder
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var response dto.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestGetBillingEndpoint(t *testing.T) {
	engine := newBillingRouter(t)

	recorder := doRequest(engine, http.MethodGet, "/api/v1/billing/suite?from=2025-01-01&to=2025-12-31")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Success bool            `json:"success"`
		Data    BillingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "USD", response.Data.Currency)
	assert.Nil(t, response.Data.OriginalCurrency)
	assert.Equal(t, "suite", response.Data.Source)
	assert.Len(t, response.Data.Invoices, 12)
	for _, invoice := range response.Data.Invoices {
		assert.Equal(t, "USD", invoice.Currency)
		assert.Equal(t, "suite", invoice.Source)
		assert.NotNil(t, invoice.Tags)
	}
}

func TestGetBillingEndpointConverted(t *testing.T) {
	engine := newBillingRouter(t)

	recorder := doRequest(engine, http.MethodGet, "/api/v1/billing/suite?from=2025-01-01&to=2025-01-31&currency=eur")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Data BillingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "EUR", response.Data.Currency)
	require.NotNil(t, response.Data.OriginalCurrency)
	assert.Equal(t, "USD", *response.Data.OriginalCurrency)
	require.Len(t, response.Data.Invoices, 1)

	invoice := response.Data.Invoices[0]
	assert.Equal(t, "EUR", invoice.Currency)
	require.NotNil(t, invoice.ExchangeRate)
	// 152.16 at the 2025-01-01 USD=>EUR rate of 7.06.
	assert.Equal(t, "1074.25", invoice.Price.StringFixed(2))
}

func TestGetBillingEndpointErrors(t *testing.T) {
	engine := newBillingRouter(t)

	t.Run("unknown source", func(t *testing.T) {
		recorder := doRequest(engine, http.MethodGet, "/api/v1/billing/azure?from=2025-01-01&to=2025-12-31")
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		response := decodeResponse(t, recorder)
		require.NotNil(t, response.Error)
		assert.Equal(t, "EXTERNAL_SOURCE_NOT_SUPPORTED", response.Error.Code)
	})

	t.Run("missing range", func(t *testing.T) {
		recorder := doRequest(engine, http.MethodGet, "/api/v1/billing/suite")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		recorder := doRequest(engine, http.MethodGet, "/api/v1/billing/suite?from=01-01-2025&to=2025-12-31")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		response := decodeResponse(t, recorder)
		assert.Equal(t, "INVALID_REQUEST", response.Error.Code)
	})

	t.Run("inverted range", func(t *testing.T) {
		recorder := doRequest(engine, http.MethodGet, "/api/v1/billing/suite?from=2025-12-31&to=2025-01-01")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetInvoicesEndpoint(t *testing.T) {
	engine := newBillingRouter(t)

	recorder := doRequest(engine, http.MethodGet, "/api/v1/invoices/suite?from=2025-02-01&to=2025-04-30")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Data []InvoiceResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Len(t, response.Data, 3)
}

func TestGetInvoiceEndpoint(t *testing.T) {
	engine := newBillingRouter(t)

	t.Run("found", func(t *testing.T) {
		recorder := doRequest(engine, http.MethodGet, "/api/v1/invoices/suite/edfc6d1b-a2ef-470b-a343-b3c094766d9c")
		require.Equal(t, http.StatusOK, recorder.Code)

		var response struct {
			Data InvoiceResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
		assert.Equal(t, "152.16", response.Data.Price.StringFixed(2))
		assert.Equal(t, "2025-01-01", response.Data.Date)
	})

	t.Run("absent is 404 naming source and id", func(t *testing.T) {
		recorder := doRequest(engine, http.MethodGet, "/api/v1/invoices/suite/no-such-id")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
		response := decodeResponse(t, recorder)
		require.NotNil(t, response.Error)
		assert.Equal(t, "ITEM_NOT_FOUND", response.Error.Code)
		assert.Contains(t, response.Error.Message, "suite")
		assert.Contains(t, response.Error.Message, "no-such-id")
	})
}
