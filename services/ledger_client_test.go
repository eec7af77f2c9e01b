package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *LedgerClient {
	return &LedgerClient{
		BaseURL: url,
		Token:   "test-token",
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGetTransactions_RequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("fromDate"))
		assert.Equal(t, "2024-03-31", r.URL.Query().Get("toDate"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "t1", "type": "income", "amount": 1000.50, "description": "Invoice", "date": "2024-02-01", "category": "Sales Revenue", "account_id": "bank"},
			{"id": "t2", "type": "expense", "amount": "200", "description": "Rent", "date": "2024-02-05", "category": null, "account_id": "bank"},
			{"id": "t3", "type": "expense", "amount": "not-a-number", "description": "Broken", "date": "2024-02-06", "category": null, "account_id": "bank"}
		]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	transactions, err := client.GetTransactions(context.Background(),
		day(2024, time.January, 1), day(2024, time.March, 31))

	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.True(t, transactions[0].Amount.Equal(dec("1000.50")))
	assert.True(t, transactions[1].Amount.Equal(dec("200")))
	assert.Nil(t, transactions[1].Category)
	// Unparseable amounts contribute nothing instead of failing the fetch.
	assert.True(t, transactions[2].Amount.IsZero())
}

func TestGetAccounts_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetAccounts(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestGetAssets_Decodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assets", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": "a1", "name": "Van", "cost": "10000", "date_received": "2024-01-01", "accumulated_depreciation": "2000"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	assets, err := client.GetAssets(context.Background())

	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.True(t, assets[0].NetBookValue().Equal(dec("8000")))
}

func TestFetchAll_IndependentFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/transactions":
			w.Write([]byte(`[{"id": "t1", "type": "income", "amount": "100", "description": "x", "date": "2024-02-01", "category": null, "account_id": "bank"}]`))
		case "/accounts":
			http.Error(w, "accounts down", http.StatusBadGateway)
		case "/assets":
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	data := client.FetchAll(context.Background(), day(2024, time.January, 1), day(2024, time.March, 31))

	// One source failing leaves the others populated.
	assert.NoError(t, data.Errors.Transactions)
	assert.Error(t, data.Errors.Accounts)
	assert.NoError(t, data.Errors.Assets)
	assert.Len(t, data.Transactions, 1)
	assert.Empty(t, data.Accounts)
	assert.True(t, data.Errors.Any())
}
