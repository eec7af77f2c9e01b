package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/finacore/financials-api/models"
)

// LedgerClient talks to the business platform API that owns transactions,
// accounts and fixed assets. It is constructed once at startup with a
// service token and passed to the handlers; nothing reads credentials ad hoc.
type LedgerClient struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewLedgerClient() *LedgerClient {
	baseURL := os.Getenv("LEDGER_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:4000/api"
	}
	return &LedgerClient{
		BaseURL: baseURL,
		Token:   os.Getenv("LEDGER_API_TOKEN"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *LedgerClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("ledger API %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// GetTransactions fetches transactions inside the date range (inclusive).
func (c *LedgerClient) GetTransactions(ctx context.Context, from, to models.Date) ([]models.Transaction, error) {
	query := url.Values{}
	query.Set("fromDate", from.Format("2006-01-02"))
	query.Set("toDate", to.Format("2006-01-02"))

	var transactions []models.Transaction
	if err := c.get(ctx, "/transactions", query, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetAccounts fetches the entire chart of accounts. Accounts are assumed
// temporally stable, so no date range applies.
func (c *LedgerClient) GetAccounts(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := c.get(ctx, "/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAssets fetches the full fixed asset register.
func (c *LedgerClient) GetAssets(ctx context.Context) ([]models.Asset, error) {
	var assets []models.Asset
	if err := c.get(ctx, "/assets", nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// LedgerData is the result of one FetchAll pass. A nil error with an empty
// slice means the source genuinely returned nothing; a non-nil error in
// Errors means that source failed and its slice is empty.
type LedgerData struct {
	Transactions []models.Transaction
	Accounts     []models.Account
	Assets       []models.Asset
	Errors       FetchErrors
}

type FetchErrors struct {
	Transactions error
	Accounts     error
	Assets       error
}

// Any reports whether at least one source failed.
func (e FetchErrors) Any() bool {
	return e.Transactions != nil || e.Accounts != nil || e.Assets != nil
}

// FetchAll fires the three source fetches concurrently and waits for each
// independently. There is no retry and no cancellation of siblings: a
// failure in one source leaves that collection empty while the others still
// populate.
func (c *LedgerClient) FetchAll(ctx context.Context, from, to models.Date) LedgerData {
	var data LedgerData
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		data.Transactions, data.Errors.Transactions = c.GetTransactions(ctx, from, to)
	}()
	go func() {
		defer wg.Done()
		data.Accounts, data.Errors.Accounts = c.GetAccounts(ctx)
	}()
	go func() {
		defer wg.Done()
		data.Assets, data.Errors.Assets = c.GetAssets(ctx)
	}()
	wg.Wait()

	return data
}
