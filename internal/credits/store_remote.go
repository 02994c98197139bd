package credits

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// RemoteConfig points at the external balance API.
type RemoteConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	TokenURL     string
	Timeout      time.Duration
}

// remoteStore reads and writes balances through the external balance API.
// The API stores absolute balances, so a debit is a read followed by a write of the remainder;
// mu serializes that pair within this process.
type remoteStore struct {
	baseURL string
	client  *http.Client
	mu      sync.Mutex
}

// NewRemoteStore builds a remote store. When client credentials are configured, requests carry an
// OAuth2 bearer token obtained with the client-credentials grant.
func NewRemoteStore(cfg RemoteConfig) *remoteStore {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	base := &http.Client{Timeout: timeout}
	client := base
	if cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.TokenURL != "" {
		cc := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		client = cc.Client(ctx)
		client.Timeout = timeout
	}
	return &remoteStore{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  client,
	}
}

type balanceResponse struct {
	Balance *int   `json:"balance"`
	Credits *int   `json:"credits"`
	Plan    string `json:"plan"`
}

type updateCreditRequest struct {
	UserID string `json:"userId"`
	Credit int    `json:"credit"`
}

func (s *remoteStore) Get(ctx context.Context, userID string) (Account, error) {
	q := url.Values{"userId": []string{userID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/v1/auth/myBalance?"+q.Encode(), nil)
	if err != nil {
		return Account{}, err
	}
	return s.do(req)
}

func (s *remoteStore) Consume(ctx context.Context, userID string, n int) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.Get(ctx, userID)
	if err != nil {
		return Account{}, err
	}
	if n <= 0 {
		return a, nil
	}
	if a.Credits < n {
		return a, ErrInsufficientCredits
	}
	return s.put(ctx, userID, a.Credits-n, a.Plan)
}

func (s *remoteStore) Grant(ctx context.Context, userID string, n int) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.Get(ctx, userID)
	if err != nil {
		return Account{}, err
	}
	next := a.Credits + n
	if next < 0 {
		next = 0
	}
	return s.put(ctx, userID, next, a.Plan)
}

func (s *remoteStore) put(ctx context.Context, userID string, remaining int, plan string) (Account, error) {
	body, err := json.Marshal(updateCreditRequest{UserID: userID, Credit: remaining})
	if err != nil {
		return Account{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/v1/auth/updateCredit", bytes.NewReader(body))
	if err != nil {
		return Account{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	a, err := s.do(req)
	if err != nil {
		return Account{}, err
	}
	if a.Plan == PlanFree && plan != "" {
		a.Plan = plan
	}
	return a, nil
}

func (s *remoteStore) do(req *http.Request) (Account, error) {
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Account{}, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Account{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed balanceResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Account{}, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	a := Account{Plan: PlanFree, UpdatedAt: time.Now().UTC()}
	switch {
	case parsed.Balance != nil:
		a.Credits = *parsed.Balance
	case parsed.Credits != nil:
		a.Credits = *parsed.Credits
	default:
		return Account{}, fmt.Errorf("%w: response has no balance", ErrUnavailable)
	}
	if parsed.Plan != "" {
		a.Plan = strings.ToLower(parsed.Plan)
	}
	return a, nil
}
