package hyperliquid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	mainnetBaseURL = "https://api.hyperliquid.xyz"
	testnetBaseURL = "https://api.hyperliquid-testnet.xyz"

	infoPath     = "/info"
	exchangePath = "/exchange"

	defaultHTTPTimeout  = 30 * time.Second
	defaultRetryBackoff = 200 * time.Millisecond
	maxRetryAttempts    = 3
)

// Client coordinates signed requests against Hyperliquid exchange endpoints.
type Client struct {
	infoURL     string
	exchangeURL string
	httpClient  *http.Client
	signer      Signer
	address     string // API wallet address (derived from signer)
	mainAddress string // Main account address (for info requests when using API wallet)
	isTestnet   bool
	logger      *log.Logger
	clock       func() time.Time
	sleep       func(ctx context.Context, d time.Duration) error
	nonces      *NonceClock
	vault       string
	expiry      *int64 // expiresAfter applied to every signed action, optional

	assetMu      sync.RWMutex
	assets       map[string]AssetInfo
	assetTTL     time.Duration
	assetLastRef time.Time
}

// ClientOption customises the Hyperliquid client.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger attaches a custom logger (defaults to log.Default()).
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithBaseURL points the client at a different API host (primarily for testing).
func WithBaseURL(base string) ClientOption {
	return func(c *Client) {
		base = strings.TrimRight(base, "/")
		if base != "" {
			c.infoURL = base + infoPath
			c.exchangeURL = base + exchangePath
		}
	}
}

// WithVaultAddress configures a vault address for signing requests.
func WithVaultAddress(addr string) ClientOption {
	return func(c *Client) {
		if common.IsHexAddress(addr) {
			c.vault = common.HexToAddress(addr).Hex()
		}
	}
}

// WithMainAddress configures the main account address for info requests.
// This is used when the API wallet (agent wallet) is different from the main
// account. Info requests must use the main account's public address, while
// exchange requests are signed by the API wallet on behalf of the main account.
func WithMainAddress(addr string) ClientOption {
	return func(c *Client) {
		if common.IsHexAddress(addr) {
			c.mainAddress = common.HexToAddress(addr).Hex()
		}
	}
}

// WithClock overrides the time source (primarily for testing).
func WithClock(clock func() time.Time) ClientOption {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
			c.nonces = NewNonceClock(clock)
		}
	}
}

// WithSleep overrides how the client waits between retries and polls
// (primarily for testing).
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) ClientOption {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// WithExpiresAfter sets an expiry timestamp (ms) attached to every signed
// action. The venue rejects actions landing after it.
func WithExpiresAfter(expiresAfter int64) ClientOption {
	return func(c *Client) {
		if expiresAfter > 0 {
			c.expiry = &expiresAfter
		}
	}
}

// WithAssetCacheTTL sets a time-to-live for the asset directory cache.
// When positive, the client refreshes asset metadata after TTL elapses.
func WithAssetCacheTTL(ttl time.Duration) ClientOption {
	return func(c *Client) {
		if ttl > 0 {
			c.assetTTL = ttl
		}
	}
}

// getInfoAddress returns the address to use for info requests. If mainAddress
// is configured (API wallet scenario), it takes precedence over the signer's.
func (c *Client) getInfoAddress() string {
	if c.mainAddress != "" {
		return c.mainAddress
	}
	return c.address
}

// NewClient constructs a Hyperliquid trading client using the provided private key.
func NewClient(privateKeyHex string, isTestnet bool, opts ...ClientOption) (*Client, error) {
	if privateKeyHex == "" {
		return nil, fmt.Errorf("hyperliquid: private key is required")
	}

	signer, err := NewPrivateKeySigner(privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("hyperliquid: create signer: %w", err)
	}

	base := mainnetBaseURL
	if isTestnet {
		base = testnetBaseURL
	}
	client := &Client{
		infoURL:     base + infoPath,
		exchangeURL: base + exchangePath,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		signer:    signer,
		address:   signer.GetAddress(),
		isTestnet: isTestnet,
		logger:    log.Default(),
		clock:     time.Now,
		sleep:     sleepContext,
		nonces:    NewNonceClock(time.Now),
		assets:    make(map[string]AssetInfo),
		assetTTL:  time.Minute,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if client.logger == nil {
		client.logger = log.Default()
	}
	if client.clock == nil {
		client.clock = time.Now
	}
	if client.sleep == nil {
		client.sleep = sleepContext
	}
	if client.nonces == nil {
		client.nonces = NewNonceClock(client.clock)
	}
	return client, nil
}

// Address returns the signer wallet address.
func (c *Client) Address() string {
	return c.address
}

// doInfoRequest queries the public info endpoint.
func (c *Client) doInfoRequest(ctx context.Context, req InfoRequest, result interface{}) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("hyperliquid: encode info request: %w", err)
	}
	backoff := defaultRetryBackoff
	var lastErr error
	for attempt := 0; attempt < maxRetryAttempts; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.infoURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("hyperliquid: build info request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("hyperliquid: read info response: %w", readErr)
			} else if resp.StatusCode < http.StatusOK || resp.StatusCode >= 300 {
				lastErr = fmt.Errorf("hyperliquid: info http status %d: %s", resp.StatusCode, string(body))
			} else if result != nil {
				if err := json.Unmarshal(body, result); err != nil {
					return fmt.Errorf("hyperliquid: decode info response: %w", err)
				}
				return nil
			} else {
				return nil
			}
		}

		if err := c.sleep(ctx, backoff); err != nil {
			return err
		}
		backoff *= 2
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("hyperliquid: info request failed")
}

// doExchangeRequest signs and submits an exchange action. Each attempt draws
// a fresh nonce and signature so retried requests never replay a stale one.
// Transport failures and non-2xx statuses are retried with exponential
// backoff; application-level rejections are returned to the caller untouched.
func (c *Client) doExchangeRequest(ctx context.Context, action Action) (*exchangeResponseBody, error) {
	backoff := defaultRetryBackoff
	var lastErr error
	for attempt := 0; attempt < maxRetryAttempts; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, backoff); err != nil {
				return nil, err
			}
			backoff *= 2
		}

		nonce := c.nonces.Next()
		sig, err := SignL1Action(c.signer, action, nonce, c.vault, c.expiry, !c.isTestnet)
		if err != nil {
			return nil, err
		}
		exchangeReq := ExchangeRequest{
			Action:       action,
			Nonce:        nonce,
			Signature:    *sig,
			VaultAddress: c.vault,
			ExpiresAfter: c.expiry,
		}
		payload, err := json.Marshal(exchangeReq)
		if err != nil {
			return nil, fmt.Errorf("hyperliquid: encode exchange request: %w", err)
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.exchangeURL, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("hyperliquid: build exchange request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("hyperliquid: read exchange response: %w", readErr)
			continue
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("hyperliquid: exchange http status %d: %s", resp.StatusCode, string(body))
			continue
		}

		var envelope exchangeAPIResponse
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("hyperliquid: decode exchange response: %w", err)
		}
		if envelope.Status != "ok" {
			var message string
			if err := json.Unmarshal(envelope.Response, &message); err != nil || message == "" {
				message = string(envelope.Response)
			}
			return nil, classifyRejection(message)
		}

		var result exchangeResponseBody
		if len(envelope.Response) > 0 {
			if err := json.Unmarshal(envelope.Response, &result); err != nil {
				return nil, fmt.Errorf("hyperliquid: decode exchange payload: %w", err)
			}
		}
		return &result, nil
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("hyperliquid: exchange request failed")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (c *Client) logf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
