package hyperliquid

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testKeyHex = "0x4c0883a69102937d6231471b5dbb6204fe5129617082796fe3f6a4ab2ed5f8d2"

// capturedRequest is one decoded POST observed by the stub venue.
type capturedRequest struct {
	Path   string
	Type   string
	Nonce  int64
	Action map[string]any
	Raw    map[string]any
}

// stubVenue fakes the /info and /exchange endpoints for tests.
type stubVenue struct {
	t  *testing.T
	mu sync.Mutex

	requests []capturedRequest

	// infoHandlers keys on the info request type.
	infoHandlers map[string]func(call int, req map[string]any) (int, string)
	// exchangeHandlers keys on the action type.
	exchangeHandlers map[string]func(call int, req capturedRequest) (int, string)

	infoCalls     map[string]int
	exchangeCalls map[string]int
}

func newStubVenue(t *testing.T) *stubVenue {
	v := &stubVenue{
		t:                t,
		infoHandlers:     map[string]func(int, map[string]any) (int, string){},
		exchangeHandlers: map[string]func(int, capturedRequest) (int, string){},
		infoCalls:        map[string]int{},
		exchangeCalls:    map[string]int{},
	}
	v.serveMinimalMeta()
	return v
}

// serveMinimalMeta installs default meta handlers: one perp asset ETH with
// szDecimals 4 and mark 2412.7, no spot pairs.
func (v *stubVenue) serveMinimalMeta() {
	v.onInfo("metaAndAssetCtxs", func(int, map[string]any) (int, string) {
		return http.StatusOK, `{"universe":[{"name":"ETH","szDecimals":4,"maxLeverage":50}],` +
			`"assetCtxs":[{"markPx":"2412.7","midPx":"2412.7","oraclePx":"2412.7"}]}`
	})
	v.onInfo("spotMetaAndAssetCtxs", func(int, map[string]any) (int, string) {
		return http.StatusOK, `[{"tokens":[],"universe":[]},[]]`
	})
}

func (v *stubVenue) onInfo(reqType string, fn func(call int, req map[string]any) (int, string)) {
	v.infoHandlers[reqType] = fn
}

func (v *stubVenue) onExchange(actionType string, fn func(call int, req capturedRequest) (int, string)) {
	v.exchangeHandlers[actionType] = fn
}

func (v *stubVenue) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(v.t, err)
		var raw map[string]any
		require.NoError(v.t, json.Unmarshal(body, &raw))

		v.mu.Lock()
		var status int
		var payload string
		switch r.URL.Path {
		case infoPath:
			reqType, _ := raw["type"].(string)
			v.requests = append(v.requests, capturedRequest{Path: infoPath, Type: reqType, Raw: raw})
			fn, ok := v.infoHandlers[reqType]
			if !ok {
				v.mu.Unlock()
				v.t.Fatalf("unexpected info request type %q", reqType)
				return
			}
			call := v.infoCalls[reqType]
			v.infoCalls[reqType]++
			status, payload = fn(call, raw)
		case exchangePath:
			action, _ := raw["action"].(map[string]any)
			actionType, _ := action["type"].(string)
			nonce, _ := raw["nonce"].(float64)
			captured := capturedRequest{
				Path:   exchangePath,
				Type:   actionType,
				Nonce:  int64(nonce),
				Action: action,
				Raw:    raw,
			}
			v.requests = append(v.requests, captured)
			fn, ok := v.exchangeHandlers[actionType]
			if !ok {
				v.mu.Unlock()
				v.t.Fatalf("unexpected exchange action type %q", actionType)
				return
			}
			call := v.exchangeCalls[actionType]
			v.exchangeCalls[actionType]++
			status, payload = fn(call, captured)
		default:
			v.mu.Unlock()
			v.t.Fatalf("unexpected path %q", r.URL.Path)
			return
		}
		v.mu.Unlock()

		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}
}

func (v *stubVenue) exchangeRequests(actionType string) []capturedRequest {
	v.mu.Lock()
	defer v.mu.Unlock()
	var out []capturedRequest
	for _, req := range v.requests {
		if req.Path == exchangePath && req.Type == actionType {
			out = append(out, req)
		}
	}
	return out
}

// fakeClock advances only when the client sleeps, keeping polls deterministic.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Unix(1700000000, 0)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cur
}

func (f *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	f.cur = f.cur.Add(d)
	f.mu.Unlock()
	return nil
}

func newTestClient(t *testing.T, venue *stubVenue, opts ...ClientOption) (*Client, *fakeClock) {
	t.Helper()
	srv := httptest.NewServer(venue.handler())
	t.Cleanup(srv.Close)

	clock := newFakeClock()
	base := []ClientOption{
		WithBaseURL(srv.URL),
		WithClock(clock.Now),
		WithSleep(clock.Sleep),
	}
	client, err := NewClient(testKeyHex, true, append(base, opts...)...)
	require.NoError(t, err)
	return client, clock
}

func okOrderResponse(oid int64) string {
	return `{"status":"ok","response":{"type":"order","data":{"statuses":[{"resting":{"oid":` +
		jsonInt(oid) + `}}]}}}`
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestExchangeRetryUsesFreshNonce(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("updateLeverage", func(call int, req capturedRequest) (int, string) {
		if call < 2 {
			return http.StatusInternalServerError, `busy`
		}
		return http.StatusOK, `{"status":"ok","response":{"type":"default"}}`
	})

	client, _ := newTestClient(t, venue)
	err := client.UpdateLeverage(context.Background(), "ETH", true, 10)
	require.NoError(t, err)

	reqs := venue.exchangeRequests("updateLeverage")
	require.Len(t, reqs, 3)
	require.Less(t, reqs[0].Nonce, reqs[1].Nonce)
	require.Less(t, reqs[1].Nonce, reqs[2].Nonce)
}

func TestExchangeRejectionNotRetried(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("updateLeverage", func(call int, req capturedRequest) (int, string) {
		return http.StatusOK, `{"status":"err","response":"Insufficient margin to update leverage."}`
	})

	client, _ := newTestClient(t, venue)
	err := client.UpdateLeverage(context.Background(), "ETH", true, 10)
	require.Error(t, err)

	var reject *RejectError
	require.ErrorAs(t, err, &reject)
	require.Equal(t, CodeInsufficientMargin, reject.Code)
	require.False(t, reject.Retryable())
	require.Len(t, venue.exchangeRequests("updateLeverage"), 1)
}

func TestExchangeRetriesExhausted(t *testing.T) {
	venue := newStubVenue(t)
	venue.onExchange("updateLeverage", func(call int, req capturedRequest) (int, string) {
		return http.StatusBadGateway, `upstream down`
	})

	client, _ := newTestClient(t, venue)
	err := client.UpdateLeverage(context.Background(), "ETH", true, 10)
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
	require.Len(t, venue.exchangeRequests("updateLeverage"), maxRetryAttempts)
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient("", true)
	require.Error(t, err)

	_, err = NewClient("not-a-key", true)
	require.Error(t, err)

	client, err := NewClient(testKeyHex, true)
	require.NoError(t, err)
	require.NotEmpty(t, client.Address())
}
