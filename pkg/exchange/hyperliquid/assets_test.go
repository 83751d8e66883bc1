package hyperliquid

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRefreshAssetsDirectory(t *testing.T) {
	venue := newStubVenue(t)
	venue.onInfo("metaAndAssetCtxs", func(call int, req map[string]any) (int, string) {
		return http.StatusOK, `{"universe":[
			{"name":"BTC","szDecimals":5,"maxLeverage":40},
			{"name":"ETH","szDecimals":4,"maxLeverage":50}
		],"assetCtxs":[
			{"markPx":"60000","midPx":"60001","oraclePx":"60002"},
			{"markPx":"2412.7","midPx":"2412.8","oraclePx":"2412.9"}
		]}`
	})
	venue.onInfo("spotMetaAndAssetCtxs", func(call int, req map[string]any) (int, string) {
		return http.StatusOK, `[
			{"tokens":[
				{"name":"PURR","szDecimals":2,"weiDecimals":5,"index":0},
				{"name":"USDC","szDecimals":8,"weiDecimals":8,"index":1}
			],"universe":[
				{"name":"PURR/USDC","tokens":[0,1],"index":0}
			]},
			[{"coin":"PURR/USDC","markPx":"0.1234","midPx":"0.1235"}]
		]`
	})

	client, _ := newTestClient(t, venue)
	ctx := context.Background()

	btc, err := client.GetAssetInfo(ctx, "BTC")
	require.NoError(t, err)
	require.Equal(t, 0, btc.ID)
	require.Equal(t, 5, btc.SzDecimals)
	require.Equal(t, MarketPerp, btc.Kind)
	require.Equal(t, "60000", btc.MarkPx)

	eth, err := client.GetAssetInfo(ctx, "ETH")
	require.NoError(t, err)
	require.Equal(t, 1, eth.ID)
	require.Equal(t, "2412.7", eth.MarkPx)

	purr, err := client.GetAssetInfo(ctx, "PURR/USDC")
	require.NoError(t, err)
	require.Equal(t, spotAssetIDOffset, purr.ID)
	require.Equal(t, MarketSpot, purr.Kind)
	require.Equal(t, 2, purr.SzDecimals)
	require.Equal(t, "0.1234", purr.MarkPx)

	_, err = client.GetAssetInfo(ctx, "DOGE")
	require.Error(t, err)
}

func TestGetAssetInfoUsesCacheWithinTTL(t *testing.T) {
	venue := newStubVenue(t)

	client, _ := newTestClient(t, venue)
	ctx := context.Background()

	_, err := client.GetAssetInfo(ctx, "ETH")
	require.NoError(t, err)
	_, err = client.GetAssetInfo(ctx, "ETH")
	require.NoError(t, err)

	// The clock never advanced, so the second lookup hits the cache.
	venue.mu.Lock()
	metaCalls := venue.infoCalls["metaAndAssetCtxs"]
	venue.mu.Unlock()
	require.Equal(t, 1, metaCalls)
}

func TestGetAssetInfoServesStaleOnRefreshFailure(t *testing.T) {
	venue := newStubVenue(t)
	venue.onInfo("metaAndAssetCtxs", func(call int, req map[string]any) (int, string) {
		if call == 0 {
			return http.StatusOK, `{"universe":[{"name":"ETH","szDecimals":4}],"assetCtxs":[{"markPx":"2412.7"}]}`
		}
		return http.StatusInternalServerError, `down`
	})

	client, clock := newTestClient(t, venue)
	ctx := context.Background()

	_, err := client.GetAssetInfo(ctx, "ETH")
	require.NoError(t, err)

	// Push past the TTL so the next lookup attempts a refresh.
	require.NoError(t, clock.Sleep(ctx, client.assetTTL+1))

	info, err := client.GetAssetInfo(ctx, "ETH")
	require.NoError(t, err)
	require.Equal(t, "2412.7", info.MarkPx)
}

func TestMetaAndAssetCtxsArrayFallback(t *testing.T) {
	var out MetaAndAssetCtxsResponse
	payload := `[{"universe":[{"name":"ETH","szDecimals":4}]},[{"markPx":"2412.7"}]]`
	require.NoError(t, out.UnmarshalJSON([]byte(payload)))
	require.Len(t, out.Universe, 1)
	require.Equal(t, "ETH", out.Universe[0].Name)
	require.Len(t, out.AssetCtxs, 1)
	require.Equal(t, "2412.7", out.AssetCtxs[0].MarkPx)
}

func TestCancelStatusUnmarshal(t *testing.T) {
	var ok CancelStatus
	require.NoError(t, ok.UnmarshalJSON([]byte(`"success"`)))
	require.True(t, ok.Success)
	require.Empty(t, ok.Error)

	var failed CancelStatus
	require.NoError(t, failed.UnmarshalJSON([]byte(`{"error":"Order already canceled"}`)))
	require.False(t, failed.Success)
	require.Equal(t, "Order already canceled", failed.Error)
}
