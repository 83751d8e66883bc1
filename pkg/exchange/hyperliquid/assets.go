package hyperliquid

import (
	"context"
	"fmt"
)

// spotAssetIDOffset separates spot pair ids from perp universe indices.
const spotAssetIDOffset = 10000

// GetAssetInfo resolves an asset name ("BTC", "PURR/USDC") to directory
// metadata, refreshing the directory when the cache is stale or the name is
// unknown.
func (c *Client) GetAssetInfo(ctx context.Context, name string) (AssetInfo, error) {
	c.assetMu.RLock()
	info, ok := c.assets[name]
	fresh := c.assetTTL > 0 && c.clock().Sub(c.assetLastRef) < c.assetTTL
	c.assetMu.RUnlock()
	if ok && fresh {
		return info, nil
	}

	if err := c.RefreshAssets(ctx); err != nil {
		if ok {
			// Serve the stale entry rather than fail the caller.
			c.logf("hyperliquid: asset refresh failed, using cached %s: %v", name, err)
			return info, nil
		}
		return AssetInfo{}, err
	}

	c.assetMu.RLock()
	info, ok = c.assets[name]
	c.assetMu.RUnlock()
	if !ok {
		return AssetInfo{}, fmt.Errorf("hyperliquid: unknown asset %q", name)
	}
	return info, nil
}

// RefreshAssets reloads the perp and spot asset directories.
func (c *Client) RefreshAssets(ctx context.Context) error {
	var meta MetaAndAssetCtxsResponse
	if err := c.doInfoRequest(ctx, InfoRequest{Type: "metaAndAssetCtxs"}, &meta); err != nil {
		return fmt.Errorf("hyperliquid: load perp meta: %w", err)
	}
	var spot SpotMetaAndAssetCtxsResponse
	if err := c.doInfoRequest(ctx, InfoRequest{Type: "spotMetaAndAssetCtxs"}, &spot); err != nil {
		return fmt.Errorf("hyperliquid: load spot meta: %w", err)
	}

	assets := make(map[string]AssetInfo, len(meta.Universe)+len(spot.Meta.Universe))
	for i, entry := range meta.Universe {
		info := AssetInfo{
			Name:         entry.Name,
			ID:           i,
			SzDecimals:   entry.SzDecimals,
			Kind:         MarketPerp,
			MaxLeverage:  entry.MaxLeverage,
			OnlyIsolated: entry.OnlyIsolated,
			IsDelisted:   entry.IsDelisted,
		}
		if i < len(meta.AssetCtxs) {
			info.MarkPx = meta.AssetCtxs[i].MarkPx
			info.MidPx = meta.AssetCtxs[i].MidPx
			info.OraclePx = meta.AssetCtxs[i].OraclePx
		}
		assets[entry.Name] = info
	}

	spotCtxs := make(map[string]SpotAssetCtx, len(spot.AssetCtxs))
	for _, ctxEntry := range spot.AssetCtxs {
		spotCtxs[ctxEntry.Coin] = ctxEntry
	}
	for _, pair := range spot.Meta.Universe {
		if len(pair.Tokens) < 2 {
			continue
		}
		base, quote := pair.Tokens[0], pair.Tokens[1]
		if base >= len(spot.Meta.Tokens) || quote >= len(spot.Meta.Tokens) {
			continue
		}
		name := spot.Meta.Tokens[base].Name + "/" + spot.Meta.Tokens[quote].Name
		info := AssetInfo{
			Name:       name,
			ID:         spotAssetIDOffset + pair.Index,
			SzDecimals: spot.Meta.Tokens[base].SzDecimals,
			Kind:       MarketSpot,
		}
		if ctxEntry, ok := spotCtxs[pair.Name]; ok {
			info.MarkPx = ctxEntry.MarkPx
			info.MidPx = ctxEntry.MidPx
		}
		assets[name] = info
	}

	c.assetMu.Lock()
	c.assets = assets
	c.assetLastRef = c.clock()
	c.assetMu.Unlock()
	return nil
}
