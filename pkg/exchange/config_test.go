package exchange

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	Provider
	name string
	cfg  *ProviderConfig
}

func registerStubBuilder(t *testing.T, typeName string) {
	t.Helper()
	RegisterProvider(typeName, func(name string, cfg *ProviderConfig) (Provider, error) {
		return &stubProvider{name: name, cfg: cfg}, nil
	})
}

func TestLoadConfigFromReader(t *testing.T) {
	registerStubBuilder(t, "stubvenue")

	yaml := `
default: main
providers:
  main:
    type: stubvenue
    private_key: "0xabc"
    timeout: 45s
  vaulted:
    type: stubvenue
    vault_address: "0x1111111111111111111111111111111111111111"
    testnet: true
`
	cfg, err := LoadConfigFromReader(strings.NewReader(yaml))
	require.NoError(t, err)
	require.Equal(t, "main", cfg.Default)
	require.Len(t, cfg.Providers, 2)
	require.Equal(t, 45*time.Second, cfg.Providers["main"].Timeout)
	require.True(t, cfg.Providers["vaulted"].Testnet)

	providers, err := cfg.BuildProviders()
	require.NoError(t, err)
	require.Len(t, providers, 2)

	def, err := cfg.DefaultProvider(providers)
	require.NoError(t, err)
	require.Equal(t, "main", def.(*stubProvider).name)
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	registerStubBuilder(t, "stubenv")
	t.Setenv("STUB_PRIVATE_KEY", "0xsecret")

	yaml := `
providers:
  main:
    type: stubenv
    private_key: "${STUB_PRIVATE_KEY}"
`
	cfg, err := LoadConfigFromReader(strings.NewReader(yaml))
	require.NoError(t, err)
	require.Equal(t, "0xsecret", cfg.Providers["main"].PrivateKey)
}

func TestLoadConfigValidation(t *testing.T) {
	registerStubBuilder(t, "stubv")

	t.Run("empty providers", func(t *testing.T) {
		_, err := LoadConfigFromReader(strings.NewReader(`providers: {}`))
		require.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		yaml := `
providers:
  main:
    type: nosuchvenue
`
		_, err := LoadConfigFromReader(strings.NewReader(yaml))
		require.Error(t, err)
	})

	t.Run("missing default", func(t *testing.T) {
		yaml := `
default: other
providers:
  main:
    type: stubv
`
		_, err := LoadConfigFromReader(strings.NewReader(yaml))
		require.Error(t, err)
	})

	t.Run("bad timeout", func(t *testing.T) {
		yaml := `
providers:
  main:
    type: stubv
    timeout: soon
`
		_, err := LoadConfigFromReader(strings.NewReader(yaml))
		require.Error(t, err)
	})

	t.Run("hyperliquid requires private key", func(t *testing.T) {
		RegisterProvider("hyperliquid", func(name string, cfg *ProviderConfig) (Provider, error) {
			return &stubProvider{name: name, cfg: cfg}, nil
		})
		yaml := `
providers:
  main:
    type: hyperliquid
`
		_, err := LoadConfigFromReader(strings.NewReader(yaml))
		require.Error(t, err)
	})
}

func TestGetProviderInline(t *testing.T) {
	registerStubBuilder(t, "stubinline")

	provider, err := GetProvider("stubinline", &ProviderConfig{PrivateKey: "0xabc"})
	require.NoError(t, err)
	require.Equal(t, "inline", provider.(*stubProvider).name)

	_, err = GetProvider("unregistered", nil)
	require.Error(t, err)
}
