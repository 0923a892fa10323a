package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"TRSY1", "TRSY2", "TRSY3"}, cfg.Books)
	assert.Equal(t, schema.Price(100*256), cfg.Quote)
	assert.Equal(t, 6, cfg.Registry.Count())
	assert.Equal(t, "out", cfg.OutDir)
	assert.Equal(t, 4096, cfg.QueueCapacity)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"books": ["DESK1", "DESK2"],
		"quote": "99-080",
		"pv01": {"2Y": "0.0015"},
		"outDir": "logs",
		"queueCapacity": 128,
		"seed": 42
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"DESK1", "DESK2"}, cfg.Books)
	assert.Equal(t, schema.Price(99*256+64), cfg.Quote)
	assert.Equal(t, "logs", cfg.OutDir)
	assert.Equal(t, 128, cfg.QueueCapacity)
	assert.Equal(t, int64(42), cfg.Seed)

	pv01, ok := cfg.Registry.PV01PerUnit("2Y")
	require.True(t, ok)
	assert.True(t, pv01.Equal(decimal.RequireFromString("0.0015")))
	pv01, _ = cfg.Registry.PV01PerUnit("10Y")
	assert.True(t, pv01.Equal(decimal.RequireFromString("0.0021")))
}

func TestLoadBondTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"bonds": [
			{"tenor": "2Y", "cusip": "912828F62", "coupon": "0.015", "maturity": "2019-10-31", "pv01": "0.002"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Registry.Count())
	bond, ok := cfg.Registry.Bond("2Y")
	require.True(t, ok)
	assert.Equal(t, "912828F62", bond.CUSIP)
	assert.Equal(t, "T", bond.Issuer)
}

func TestLoadRejectsBadQuote(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"quote": "xyz"}`), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
