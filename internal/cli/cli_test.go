package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const filing = `{
	"income": [{"category": "salary", "amount": "1000000"}],
	"deductions": [{"section": "80C", "amount": "150000"}],
	"taxes_paid": "60000"
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestCompare_JSON(t *testing.T) {
	path := writeFile(t, "filing.json", []byte(filing))

	out, err := run(t, "compare", "--file", path)
	require.NoError(t, err)

	var res struct {
		RecommendedRegime string `json:"recommended_regime"`
		SavingsAmount     string `json:"savings_amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "NEW", res.RecommendedRegime)
	assert.Equal(t, "20800", res.SavingsAmount)
}

func TestCompare_Text(t *testing.T) {
	path := writeFile(t, "filing.json", []byte(filing))

	out, err := run(t, "compare", "-f", path, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended: NEW (saves 20800.00)")
	assert.Contains(t, out, "75400.00")
	assert.Contains(t, out, "-15400.00")
}

func TestCompare_RebateFromEnvironment(t *testing.T) {
	path := writeFile(t, "filing.json", []byte(`{"income": [{"category": "salary", "amount": "700000"}]}`))

	out, err := run(t, "compare", "-f", path, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended: NEW (saves 23400.00)")

	t.Setenv("TAX_APPLY_REBATE_87A", "true")
	out, err = run(t, "compare", "-f", path, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Recommended: NEW (saves 44200.00)")
}

func TestCompare_ConfigFile(t *testing.T) {
	path := writeFile(t, "filing.json", []byte(`{"age_category": "senior", "income": [{"category": "salary", "amount": "450000"}]}`))
	cfg := writeFile(t, "itr.yaml", []byte("age-based-slabs: true\n"))

	out, err := run(t, "compare", "-f", path, "--config", cfg)
	require.NoError(t, err)

	var res struct {
		OldRegimeResult struct {
			TotalTaxLiability string `json:"total_tax_liability"`
		} `json:"old_regime_result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	// 400000 taxable with a 300000 zero band: 5% of 100000 plus cess.
	assert.Equal(t, "5200", res.OldRegimeResult.TotalTaxLiability)
}

func TestCompare_EncryptedRoundTrip(t *testing.T) {
	t.Setenv("TAX_PASSPHRASE", "correct horse battery staple")

	sealed, err := encryptData([]byte(filing), "correct horse battery staple")
	require.NoError(t, err)
	require.True(t, isEncrypted(sealed))
	path := writeFile(t, "filing.json.age", sealed)
	outPath := filepath.Join(t.TempDir(), "result.age")

	_, err = run(t, "compare", "-f", path, "--encrypt", "-o", outPath)
	require.NoError(t, err)

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.True(t, isEncrypted(raw))

	plain, err := decryptData(raw, "correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, string(plain), `"recommended_regime": "NEW"`)

	_, err = decryptData(raw, "wrong")
	assert.Error(t, err)
}

func TestCompare_EncryptedWithoutPassphrase(t *testing.T) {
	t.Setenv("TAX_PASSPHRASE", "")

	sealed, err := encryptData([]byte(filing), "secret")
	require.NoError(t, err)
	path := writeFile(t, "filing.json.age", sealed)

	_, err = run(t, "compare", "-f", path)
	assert.ErrorIs(t, err, errNoPassphrase)
}

func TestCompare_Errors(t *testing.T) {
	_, err := run(t, "compare")
	assert.Error(t, err)

	bad := writeFile(t, "bad.json", []byte(`{"income": [{"category": "salary", "amount": "-1"}]}`))
	_, err = run(t, "compare", "-f", bad)
	assert.ErrorContains(t, err, "invalid income amount")

	good := writeFile(t, "filing.json", []byte(filing))
	_, err = run(t, "compare", "-f", good, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestSchedules(t *testing.T) {
	out, err := run(t, "schedules")
	require.NoError(t, err)
	assert.Contains(t, out, "standard deduction 50000")

	out, err = run(t, "schedules", "--json")
	require.NoError(t, err)
	var res map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Contains(t, res, "old")
	assert.Contains(t, res, "new")
}
