package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/representatives-dao/repms/internal/codec"
)

const (
	alice = "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"
	bob   = "tz1aSkwEot3L2kmUvcoxzjMomb9mvBNuzFK6"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseProposalID(t *testing.T) {
	for input, want := range map[string]int64{"0": 0, "12": 12, "#7": 7, " 3 ": 3} {
		got, err := parseProposalID(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "-1", "#", "1.5", "seven"} {
		_, err := parseProposalID(input)
		assert.Error(t, err, input)
	}
}

func TestParseApproval(t *testing.T) {
	for _, input := range []string{"yes", "Y", "true", "approve"} {
		got, err := parseApproval(input)
		require.NoError(t, err)
		assert.True(t, got, input)
	}
	for _, input := range []string{"no", "N", "false", "reject"} {
		got, err := parseApproval(input)
		require.NoError(t, err)
		assert.False(t, got, input)
	}

	_, err := parseApproval("maybe")
	assert.EqualError(t, err, `invalid vote "maybe" (expected yes or no)`)
}

func TestCollectTransfers(t *testing.T) {
	t.Run("flags only", func(t *testing.T) {
		transfers, err := collectTransfers([]string{alice + "=1.5", " " + bob + " = 2 "}, "")
		require.NoError(t, err)
		assert.Equal(t, []codec.TransferInput{
			{Destination: alice, Amount: "1.5"},
			{Destination: bob, Amount: "2"},
		}, transfers)
	})

	t.Run("bare list file", func(t *testing.T) {
		path := writeFile(t, "transfers.yaml", `
- destination: `+alice+`
  amount: "10"
- destination: `+bob+`
  amount: 0.25
`)
		transfers, err := collectTransfers(nil, path)
		require.NoError(t, err)
		assert.Equal(t, []codec.TransferInput{
			{Destination: alice, Amount: "10"},
			{Destination: bob, Amount: "0.25"},
		}, transfers)
	})

	t.Run("file with transfers key appends to flags", func(t *testing.T) {
		path := writeFile(t, "transfers.yml", `
transfers:
  - destination: `+bob+`
    amount: "3"
`)
		transfers, err := collectTransfers([]string{alice + "=1"}, path)
		require.NoError(t, err)
		assert.Equal(t, []codec.TransferInput{
			{Destination: alice, Amount: "1"},
			{Destination: bob, Amount: "3"},
		}, transfers)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := collectTransfers(nil, writeFile(t, "empty.yaml", ""))
		assert.ErrorContains(t, err, "is empty")
	})

	t.Run("malformed file", func(t *testing.T) {
		_, err := collectTransfers(nil, writeFile(t, "bad.yaml", "- [unclosed"))
		assert.ErrorContains(t, err, "failed to parse transfers file")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := collectTransfers(nil, filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "failed to read transfers file")
	})
}

func TestLoadLambdaSource(t *testing.T) {
	code := "{ DROP ; NIL operation }"

	got, err := loadLambdaSource(code, "")
	require.NoError(t, err)
	assert.Equal(t, code, got)

	got, err = loadLambdaSource("", writeFile(t, "lambda.tz", code))
	require.NoError(t, err)
	assert.Equal(t, code, got)

	_, err = loadLambdaSource(code, "lambda.tz")
	assert.EqualError(t, err, "use either --code or --code-file, not both")

	_, err = loadLambdaSource("", "")
	assert.EqualError(t, err, "lambda code is required (--code or --code-file)")
}
