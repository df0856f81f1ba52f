package compare

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFormatter_Format(t *testing.T) {
	result := (&TableFormatter{}).Format(sampleResultSet())

	assert.Contains(t, result, "RETIREMENT WHAT-IF COMPARISON")
	assert.Contains(t, result, "Base Plan: household")
	assert.Contains(t, result, "Input File: /path/to/household.yaml")
	assert.Contains(t, result, "Seed: 42 (stochastic)")
	assert.Contains(t, result, "household (base)")
	assert.Contains(t, result, "postpone_2yr: Work 2 more year(s) before retiring")
	assert.Contains(t, result, "Retirement Savings: +$400.0K (16.0%)")
	assert.Contains(t, result, "Sustainability:     +5 points")
	assert.Contains(t, result, "Longevity:          +2 years")
	assert.Contains(t, result, "RECOMMENDATIONS")
	assert.Contains(t, result, "- Most Savings: postpone_2yr")
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	set := sampleResultSet()
	set.AlternativeResults = nil
	set.Recommendations = nil
	set.Deterministic = true

	result := (&TableFormatter{}).Format(set)
	assert.Contains(t, result, "household (base)")
	assert.Contains(t, result, "(deterministic)")
	assert.NotContains(t, result, "COMPARISON TO BASE")
	assert.NotContains(t, result, "RECOMMENDATIONS")
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "2.50M", tf.formatDecimal(decimal.NewFromInt(2500000)))
	assert.Equal(t, "12.3K", tf.formatDecimal(decimal.NewFromInt(-12345)))
	assert.Equal(t, "999", tf.formatDecimal(decimal.NewFromInt(999)))
	assert.Equal(t, "+", tf.deltaSymbol(decimal.NewFromInt(1)))
	assert.Equal(t, "-", tf.deltaSymbol(decimal.NewFromInt(-1)))
	assert.Equal(t, " ", tf.deltaSymbol(decimal.Zero))
	assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "short", tf.truncate("short", 10))

	row := tf.formatRow(sampleResultSet().BaseResult, 26, 12, false)
	assert.Contains(t, row, "$2.50M")
	assert.Contains(t, row, "90/100")
	assert.Contains(t, row, "age 95")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	set := sampleResultSet()
	same := *set.BaseResult
	same.ScenarioName = "lower_withdrawal"
	set.AlternativeResults = append(set.AlternativeResults, same)

	assert.Equal(t, "Base: household | postpone_2yr: +$400.0K | lower_withdrawal: =", (&TableFormatter{}).FormatCompact(set))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleResultSet())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,Type,Retirement Age"))
	assert.Equal(t, "household,base,65,67,4.00,2500000.00,130000.00,90,86,95,4000000.00,0.00,0.00,0,0,0.00", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "postpone_2yr,alternative,67,"))
	assert.True(t, strings.HasSuffix(lines[2], ",400000.00,16.00,5,2,600000.00"))
}

func TestJSONFormatter_Format(t *testing.T) {
	set := sampleResultSet()

	compact, err := (&JSONFormatter{}).Format(set)
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")

	pretty, err := (&JSONFormatter{Pretty: true}).Format(set)
	require.NoError(t, err)
	assert.Contains(t, pretty, "\n  \"baseScenarioName\": \"household\"")

	var decoded ComparisonSet
	require.NoError(t, json.Unmarshal([]byte(pretty), &decoded))
	assert.Equal(t, int64(42), decoded.Seed)
	require.Len(t, decoded.AlternativeResults, 1)
	assert.Equal(t, 2, decoded.AlternativeResults[0].LongevityDiff)
	assert.True(t, decoded.AlternativeResults[0].SavingsDiffFromBase.Equal(decimal.NewFromInt(400000)))
}
