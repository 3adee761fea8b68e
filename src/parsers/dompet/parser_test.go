package dompet

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/masdompet/backend/src/models"
)

func TestParseStringValidFile(t *testing.T) {
	content := "date,type,category,amount,description\n" +
		"2024-02-01,INCOME,Gaji,5000000,Gaji Bulanan\n" +
		"\n" +
		"2024-02-02,EXPENSE,Makanan,50000\n"

	result := ParseString(content)

	require.True(t, result.Success)
	require.Empty(t, result.Errors)
	require.Len(t, result.Data, 2)

	first := result.Data[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, models.TransactionIncome, first.Type)
	assert.Equal(t, "Gaji", first.Category)
	assert.Equal(t, int64(5000000), first.Amount)
	assert.Equal(t, "Gaji Bulanan", first.Description)

	second := result.Data[1]
	assert.Equal(t, 4, second.Line)
	assert.Empty(t, second.Description)
}

func TestParseStringTemplateIsValid(t *testing.T) {
	result := ParseString(Template())
	assert.True(t, result.Success)
	assert.Len(t, result.Data, 4)
}

func TestParseStringGlobalFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", errEmptyFile},
		{"header only", "date,type,category,amount\n", errEmptyFile},
		{"missing amount column", "date,type,category,description\n2024-01-01,INCOME,Gaji,x", errInvalidHeader},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ParseString(tc.content)
			assert.False(t, result.Success)
			assert.Empty(t, result.Data)
			assert.Equal(t, []string{tc.want}, result.Errors)
		})
	}
}

func TestParseStringHeaderIsCaseInsensitive(t *testing.T) {
	result := ParseString(" Amount , DATE,Type,category\n2024-01-01,INCOME,Gaji,100")
	require.True(t, result.Success)
	require.Len(t, result.Data, 1)
	// Columns stay positional regardless of the header order.
	assert.Equal(t, int64(100), result.Data[0].Amount)
}

func TestParseStringRowErrors(t *testing.T) {
	content := strings.Join([]string{
		"date,type,category,amount,description",
		"2024-01-01,INCOME,Gaji",            // line 2
		"not-a-date,INCOME,Gaji,100",        // line 3
		"2024-01-01,income,Gaji,100",        // line 4
		"2024-01-01,EXPENSE,Makanan,abc",    // line 5
		"2024-01-01,EXPENSE,Makanan,-500",   // line 6
		"2024-01-01,EXPENSE,,500",           // line 7
		"2024-01-01,EXPENSE,Makanan,0",      // line 8
		"2024-01-03,EXPENSE,Transport,2500", // line 9
	}, "\n")

	result := ParseString(content)

	assert.False(t, result.Success)
	require.Len(t, result.Data, 1)
	assert.Equal(t, 9, result.Data[0].Line)
	assert.Equal(t, []string{
		"Line 2: incomplete data",
		"Line 3: invalid date format (not-a-date)",
		"Line 4: type must be INCOME or EXPENSE (income)",
		"Line 5: invalid amount (abc)",
		"Line 6: invalid amount (-500)",
		"Line 7: category must not be empty",
		"Line 8: invalid amount (0)",
	}, result.Errors)
}

func TestParseStringChecksRunInOrder(t *testing.T) {
	// Bad date and bad amount on one row produce only the date error.
	result := ParseString("date,type,category,amount\nxx,INCOME,Gaji,abc")
	assert.Equal(t, []string{"Line 2: invalid date format (xx)"}, result.Errors)
}

func TestParseStringSplitsOnRawCommas(t *testing.T) {
	result := ParseString("date,type,category,amount,description\n" +
		`2024-01-01,EXPENSE,Makanan,"1,500",lunch`)
	require.Len(t, result.Data, 1)
	// `"1` is read as 1; the rest of the quoted value spills into the description column.
	assert.Equal(t, int64(1), result.Data[0].Amount)
	assert.Equal(t, `500"`, result.Data[0].Description)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"150000", 150000, true},
		{"Rp 150000", 150000, true},
		{"1500.5", 1501, true},
		{"1500.4", 1500, true},
		{"2.5", 3, true},
		{".5", 1, true},
		{"5.", 5, true},
		{"1.000.000", 1, true},
		{"12abc34", 1234, true},
		{"0.4", 0, false},
		{"0", 0, false},
		{"-1", 0, false},
		{"--5", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"99999999999999999999", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseAmount(tc.in)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestParseReader(t *testing.T) {
	result, err := NewParser().Parse(strings.NewReader(Template()))
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestParseStringStripsByteOrderMark(t *testing.T) {
	result := ParseString("\ufeffdate,type,category,amount,description\r\n2024-02-01,INCOME,Gaji,5000000,Gaji\r\n")

	require.True(t, result.Success, result.Errors)
	require.Len(t, result.Data, 1)
	assert.Equal(t, int64(5000000), result.Data[0].Amount)
	assert.Equal(t, "Gaji", result.Data[0].Description)
}
