package validation

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, s := range []string{"2024-02-01", " 2024-02-01 ", "2024/02/01", "02/01/2024", "01-02-2024", "2024-02-01T00:00:00Z"} {
		got, ok := ParseDate(s)
		require.True(t, ok, s)
		assert.True(t, want.Equal(got), s)
	}

	_, ok := ParseDate("kemarin")
	assert.False(t, ok)
	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestValidateDateString(t *testing.T) {
	_, err := ValidateDateString("", "date")
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = ValidateDateString("2024-13-45", "date")
	assert.ErrorIs(t, err, ErrValidationFailed)
	_, err = ValidateDateString("2024-02-29", "date")
	assert.NoError(t, err)
}

func TestFieldValidators(t *testing.T) {
	assert.ErrorIs(t, ValidateRequiredText("   ", 10, "name"), ErrValidationFailed)
	assert.ErrorIs(t, ValidateRequiredText(strings.Repeat("a", 11), 10, "name"), ErrValidationFailed)
	assert.NoError(t, ValidateRequiredText("Dompetku", 10, "name"))
	// Length is counted in characters, not bytes.
	assert.NoError(t, ValidateStringMaxLength("🤲🤲", 2, "icon"))

	assert.ErrorIs(t, ValidatePositiveAmount(0, "amount"), ErrValidationFailed)
	assert.NoError(t, ValidatePositiveAmount(1, "amount"))
	assert.ErrorIs(t, ValidateNonNegativeAmount(-1, "target"), ErrValidationFailed)
	assert.NoError(t, ValidateNonNegativeAmount(0, "target"))
	assert.ErrorIs(t, ValidateDateRequired(time.Time{}, "date"), ErrValidationFailed)
}

func TestSanitizers(t *testing.T) {
	assert.Equal(t, "Makan & Minum", SanitizeText("  <b>Makan</b> & Minum "))
	assert.Equal(t, "", SanitizeText("<script>alert(1)</script>"))
	assert.Equal(t, "ab", StripUnprintable("a\x00b"))

	assert.Equal(t, "'=SUM(A1:A2)", SanitizeForFormulaInjection("=SUM(A1:A2)"))
	assert.Equal(t, "' @cmd", SanitizeForFormulaInjection(" @cmd"))
	assert.Equal(t, "Gaji", SanitizeForFormulaInjection("Gaji"))
	assert.Equal(t, "", SanitizeForFormulaInjection(""))
}

func TestCheckXSSPatterns(t *testing.T) {
	assert.ErrorIs(t, CheckXSSPatterns("javascript:alert(1)", "cover image"), ErrValidationFailed)
	assert.ErrorIs(t, CheckXSSPatterns(`<img src="data:text/html,x">`, "cover image"), ErrValidationFailed)
	assert.NoError(t, CheckXSSPatterns("https://images.example.com/bali.jpg", "cover image"))
}

func TestValidateClientContentType(t *testing.T) {
	assert.NoError(t, ValidateClientContentType("text/csv; charset=utf-8"))
	assert.NoError(t, ValidateClientContentType("application/vnd.ms-excel"))
	assert.ErrorIs(t, ValidateClientContentType("application/octet-stream"), ErrValidationFailed)
	assert.ErrorIs(t, ValidateClientContentType("image/png"), ErrValidationFailed)
}

func TestValidateFileContentByMagicBytes(t *testing.T) {
	file := bytes.NewReader([]byte("date,type,category,amount,description\n2024-02-01,INCOME,Gaji,5000000,\n"))
	detected, err := ValidateFileContentByMagicBytes(file)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", detected)
	pos, _ := file.Seek(0, 1)
	assert.Zero(t, pos, "reader must be rewound for the parser")

	// A multi-byte rune split at the 1 KiB boundary is still text.
	content := strings.Repeat("a", 1023) + "é" + "\n"
	_, err = ValidateFileContentByMagicBytes(strings.NewReader(content))
	assert.NoError(t, err)

	_, err = ValidateFileContentByMagicBytes(bytes.NewReader([]byte{0x89, 'P', 'N', 'G', 0x00, 0x01}))
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = ValidateFileContentByMagicBytes(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrValidationFailed)
}
