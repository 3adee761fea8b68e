// backend/src/parsers/dompet/parser.go
package dompet

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/security/validation"
)

const Source = "dompet"

// Header is the column layout of import and export files.
const Header = "date,type,category,amount,description"

var requiredColumns = []string{"date", "type", "category", "amount"}

var (
	nonNumericChars = regexp.MustCompile(`[^\d.-]`)
	// Longest leading number, the way a lenient float parser reads "12.5.3" as 12.5.
	numericPrefix = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)
	maxAmount     = decimal.NewFromInt(math.MaxInt64)
)

// Spreadsheet "CSV UTF-8" exports start with a byte order mark.
const utf8BOM = "\ufeff"

const (
	errEmptyFile     = "CSV file is empty or invalid"
	errInvalidHeader = "Invalid CSV header. Expected format: " + Header
)

// DompetParser implements the parsers.Parser interface for the app's own CSV format.
type DompetParser struct{}

func NewParser() *DompetParser {
	return &DompetParser{}
}

// Parse reads the whole file and validates it with ParseString.
func (p *DompetParser) Parse(file io.Reader) (models.ImportResult, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return models.ImportResult{}, fmt.Errorf("dompet parser: failed to read file: %w", err)
	}
	return ParseString(string(content)), nil
}

// ParseString validates CSV content row by row. It never fails: every
// malformed row yields one "Line N: ..." message and processing continues.
// Fields are split on every comma, so quoted values containing commas are
// not supported.
func ParseString(content string) models.ImportResult {
	content = strings.TrimPrefix(content, utf8BOM)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 2 {
		return globalFailure(errEmptyFile)
	}

	if !hasRequiredColumns(lines[0]) {
		return globalFailure(errInvalidHeader)
	}

	result := models.ImportResult{
		Data:   []models.ImportRow{},
		Errors: []string{},
	}

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		row, errMsg := parseRow(i+1, line)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Data = append(result.Data, row)
	}

	result.Success = len(result.Errors) == 0
	return result
}

func globalFailure(msg string) models.ImportResult {
	return models.ImportResult{
		Success: false,
		Data:    []models.ImportRow{},
		Errors:  []string{msg},
	}
}

func hasRequiredColumns(headerLine string) bool {
	present := make(map[string]bool)
	for _, col := range strings.Split(strings.ToLower(strings.TrimSpace(headerLine)), ",") {
		present[strings.TrimSpace(col)] = true
	}
	for _, required := range requiredColumns {
		if !present[required] {
			return false
		}
	}
	return true
}

func parseRow(lineNumber int, line string) (models.ImportRow, string) {
	cols := strings.Split(line, ",")
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}

	if len(cols) < 4 {
		return models.ImportRow{}, fmt.Sprintf("Line %d: incomplete data", lineNumber)
	}

	dateStr, typeStr, category, amountStr := cols[0], cols[1], cols[2], cols[3]

	date, ok := validation.ParseDate(dateStr)
	if !ok {
		return models.ImportRow{}, fmt.Sprintf("Line %d: invalid date format (%s)", lineNumber, dateStr)
	}

	txType := models.TransactionType(typeStr)
	if !txType.Valid() {
		return models.ImportRow{}, fmt.Sprintf("Line %d: type must be INCOME or EXPENSE (%s)", lineNumber, typeStr)
	}

	amount, ok := ParseAmount(amountStr)
	if !ok {
		return models.ImportRow{}, fmt.Sprintf("Line %d: invalid amount (%s)", lineNumber, amountStr)
	}

	if category == "" {
		return models.ImportRow{}, fmt.Sprintf("Line %d: category must not be empty", lineNumber)
	}

	row := models.ImportRow{
		Line:     lineNumber,
		Date:     date,
		Type:     txType,
		Category: category,
		Amount:   amount,
	}
	if len(cols) > 4 {
		row.Description = cols[4]
	}
	return row, ""
}

// ParseAmount strips everything except digits, dots and minus signs, reads
// the leading number and rounds it half away from zero. It reports false
// for non-numbers, values that are not positive after rounding, and values
// that do not fit in an int64.
func ParseAmount(raw string) (int64, bool) {
	cleaned := nonNumericChars.ReplaceAllString(raw, "")
	prefix := numericPrefix.FindString(cleaned)
	if prefix == "" {
		return 0, false
	}

	prefix = strings.TrimSuffix(prefix, ".")
	if strings.HasPrefix(prefix, ".") {
		prefix = "0" + prefix
	} else if strings.HasPrefix(prefix, "-.") {
		prefix = "-0" + prefix[1:]
	}

	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return 0, false
	}
	rounded := d.Round(0)
	if !rounded.IsPositive() || rounded.GreaterThan(maxAmount) {
		return 0, false
	}
	return rounded.IntPart(), true
}

// Template returns a sample file in the import format.
func Template() string {
	return Header + `
2024-02-01,INCOME,Gaji,5000000,Gaji Bulanan Januari
2024-02-02,EXPENSE,Makanan,50000,Makan siang
2024-02-03,EXPENSE,Transport,25000,Ongkos ke kantor
2024-02-04,INCOME,Bonus,1000000,Bonus project
`
}
