// backend/src/parsers/parser.go
package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/parsers/dompet"
)

// Parser turns an uploaded file into validated candidate transactions.
// Malformed rows are reported in the result; the error return is reserved
// for failures reading the input.
type Parser interface {
	Parse(file io.Reader) (models.ImportResult, error)
}

// GetParser returns the parser registered for an import source.
// An empty source selects the default "dompet" format.
func GetParser(source string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", dompet.Source:
		return dompet.NewParser(), nil
	default:
		return nil, fmt.Errorf("unsupported import source: %s", source)
	}
}
