// backend/src/services/import_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/parsers"
	"github.com/username/masdompet/backend/src/processors"
	"github.com/username/masdompet/backend/src/security/validation"
)

type importServiceImpl struct {
	ledgerService        LedgerService
	transactionProcessor *processors.TransactionProcessor
}

func NewImportService(ledgerService LedgerService, transactionProcessor *processors.TransactionProcessor) ImportService {
	return &importServiceImpl{
		ledgerService:        ledgerService,
		transactionProcessor: transactionProcessor,
	}
}

func (s *importServiceImpl) parse(ctx context.Context, file io.Reader, source string) (*models.ImportResult, error) {
	parser, err := parsers.GetParser(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	result, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	s.rejectUnstorable(&result)
	logger.FromContext(ctx).Info("Import file parsed", "source", source, "validRows", len(result.Data), "rejectedRows", len(result.Errors))
	return &result, nil
}

// rejectUnstorable moves rows the ledger would refuse, such as an overlong
// description or a category that is empty once sanitized, from Data to Errors.
func (s *importServiceImpl) rejectUnstorable(result *models.ImportResult) {
	kept := result.Data[:0]
	for _, row := range result.Data {
		if _, err := s.transactionProcessor.FromInput(row.ToInput()); err != nil {
			reason := strings.TrimPrefix(err.Error(), validation.ErrValidationFailed.Error()+": ")
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: %s", row.Line, reason))
			continue
		}
		kept = append(kept, row)
	}
	result.Data = kept
	result.Success = len(result.Errors) == 0
}

func (s *importServiceImpl) Preview(ctx context.Context, file io.Reader, source string) (*models.ImportResult, error) {
	return s.parse(ctx, file, source)
}

func (s *importServiceImpl) Import(ctx context.Context, file io.Reader, source string, strict bool) (*models.ImportResult, error) {
	startTime := time.Now()
	result, err := s.parse(ctx, file, source)
	if err != nil {
		return nil, err
	}

	if strict && len(result.Errors) > 0 {
		logger.FromContext(ctx).Warn("Strict import aborted because of rejected rows", "rejectedRows", len(result.Errors))
		return result, nil
	}
	if len(result.Data) == 0 {
		return result, nil
	}

	inputs := make([]models.TransactionInput, 0, len(result.Data))
	for _, row := range result.Data {
		inputs = append(inputs, row.ToInput())
	}
	inserted, err := s.ledgerService.BulkCreateTransactions(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to store imported rows: %w", err)
	}
	result.Inserted = len(inserted)

	logger.FromContext(ctx).Info("Import completed", "source", source, "inserted", result.Inserted, "duration", time.Since(startTime))
	return result, nil
}
