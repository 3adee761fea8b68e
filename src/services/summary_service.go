// backend/src/services/summary_service.go
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/masdompet/backend/src/logger"
	"github.com/username/masdompet/backend/src/model"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/processors"
)

const (
	ckSummary              = "agg_dashboard_summary"
	DefaultCacheExpiration = 5 * time.Minute
	CacheCleanupInterval   = 10 * time.Minute
)

type summaryServiceImpl struct {
	db               *sql.DB
	summaryProcessor processors.SummaryProcessor
	reportCache      *cache.Cache
}

func NewSummaryService(db *sql.DB, summaryProcessor processors.SummaryProcessor, reportCache *cache.Cache) SummaryService {
	return &summaryServiceImpl{
		db:               db,
		summaryProcessor: summaryProcessor,
		reportCache:      reportCache,
	}
}

func (s *summaryServiceImpl) GetSummary(ctx context.Context) (*models.Summary, error) {
	if s.reportCache != nil {
		if cached, found := s.reportCache.Get(ckSummary); found {
			logger.FromContext(ctx).Debug("Summary served from cache")
			return cached.(*models.Summary), nil
		}
	}

	txs, err := model.ListTransactions(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for summary: %w", err)
	}
	debts, err := model.ListDebts(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load debts for summary: %w", err)
	}
	investments, err := model.ListInvestments(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load investments for summary: %w", err)
	}

	summary := s.summaryProcessor.Process(txs, debts, investments)
	if s.reportCache != nil {
		s.reportCache.Set(ckSummary, &summary, cache.DefaultExpiration)
	}
	logger.FromContext(ctx).Debug("Summary computed", "transactions", len(txs), "debts", len(debts), "investments", len(investments))
	return &summary, nil
}

func (s *summaryServiceImpl) Invalidate() {
	invalidateSummary(s.reportCache)
}

// invalidateSummary drops the cached dashboard aggregate. Every write calls it.
func invalidateSummary(reportCache *cache.Cache) {
	if reportCache != nil {
		reportCache.Delete(ckSummary)
	}
}
