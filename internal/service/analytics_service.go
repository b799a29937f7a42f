package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"dapur-manis/internal/model"
	"dapur-manis/internal/repository"

	"github.com/rs/zerolog"
)

const (
	topProductCount  = 5
	recentOrderCount = 5
	dailyStatDays    = 7
)

// analyticsService implements AnalyticsService.
type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	logger        zerolog.Logger
	now           func() time.Time
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, logger zerolog.Logger) AnalyticsService {
	return &analyticsService{
		analyticsRepo: analyticsRepo,
		logger:        logger.With().Str("service", "analytics").Logger(),
		now:           time.Now,
	}
}

// Dashboard aggregates overview numbers, best sellers, recent orders, status
// tallies and the daily series.
func (s *analyticsService) Dashboard(ctx context.Context) (*model.AnalyticsResponse, error) {
	now := s.now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	// Weeks start on Sunday.
	startOfWeek := startOfToday.AddDate(0, 0, -int(now.Weekday()))
	startOfLastWeek := startOfWeek.AddDate(0, 0, -7)

	totalProducts, err := s.analyticsRepo.CountAvailableProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count products")
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	activeSessions, err := s.analyticsRepo.CountActiveSessions(ctx, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count active sessions")
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	todayOrders, err := s.analyticsRepo.CountOrdersSince(ctx, startOfToday)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count today orders")
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	monthlyRevenue, err := s.analyticsRepo.RevenueSince(ctx, startOfMonth)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to sum monthly revenue")
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	thisWeek, err := s.analyticsRepo.PeriodStats(ctx, startOfWeek, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load current week stats")
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	lastWeek, err := s.analyticsRepo.PeriodStats(ctx, startOfLastWeek, startOfWeek)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load previous week stats")
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	topProducts, err := s.analyticsRepo.TopProducts(ctx, topProductCount)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load top products")
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	recentOrders, err := s.analyticsRepo.RecentOrders(ctx, recentOrderCount)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load recent orders")
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	byStatus, err := s.analyticsRepo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to tally orders by status")
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	daily, err := s.analyticsRepo.DailyStats(ctx, dailyStatDays)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load daily stats")
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	orderGrowth := growthPercent(float64(thisWeek.Orders), float64(lastWeek.Orders))

	thisWeekRevenue, _ := thisWeek.Revenue.Float64()
	lastWeekRevenue, _ := lastWeek.Revenue.Float64()
	revenueGrowth := growthPercent(thisWeekRevenue, lastWeekRevenue)

	return &model.AnalyticsResponse{
		Overview: model.AnalyticsOverview{
			TotalProducts:    totalProducts,
			ActivePOSessions: activeSessions,
			TodayOrders:      todayOrders,
			MonthlyRevenue:   monthlyRevenue,
			OrderGrowth:      orderGrowth,
			RevenueGrowth:    revenueGrowth,
		},
		TopProducts:    topProducts,
		RecentOrders:   recentOrders,
		OrdersByStatus: byStatus,
		DailyStats:     daily,
	}, nil
}

// growthPercent returns the relative change from previous to current as a
// percentage rounded to two decimals. A zero previous period reports zero
// growth rather than a division blowup.
func growthPercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return math.Round((current-previous)/previous*100*100) / 100
}
