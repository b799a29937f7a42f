package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnalyticsOverview is the dashboard headline block.
type AnalyticsOverview struct {
	TotalProducts    int             `json:"totalProducts"`
	ActivePOSessions int             `json:"activePoSessions"`
	TodayOrders      int             `json:"todayOrders"`
	MonthlyRevenue   decimal.Decimal `json:"monthlyRevenue"`
	OrderGrowth      float64         `json:"orderGrowth"`
	RevenueGrowth    float64         `json:"revenueGrowth"`
}

// TopProduct is a best-seller entry: total quantity across orders that are
// confirmed or further along.
type TopProduct struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Orders    int             `json:"orders"`
}

// RecentOrder is a compact order row for the dashboard.
type RecentOrder struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	CustomerName  string          `json:"customerName"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        OrderStatus     `json:"status"`
	POSessionName *string         `json:"poSessionName"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// DailyStat is one day of order count and revenue.
type DailyStat struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// AnalyticsResponse is the full dashboard payload.
type AnalyticsResponse struct {
	Overview       AnalyticsOverview   `json:"overview"`
	TopProducts    []TopProduct        `json:"topProducts"`
	RecentOrders   []RecentOrder       `json:"recentOrders"`
	OrdersByStatus map[OrderStatus]int `json:"ordersByStatus"`
	DailyStats     []DailyStat         `json:"dailyStats"`
}

// PeriodStats is an order count plus revenue over a time window.
type PeriodStats struct {
	Orders  int
	Revenue decimal.Decimal
}
