package repository

import (
	"context"
	"time"

	"go-pos-admin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardRepository interface {
	GetDashboardStats(ctx context.Context, brandIDs, outletIDs []uuid.UUID) (*DashboardStats, error)
	GetOrderMovement(ctx context.Context, brandIDs, outletIDs []uuid.UUID, startDate, endDate time.Time) ([]OrderMovementData, error)
}

// OrderMovementData is one day of the orders chart.
type OrderMovementData struct {
	Date      string          `json:"date"`
	Orders    int64           `json:"orders"`
	Completed int64           `json:"completed"`
	Cancelled int64           `json:"cancelled"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// DashboardStats is the overview of one tenant scope.
type DashboardStats struct {
	TotalOrders     int64           `json:"total_orders"`
	OpenOrders      int64           `json:"open_orders"`
	CompletedOrders int64           `json:"completed_orders"`
	CancelledOrders int64           `json:"cancelled_orders"`
	Revenue         decimal.Decimal `json:"revenue"`
	Customers       int64           `json:"customers"`
	Items           int64           `json:"items"`
	Tables          int64           `json:"tables"`
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) scoped(ctx context.Context, m any, brandIDs, outletIDs []uuid.UUID, brandWide bool) *gorm.DB {
	return Tenancy("brand_id", "outlet_id", brandIDs, outletIDs, brandWide)(r.db.WithContext(ctx).Model(m))
}

func (r *dashboardRepo) GetDashboardStats(ctx context.Context, brandIDs, outletIDs []uuid.UUID) (*DashboardStats, error) {
	var stats DashboardStats

	row := r.scoped(ctx, &model.Order{}, brandIDs, outletIDs, false).Select(`
			COUNT(*) as total_orders,
			COALESCE(SUM(CASE WHEN order_status NOT IN ('completed', 'cancelled') THEN 1 ELSE 0 END), 0) as open_orders,
			COALESCE(SUM(CASE WHEN order_status = 'completed' THEN 1 ELSE 0 END), 0) as completed_orders,
			COALESCE(SUM(CASE WHEN order_status = 'cancelled' THEN 1 ELSE 0 END), 0) as cancelled_orders
		`).Row()
	if err := row.Scan(&stats.TotalOrders, &stats.OpenOrders, &stats.CompletedOrders, &stats.CancelledOrders); err != nil {
		return nil, err
	}

	// Revenue counts paid, completed orders only
	err := r.scoped(ctx, &model.Order{}, brandIDs, outletIDs, false).
		Where("order_status = ? AND payment_status = ?", model.OrderCompleted, model.PaymentPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&stats.Revenue)
	if err != nil {
		return nil, err
	}

	counts := []struct {
		model     any
		brandWide bool
		dest      *int64
	}{
		{&model.Customer{}, true, &stats.Customers},
		{&model.Item{}, true, &stats.Items},
		{&model.Table{}, false, &stats.Tables},
	}
	for _, c := range counts {
		if err := r.scoped(ctx, c.model, brandIDs, outletIDs, c.brandWide).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

func (r *dashboardRepo) GetOrderMovement(ctx context.Context, brandIDs, outletIDs []uuid.UUID, startDate, endDate time.Time) ([]OrderMovementData, error) {
	results := []OrderMovementData{}

	// Aggregate orders per day
	rows, err := r.scoped(ctx, &model.Order{}, brandIDs, outletIDs, false).
		Select(`
			DATE(placed_at) as date,
			COUNT(*) as orders,
			COALESCE(SUM(CASE WHEN order_status = 'completed' THEN 1 ELSE 0 END), 0) as completed,
			COALESCE(SUM(CASE WHEN order_status = 'cancelled' THEN 1 ELSE 0 END), 0) as cancelled,
			COALESCE(SUM(CASE WHEN order_status = 'completed' THEN total_amount ELSE 0 END), 0) as revenue
		`).
		Where("placed_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(placed_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data OrderMovementData
		if err := rows.Scan(&data.Date, &data.Orders, &data.Completed, &data.Cancelled, &data.Revenue); err != nil {
			return nil, err
		}
		results = append(results, data)
	}
	return results, rows.Err()
}
