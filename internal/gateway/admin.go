package gateway

import (
	"context"

	"github.com/example/storefront-client/internal/domain/order"
)

// OrderStatusCounts is the per-status order tally on the dashboard.
type OrderStatusCounts struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
	Cancelled  int `json:"cancelled"`
}

// UserStats is the account tally on the dashboard.
type UserStats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalAdmins    int `json:"totalAdmins"`
	TotalCustomers int `json:"totalCustomers"`
}

// LowStockProduct is a product flagged on the dashboard for running out.
type LowStockProduct struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	StockQuantity int     `json:"stockQuantity"`
	Price         float64 `json:"price"`
}

// RecentOrder is one row of the dashboard's recent-orders table.
type RecentOrder struct {
	ID         string  `json:"_id"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
	UserID     string  `json:"userId"`
	UserEmail  string  `json:"userEmail"`
}

// DashboardStats is the assembled admin dashboard view.
type DashboardStats struct {
	TotalSales       float64
	OrderStats       OrderStatusCounts
	UserStats        UserStats
	TotalProducts    int
	RecentOrders     []RecentOrder
	LowStockProducts []LowStockProduct
}

// ServiceHealth is one backing service's health report.
type ServiceHealth struct {
	Service      string `json:"service"`
	Status       string `json:"status"`
	ResponseTime string `json:"responseTime,omitempty"`
	Error        string `json:"error,omitempty"`
	Timestamp    string `json:"timestamp"`
}

// HealthReport is the aggregated health of the backend.
type HealthReport struct {
	Status    string          `json:"status"`
	Services  []ServiceHealth `json:"services"`
	Timestamp string          `json:"timestamp"`
}

// Admin is the typed gateway for the back-office resources.
type Admin struct {
	c *Client
}

type statusStat struct {
	ID    string `json:"_id"`
	Count int    `json:"count"`
}

// DashboardStats assembles the dashboard from the three per-resource stats
// endpoints. The order endpoint reports status tallies as an array of
// {_id, count} rows; they are folded into the fixed status set here.
func (g *Admin) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var orderStats struct {
		TotalRevenue float64       `json:"totalRevenue"`
		StatusStats  []statusStat  `json:"statusStats"`
		RecentOrders []RecentOrder `json:"recentOrders"`
	}
	if err := g.c.get(ctx, "/orders/admin/stats", nil, &orderStats); err != nil {
		return nil, err
	}

	var productStats struct {
		TotalProducts    int               `json:"totalProducts"`
		LowStockProducts []LowStockProduct `json:"lowStockProducts"`
	}
	if err := g.c.get(ctx, "/products/admin/stats", nil, &productStats); err != nil {
		return nil, err
	}

	var userStats UserStats
	if err := g.c.get(ctx, "/users/admin/stats", nil, &userStats); err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalSales:       orderStats.TotalRevenue,
		UserStats:        userStats,
		TotalProducts:    productStats.TotalProducts,
		RecentOrders:     orderStats.RecentOrders,
		LowStockProducts: productStats.LowStockProducts,
	}
	for _, stat := range orderStats.StatusStats {
		switch order.Status(stat.ID) {
		case order.StatusPending:
			stats.OrderStats.Pending = stat.Count
		case order.StatusProcessing:
			stats.OrderStats.Processing = stat.Count
		case order.StatusShipped:
			stats.OrderStats.Shipped = stat.Count
		case order.StatusDelivered:
			stats.OrderStats.Delivered = stat.Count
		case order.StatusCancelled:
			stats.OrderStats.Cancelled = stat.Count
		}
	}
	return stats, nil
}

// Health checks the backend's composite health endpoint.
func (g *Admin) Health(ctx context.Context) (*HealthReport, error) {
	var report HealthReport
	if err := g.c.get(ctx, "/services/health", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
