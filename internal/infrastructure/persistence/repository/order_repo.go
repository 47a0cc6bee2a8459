package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/garyjia/speedauth/internal/application/port"
	"github.com/garyjia/speedauth/internal/domain/entity"
	"github.com/garyjia/speedauth/internal/infrastructure/persistence/sqldb"
	"go.uber.org/zap"
)

const orderColumns = `
	order_id, order_date, from_date_of_service, to_date_of_service, order_type,
	order_description, order_priority, order_icd_code, order_cpt_code, order_status,
	units, provider_npi_number, insurance_id`

// OrderRepository implements port.OrderRepository
type OrderRepository struct {
	db     *sqldb.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqldb.DB, logger *zap.Logger) port.OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new order
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := r.db.Rebind(`
		INSERT INTO orders (
			order_date, from_date_of_service, to_date_of_service, order_type,
			order_description, order_priority, order_icd_code, order_cpt_code,
			order_status, units, provider_npi_number, insurance_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING order_id
	`)

	err := r.db.Executor(ctx).QueryRowContext(ctx, query,
		order.OrderDate,
		order.FromDateOfService,
		order.ToDateOfService,
		order.OrderType,
		order.OrderDescription,
		order.OrderPriority,
		order.OrderICDCode,
		order.OrderCPTCode,
		order.OrderStatus,
		order.Units,
		order.ProviderNPINumber,
		order.InsuranceID,
	).Scan(&order.OrderID)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err))
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	query := r.db.Rebind(`SELECT ` + orderColumns + ` FROM orders WHERE order_id = ?`)

	order, err := scanOrder(r.db.Executor(ctx).QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get order by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// List returns all orders
func (r *OrderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.db.Executor(ctx).QueryContext(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY order_id`)
	if err != nil {
		r.logger.Error("Failed to list orders", zap.Error(err))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*entity.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func scanOrder(s rowScanner) (*entity.Order, error) {
	var o entity.Order
	err := s.Scan(
		&o.OrderID,
		&o.OrderDate,
		&o.FromDateOfService,
		&o.ToDateOfService,
		&o.OrderType,
		&o.OrderDescription,
		&o.OrderPriority,
		&o.OrderICDCode,
		&o.OrderCPTCode,
		&o.OrderStatus,
		&o.Units,
		&o.ProviderNPINumber,
		&o.InsuranceID,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

var _ port.OrderRepository = (*OrderRepository)(nil)
