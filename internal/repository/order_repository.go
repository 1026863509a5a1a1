package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nicuhealth/central-station/internal/database"
	"github.com/nicuhealth/central-station/internal/models"
)

// OrderRepository handles clinical order database operations
type OrderRepository struct{}

// NewOrderRepository creates a new order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create creates a new order
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := database.DB.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// ListByPatient retrieves orders for a patient, newest first
func (r *OrderRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := database.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListActive retrieves all active orders
func (r *OrderRepository) ListActive(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := database.DB.WithContext(ctx).
		Where("status = ?", "active").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
