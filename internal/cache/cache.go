package cache

import (
	"context"
	"time"
)

// Cache defines the cache interface
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context, pattern string) error
}

// Keys for dashboard data. The census changes on admit/discharge, so
// writers invalidate CensusKey after mutations.
const (
	CensusKey    = "census:admitted"
	CensusTTL    = 30 * time.Second
	OrdersPrefix = "orders:"
)

// OrdersKey builds the cache key for a patient's order list.
func OrdersKey(patientID string) string {
	return OrdersPrefix + patientID
}
