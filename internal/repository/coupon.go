package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/petrodist/fuel-orders/internal/domain/coupon"
	"github.com/petrodist/fuel-orders/internal/domain/product"
)

const listActiveCouponsSQL = `SELECT code, discount_type, value, product_kind, description
	FROM coupons WHERE active = TRUE ORDER BY code`

var _ coupon.Repository = (*CouponRepository)(nil)

// CouponRepository implements coupon.Repository backed by PostgreSQL.
type CouponRepository struct {
	pool *pgxpool.Pool
}

// NewCouponRepository returns a CouponRepository that uses the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// ListActive returns every active coupon rule.
func (r *CouponRepository) ListActive(ctx context.Context) ([]coupon.Rule, error) {
	rows, err := r.pool.Query(ctx, listActiveCouponsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing active coupons: %w", err)
	}
	return pgx.CollectRows(rows, scanCouponRule)
}

func scanCouponRule(row pgx.CollectableRow) (coupon.Rule, error) {
	var (
		rule         coupon.Rule
		discountType string
		value        decimal.Decimal
		productKind  *string
	)
	err := row.Scan(&rule.Code, &discountType, &value, &productKind, &rule.Description)
	rule.Type = coupon.DiscountType(discountType)
	rule.Value = value
	if productKind != nil {
		rule.Product = product.Kind(*productKind)
	}
	return rule, err
}
