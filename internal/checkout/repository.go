package checkout

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"checkout-be/internal/address"
	"checkout-be/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const pgUniqueViolation = "23505"

type Repository interface {
	Create(ctx context.Context, c *Checkout) error
	GetByID(ctx context.Context, id uuid.UUID) (*Checkout, error)
	UpdateBillingAddress(ctx context.Context, id uuid.UUID, addr *address.Address) (time.Time, error)
	UpdateShippingAddress(ctx context.Context, id uuid.UUID, addr *address.Address) (time.Time, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func encodeAddress(a *address.Address) (any, error) {
	if a == nil {
		return nil, nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeAddress(raw []byte) (*address.Address, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var a address.Address
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Create(
	ctx context.Context,
	c *Checkout,
) error {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Checkout"),
		zap.String("method", "Create"),
		zap.String("checkout_id", c.ID.String()),
	)

	shipping, err := encodeAddress(c.ShippingAddress)
	if err != nil {
		return fmt.Errorf("encode shipping address: %w", err)
	}
	billing, err := encodeAddress(c.BillingAddress)
	if err != nil {
		return fmt.Errorf("encode billing address: %w", err)
	}

	const q = `
		INSERT INTO checkouts (
			id, user_id, email, language_code,
			is_shipping_required,
			shipping_address, billing_address
		) VALUES (
			$1, $2, $3, $4,
			$5,
			$6, $7
		)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRowContext(
		ctx, q,
		c.ID, c.UserID, c.Email, c.LanguageCode,
		c.IsShippingRequired,
		shipping, billing,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			log.Warn("checkout already exists")
			return ErrFailedCreateCheckout
		}
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*Checkout, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Checkout"),
		zap.String("method", "GetByID"),
		zap.String("checkout_id", id.String()),
	)

	const q = `
		SELECT
			id, user_id, email, language_code,
			is_shipping_required,
			shipping_address, billing_address,
			created_at, updated_at
		FROM checkouts
		WHERE id = $1
	`

	var (
		c                       Checkout
		userID                  sql.NullInt64
		shippingRaw, billingRaw []byte
	)

	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &userID, &c.Email, &c.LanguageCode,
		&c.IsShippingRequired,
		&shippingRaw, &billingRaw,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCheckoutNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	if userID.Valid {
		uid := uint(userID.Int64)
		c.UserID = &uid
	}

	if c.ShippingAddress, err = decodeAddress(shippingRaw); err != nil {
		log.Error("corrupt shipping address", zap.Error(err))
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	if c.BillingAddress, err = decodeAddress(billingRaw); err != nil {
		log.Error("corrupt billing address", zap.Error(err))
		return nil, fmt.Errorf("decode billing address: %w", err)
	}

	return &c, nil
}

func (r *repository) UpdateBillingAddress(
	ctx context.Context,
	id uuid.UUID,
	addr *address.Address,
) (time.Time, error) {
	return r.updateAddress(ctx, id, "billing_address", addr)
}

func (r *repository) UpdateShippingAddress(
	ctx context.Context,
	id uuid.UUID,
	addr *address.Address,
) (time.Time, error) {
	return r.updateAddress(ctx, id, "shipping_address", addr)
}

// updateAddress writes one of the two address columns. column is never
// user input.
func (r *repository) updateAddress(
	ctx context.Context,
	id uuid.UUID,
	column string,
	addr *address.Address,
) (time.Time, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Checkout"),
		zap.String("method", "updateAddress"),
		zap.String("column", column),
		zap.String("checkout_id", id.String()),
	)

	payload, err := encodeAddress(addr)
	if err != nil {
		return time.Time{}, fmt.Errorf("encode %s: %w", column, err)
	}

	q := fmt.Sprintf(`
		UPDATE checkouts
		SET %s = $1,
		    updated_at = NOW()
		WHERE id = $2
		RETURNING updated_at
	`, column)

	var updatedAt time.Time
	err = r.db.QueryRowContext(ctx, q, payload, id).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrCheckoutNotFound
	}
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return time.Time{}, err
	}

	log.Debug("address column updated")
	return updatedAt, nil
}
