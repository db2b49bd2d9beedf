package address

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"checkout-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uint) ([]*SavedAddress, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SavedAddress, error)
	GetDefault(ctx context.Context, userID uint, addrType AddressType) (*SavedAddress, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const selectAddress = `
	SELECT
		id, user_id,
		first_name, last_name, company_name,
		street_address1, street_address2,
		city, city_area, postal_code, country, country_area,
		phone,
		is_default_billing, is_default_shipping, is_active
	FROM addresses
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAddress(row rowScanner) (*SavedAddress, error) {
	var a SavedAddress
	err := row.Scan(
		&a.ID, &a.UserID,
		&a.FirstName, &a.LastName, &a.CompanyName,
		&a.StreetAddress1, &a.StreetAddress2,
		&a.City, &a.CityArea, &a.PostalCode, &a.Country, &a.CountryArea,
		&a.Phone,
		&a.IsDefaultBilling, &a.IsDefaultShipping, &a.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID uint,
) ([]*SavedAddress, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByUserID"),
		zap.Uint("user_id", userID),
	)

	q := selectAddress + `
		WHERE user_id = $1
		  AND is_active = true
		ORDER BY is_default_billing DESC, is_default_shipping DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []*SavedAddress
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, a)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return res, nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*SavedAddress, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetByID"),
		zap.String("address_id", id.String()),
	)

	q := selectAddress + `
		WHERE id = $1 AND is_active = true
		LIMIT 1
	`

	a, err := scanAddress(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return a, nil
}

func (r *repository) GetDefault(
	ctx context.Context,
	userID uint,
	addrType AddressType,
) (*SavedAddress, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "GetDefault"),
		zap.Uint("user_id", userID),
		zap.String("type", string(addrType)),
	)

	var column string
	switch addrType {
	case TypeBilling:
		column = "is_default_billing"
	case TypeShipping:
		column = "is_default_shipping"
	default:
		return nil, ErrInvalidType
	}

	q := selectAddress + fmt.Sprintf(`
		WHERE user_id = $1
		  AND %s = true
		  AND is_active = true
		LIMIT 1
	`, column)

	a, err := scanAddress(r.db.QueryRowContext(ctx, q, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}

	return a, nil
}
