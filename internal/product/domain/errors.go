package domain

import "errors"

var (
	ErrInvalidMerchant  = errors.New("invalid_merchant")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrInvalidDiscount  = errors.New("invalid_discount")
	ErrInvalidWeight    = errors.New("invalid_weight")
	ErrInvalidCategory  = errors.New("invalid_category")
	ErrInvalidColour    = errors.New("invalid_colour")
	ErrInvalidSize      = errors.New("invalid_size")
	ErrInvalidSKU       = errors.New("invalid_sku")
	ErrInvalidStock     = errors.New("invalid_stock")
	ErrInvalidVariantID = errors.New("invalid_variant_id")

	ErrNotFound        = errors.New("not_found")
	ErrVariantNotFound = errors.New("variant_not_found")
	ErrDuplicateSKU    = errors.New("duplicate_sku")
)

// IsValidationError reports whether err was raised by input validation.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidMerchant),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidDiscount),
		errors.Is(err, ErrInvalidWeight),
		errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidColour),
		errors.Is(err, ErrInvalidSize),
		errors.Is(err, ErrInvalidSKU),
		errors.Is(err, ErrInvalidStock),
		errors.Is(err, ErrInvalidVariantID):
		return true
	default:
		return false
	}
}
