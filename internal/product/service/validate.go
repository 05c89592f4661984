package service

import (
	"math"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
)

// pendingVariant is a validated variant ready to insert.
type pendingVariant struct {
	sku      string
	stock    int
	colourID *int64
	sizeID   *int64
}

// variantChange is a validated in-place variant update. A nil field is left untouched.
type variantChange struct {
	id       int64
	sku      *string
	stock    *int
	colourID **int64
	sizeID   **int64
}

func (c variantChange) empty() bool {
	return c.sku == nil && c.stock == nil && c.colourID == nil && c.sizeID == nil
}

type variantPlan struct {
	create []pendingVariant
	update []variantChange
	delete []int64
}

func parseID(raw string, invalid error) (int64, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, invalid
	}
	return id.Int64(), nil
}

// parseOptionalID maps nil to "not supplied", an empty string to "clear" and anything else to an id.
func parseOptionalID(raw *string, invalid error) (supplied bool, id *int64, err error) {
	if raw == nil {
		return false, nil, nil
	}
	value := strings.TrimSpace(*raw)
	if value == "" {
		return true, nil, nil
	}
	parsed, err := parseID(value, invalid)
	if err != nil {
		return true, nil, err
	}
	return true, &parsed, nil
}

// nullable unwraps p so a nil pointer is written as SQL NULL.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validatePrice(price *float64) (float64, error) {
	if price == nil || !validAmount(*price) || *price <= 0 {
		return 0, domain.ErrInvalidPrice
	}
	return *price, nil
}

func validateNonNegative(value *float64, invalid error) (float64, error) {
	if value == nil {
		return 0, nil
	}
	if !validAmount(*value) || *value < 0 {
		return 0, invalid
	}
	return *value, nil
}

func normalizeDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func validateVariantInput(in domain.VariantInput) (pendingVariant, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return pendingVariant{}, domain.ErrInvalidSKU
	}
	if in.Stock == nil || *in.Stock < 0 {
		return pendingVariant{}, domain.ErrInvalidStock
	}
	_, colourID, err := parseOptionalID(in.ColourID, domain.ErrInvalidColour)
	if err != nil {
		return pendingVariant{}, err
	}
	_, sizeID, err := parseOptionalID(in.SizeID, domain.ErrInvalidSize)
	if err != nil {
		return pendingVariant{}, err
	}
	return pendingVariant{sku: sku, stock: *in.Stock, colourID: colourID, sizeID: sizeID}, nil
}

func validateVariantChange(rawID string, sku *string, stock *int, colour, size *string) (variantChange, error) {
	id, err := parseID(rawID, domain.ErrInvalidVariantID)
	if err != nil {
		return variantChange{}, err
	}
	change := variantChange{id: id}

	if sku != nil {
		trimmed := strings.TrimSpace(*sku)
		if trimmed == "" {
			return variantChange{}, domain.ErrInvalidSKU
		}
		change.sku = &trimmed
	}
	if stock != nil {
		if *stock < 0 {
			return variantChange{}, domain.ErrInvalidStock
		}
		value := *stock
		change.stock = &value
	}

	supplied, colourID, err := parseOptionalID(colour, domain.ErrInvalidColour)
	if err != nil {
		return variantChange{}, err
	}
	if supplied {
		change.colourID = &colourID
	}
	supplied, sizeID, err := parseOptionalID(size, domain.ErrInvalidSize)
	if err != nil {
		return variantChange{}, err
	}
	if supplied {
		change.sizeID = &sizeID
	}
	return change, nil
}

func (c variantChange) fields() map[string]any {
	fields := map[string]any{}
	if c.sku != nil {
		fields["sku"] = *c.sku
	}
	if c.stock != nil {
		fields["stock"] = *c.stock
	}
	if c.colourID != nil {
		fields["colour_id"] = nullable(*c.colourID)
	}
	if c.sizeID != nil {
		fields["size_id"] = nullable(*c.sizeID)
	}
	return fields
}

// buildPlan validates a whole variant batch before any transaction is opened.
// The same sku may not appear twice among the created and updated entries.
func buildPlan(batch *domain.VariantBatch) (variantPlan, error) {
	var plan variantPlan
	if batch == nil {
		return plan, nil
	}

	seen := map[string]struct{}{}
	claim := func(sku string) error {
		if _, ok := seen[sku]; ok {
			return domain.ErrDuplicateSKU
		}
		seen[sku] = struct{}{}
		return nil
	}

	for _, in := range batch.Create {
		pending, err := validateVariantInput(in)
		if err != nil {
			return variantPlan{}, err
		}
		if err := claim(pending.sku); err != nil {
			return variantPlan{}, err
		}
		plan.create = append(plan.create, pending)
	}

	for _, patch := range batch.Update {
		change, err := validateVariantChange(patch.ID, patch.SKU, patch.Stock, patch.ColourID, patch.SizeID)
		if err != nil {
			return variantPlan{}, err
		}
		if change.sku != nil {
			if err := claim(*change.sku); err != nil {
				return variantPlan{}, err
			}
		}
		plan.update = append(plan.update, change)
	}

	for _, raw := range batch.Delete {
		id, err := parseID(raw, domain.ErrInvalidVariantID)
		if err != nil {
			return variantPlan{}, err
		}
		plan.delete = append(plan.delete, id)
	}
	return plan, nil
}
