package service

import (
	"strconv"

	"github.com/memettekkee/PT-SDA-BE-TEST-sub001/internal/product/domain"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatOptionalID(id *int64) *string {
	if id == nil {
		return nil
	}
	s := formatID(*id)
	return &s
}

func toResponse(p *domain.Product) domain.Response {
	resp := domain.Response{
		ID:          formatID(p.ID),
		MerchantID:  formatID(p.MerchantID),
		CategoryID:  formatOptionalID(p.CategoryID),
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Discount:    p.Discount,
		Weight:      p.Weight,
		Avatar:      p.Avatar,
		HasVariant:  p.HasVariant,
		Variants:    make([]domain.VariantResponse, 0, len(p.Variants)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Merchant != nil {
		resp.Merchant = &domain.MerchantRef{ID: formatID(p.Merchant.ID), Name: p.Merchant.Name}
	}
	if p.Category != nil {
		resp.Category = &domain.CategoryRef{
			ID:   formatID(p.Category.ID),
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		}
	}
	for i := range p.Variants {
		resp.Variants = append(resp.Variants, toVariantResponse(&p.Variants[i]))
	}
	return resp
}

func toVariantResponse(v *domain.Variant) domain.VariantResponse {
	resp := domain.VariantResponse{
		ID:        formatID(v.ID),
		ProductID: formatID(v.ProductID),
		SKU:       v.SKU,
		Stock:     v.Stock,
		ColourID:  formatOptionalID(v.ColourID),
		SizeID:    formatOptionalID(v.SizeID),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if v.Product != nil {
		resp.Product = &domain.ProductRef{
			ID:         formatID(v.Product.ID),
			MerchantID: formatID(v.Product.MerchantID),
			Name:       v.Product.Name,
			HasVariant: v.Product.HasVariant,
		}
	}
	if v.Colour != nil {
		resp.Colour = &domain.ColourRef{ID: formatID(v.Colour.ID), Name: v.Colour.Name, Hex: v.Colour.Hex}
	}
	if v.Size != nil {
		resp.Size = &domain.SizeRef{ID: formatID(v.Size.ID), Name: v.Size.Name}
	}
	return resp
}

func toCategoryRef(c *domain.CategorySummary) domain.CategoryRef {
	return domain.CategoryRef{ID: formatID(c.ID), Name: c.Name, Slug: c.Slug}
}
