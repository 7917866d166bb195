package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	SKU           string             `bson:"sku" json:"sku"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	DiscountPrice float64            `bson:"discountPrice" json:"discountPrice"`
	Category      string             `bson:"category" json:"category"`
	Brand         string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Stock         int                `bson:"stock" json:"stock"`
	Sizes         []string           `bson:"sizes" json:"sizes"`
	Images        []string           `bson:"images" json:"images"`
	Featured      bool               `bson:"featured" json:"featured"`
	Bestseller    bool               `bson:"bestseller" json:"bestseller"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

var allowedSizes = map[string]bool{
	"XS": true, "S": true, "M": true, "L": true, "XL": true, "XXL": true,
}

// NormalizeSizes uppercases, trims and dedups the requested sizes and
// splits them into the accepted set and everything outside it.
func NormalizeSizes(input []string) (valid []string, invalid []string) {
	seen := map[string]bool{}
	for _, s := range input {
		size := strings.ToUpper(strings.TrimSpace(s))
		if size == "" || seen[size] {
			continue
		}
		seen[size] = true
		if allowedSizes[size] {
			valid = append(valid, size)
		} else {
			invalid = append(invalid, size)
		}
	}
	return valid, invalid
}

func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// Validate checks the catalog invariants: non-negative price, stock and
// discount, and discountPrice never above price.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" || p.SKU == "" || strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("name, SKU, and description are required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("valid price is required")
	}
	if p.DiscountPrice < 0 {
		return fmt.Errorf("discount price must be 0 or greater")
	}
	if p.DiscountPrice > p.Price {
		return fmt.Errorf("discount price cannot be greater than price")
	}
	if p.Stock < 0 {
		return fmt.Errorf("valid stock is required")
	}
	return nil
}
