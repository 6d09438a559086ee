// internal/services/seller_export.go
package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/javajoker/mvshop-backend/internal/models"
	"github.com/javajoker/mvshop-backend/internal/repository"
)

const inventorySheet = "Inventory"

var inventoryHeaders = []string{
	"Name", "SKU", "Brand", "Price", "Stock", "Low Stock", "Active", "Approved", "Rating", "Reviews", "Total Sold",
}

// ExportProducts writes the seller's inventory into a workbook with one row
// per product.
func (s *SellerService) ExportProducts(ctx context.Context, seller *models.Seller) (*excelize.File, error) {
	products, _, err := s.products.List(ctx, repository.ProductFilter{
		SellerID: &seller.ID,
		Sort:     "name",
		Order:    "asc",
	})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", inventorySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(inventorySheet, "A1", &inventoryHeaders); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i := range products {
		p := &products[i]
		row := []interface{}{
			p.Name,
			p.SKU,
			p.Brand,
			p.Price,
			p.Stock,
			yesNo(p.IsLowStock()),
			yesNo(p.IsActive),
			yesNo(p.IsApproved),
			p.Ratings,
			p.NumReviews,
			p.TotalSold,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(inventorySheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
