// Package importer loads a seller's product catalog from CSV.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"greenledger/internal/domain"
)

// ProductWriter saves parsed products; the order service's par-level
// validation applies to imported rows the same as to manual edits.
type ProductWriter interface {
	Create(ctx context.Context, sellerID string, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads a catalog export and creates one product per row.
type CSVImporter struct {
	reader   *csv.Reader
	products ProductWriter
	sellerID string
}

func NewCSVImporter(r io.Reader, products ProductWriter, sellerID string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		products: products,
		sellerID: sellerID,
	}
}

// Column order: name, sku, tagNumber, unit, pricingKind, eachValue,
// unitPrice, the seven slot prices in weight-break order, onHand, parLevel.
var columns = []string{
	"name", "sku", "tagNumber", "unit", "pricingKind", "eachValue", "unitPrice",
	"slot0.5g", "slot1g", "slot2g", "slot3.5g", "slot7g", "slot14g", "slot28g",
	"onHand", "parLevel",
}

// Run parses rows and creates products, returning the number imported. The
// first invalid row aborts the import.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return 0, fmt.Errorf("missing column %q", col)
		}
	}

	imported := 0
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		product, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+2, err)
		}
		if product == nil {
			continue
		}
		if _, err := i.products.Create(ctx, i.sellerID, *product); err != nil {
			return imported, fmt.Errorf("row %d (%s): %w", imported+2, product.Name, err)
		}
		imported++
	}
	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.TrimSpace(h)] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	field := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	name := field("name")
	if name == "" {
		return nil, nil
	}

	p := domain.Product{
		Name:      name,
		SKU:       field("sku"),
		TagNumber: field("tagNumber"),
		Unit:      domain.MeasurementUnit(field("unit")),
		Pricing: domain.PricingDefinition{
			Kind:      domain.PricingKind(field("pricingKind")),
			EachValue: domain.EachValue(field("eachValue")),
		},
	}

	var err error
	if p.Pricing.UnitPrice, err = parseDecimal(field("unitPrice")); err != nil {
		return nil, fmt.Errorf("unitPrice: %w", err)
	}
	slotCols := []string{"slot0.5g", "slot1g", "slot2g", "slot3.5g", "slot7g", "slot14g", "slot28g"}
	for i, col := range slotCols {
		if p.Pricing.Slots[i], err = parseDecimal(field(col)); err != nil {
			return nil, fmt.Errorf("%s: %w", col, err)
		}
	}
	if p.OnHand, err = parseDecimal(field("onHand")); err != nil {
		return nil, fmt.Errorf("onHand: %w", err)
	}
	if p.ParLevel, err = parseDecimal(field("parLevel")); err != nil {
		return nil, fmt.Errorf("parLevel: %w", err)
	}
	return &p, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
