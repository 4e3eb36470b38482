// Package seed loads a CSV catalog into a running backend through the
// gateway's admin client.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"kitstore/internal/domain"
	"kitstore/internal/gateway"
)

type ProductWriter interface {
	CreateProduct(ctx context.Context, in gateway.ProductInput) (*domain.Product, error)
}

// CSVLoader reads catalog CSV exports and creates products. A row with a
// name starts a product; rows with only an image column append to the
// current product's gallery.
type CSVLoader struct {
	reader *csv.Reader
	writer ProductWriter
}

func NewCSVLoader(r io.Reader, writer ProductWriter) *CSVLoader {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVLoader{reader: csvr, writer: writer}
}

// Run parses CSV rows and creates products grouped by name rows.
func (l *CSVLoader) Run(ctx context.Context) (int, error) {
	headers, err := l.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *gateway.ProductInput
		imported int
	)

	for {
		record, err := l.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.Name != "" {
			if current != nil {
				if err := l.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current product.
		if current != nil && len(row.Gallery) > 0 {
			current.Gallery = append(current.Gallery, row.Gallery...)
		}
	}

	if current != nil {
		if err := l.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (l *CSVLoader) save(ctx context.Context, in *gateway.ProductInput) error {
	if in.Name == "" || in.CategorySlug == "" || in.Price <= 0 {
		return fmt.Errorf("invalid product row (missing required fields) for name %q", in.Name)
	}
	if in.ImageURL == "" && len(in.Gallery) == 0 {
		return fmt.Errorf("product %q has no images", in.Name)
	}
	if _, err := l.writer.CreateProduct(ctx, *in); err != nil {
		return fmt.Errorf("create product %q: %w", in.Name, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func parseRow(record []string, index map[string]int) *gateway.ProductInput {
	get := func(key string) string {
		i, ok := index[key]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := &gateway.ProductInput{
		Name:         get("name"),
		Description:  get("description"),
		TgPostURL:    get("tg_post_url"),
		Team:         get("team"),
		Size:         get("size"),
		Brand:        get("brand"),
		League:       get("league"),
		Season:       get("season"),
		KitType:      get("kit_type"),
		ImageURL:     get("image_url"),
		CategorySlug: get("category_slug"),
	}
	if raw := get("price"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			row.Price = price
		}
	}
	if img := get("gallery"); img != "" {
		row.Gallery = append(row.Gallery, img)
	}

	if row.Name == "" && len(row.Gallery) == 0 && row.ImageURL == "" {
		return nil
	}
	if row.Name == "" && row.ImageURL != "" {
		// Image-only continuation row.
		row.Gallery = append([]string{row.ImageURL}, row.Gallery...)
		row.ImageURL = ""
	}
	return row
}
