package seed

import (
	"context"
	"strings"
	"testing"

	"kitstore/internal/domain"
	"kitstore/internal/gateway"
)

type captureWriter struct {
	created []gateway.ProductInput
	err     error
}

func (w *captureWriter) CreateProduct(_ context.Context, in gateway.ProductInput) (*domain.Product, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.created = append(w.created, in)
	return &domain.Product{ID: int64(len(w.created))}, nil
}

const sampleCSV = `name,description,price,team,size,brand,league,season,kit_type,category_slug,image_url
Manchester United Home 08/09,Classic,4990,Manchester United,M,Nike,Premier League,2008-2009,Home,jerseys,static/mu-front.jpg
,,,,,,,,,,static/mu-back.jpg
,,,,,,,,,,static/mu-detail.jpg
Arsenal Away 03/04,Invincibles,5490,Arsenal,L,Nike,Premier League,2003-2004,Away,jerseys,static/ars-front.jpg
`

func TestCSVLoaderGroupsGalleryRows(t *testing.T) {
	writer := &captureWriter{}
	loader := NewCSVLoader(strings.NewReader(sampleCSV), writer)

	count, err := loader.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products, got %d", count)
	}

	first := writer.created[0]
	if first.Name != "Manchester United Home 08/09" || first.ImageURL != "static/mu-front.jpg" {
		t.Fatalf("unexpected first product %+v", first)
	}
	if len(first.Gallery) != 2 || first.Gallery[0] != "static/mu-back.jpg" {
		t.Fatalf("continuation rows should land in gallery, got %v", first.Gallery)
	}

	second := writer.created[1]
	if second.Name != "Arsenal Away 03/04" || len(second.Gallery) != 0 {
		t.Fatalf("unexpected second product %+v", second)
	}
}

func TestCSVLoaderRejectsIncompleteRow(t *testing.T) {
	csv := "name,price,category_slug,image_url\nNo Price Kit,,jerseys,static/x.jpg\n"
	loader := NewCSVLoader(strings.NewReader(csv), &captureWriter{})
	if _, err := loader.Run(context.Background()); err == nil {
		t.Fatalf("expected validation error for missing price")
	}
}

func TestCSVLoaderTrailingCommas(t *testing.T) {
	csv := "name,price,category_slug,image_url\nKit,100,jerseys,static/x.jpg,,\n"
	writer := &captureWriter{}
	loader := NewCSVLoader(strings.NewReader(csv), writer)
	count, err := loader.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 product, got %d", count)
	}
}
