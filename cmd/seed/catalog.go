package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopadmin/internal/model"
	"shopadmin/internal/repository"
	"shopadmin/internal/service"
)

// catalogDocument is the seed file layout.
type catalogDocument struct {
	Categories []struct {
		Name string `json:"name"`
		Desc string `json:"desc"`
	} `json:"categories"`
	Discounts []struct {
		Name    string `json:"name"`
		Desc    string `json:"desc"`
		Percent string `json:"discount_percent"`
	} `json:"discounts"`
	Inventories []struct {
		Quantity int `json:"quantity"`
	} `json:"inventories"`
}

type importSummary struct {
	categories  int
	discounts   int
	inventories int
	skipped     int
}

func loadCatalog(ctx context.Context, url, path string) (*catalogDocument, error) {
	var body []byte
	var err error
	if url != "" {
		log.Printf("Fetching catalog from: %s", url)
		body, err = fetch(ctx, url)
	} else {
		body, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var doc catalogDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &doc, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// importCatalog creates every valid entry of doc through the catalog services.
// Entries that fail validation are logged and skipped.
func importCatalog(ctx context.Context, gormDB *gorm.DB, doc *catalogDocument) (importSummary, error) {
	var sum importSummary

	categories := service.NewCatalogService[model.ProductCategory, *model.ProductCategory](
		"product-category", repository.NewCatalogRepository[model.ProductCategory](gormDB), nil)
	for _, c := range doc.Categories {
		if c.Name == "" {
			log.Printf("Skipping category without name")
			sum.skipped++
			continue
		}
		if _, err := categories.Create(ctx, &model.ProductCategory{Name: c.Name, Desc: c.Desc}); err != nil {
			return sum, err
		}
		sum.categories++
	}

	discounts := service.NewCatalogService[model.ProductDiscount, *model.ProductDiscount](
		"product-discount", repository.NewCatalogRepository[model.ProductDiscount](gormDB), nil)
	for _, d := range doc.Discounts {
		if d.Name == "" {
			log.Printf("Skipping discount without name")
			sum.skipped++
			continue
		}
		percent := decimal.Zero
		if d.Percent != "" {
			p, err := decimal.NewFromString(d.Percent)
			if err != nil || p.IsNegative() || p.GreaterThan(decimal.NewFromInt(100)) {
				log.Printf("Skipping discount %q with invalid percent: %s", d.Name, d.Percent)
				sum.skipped++
				continue
			}
			percent = p
		}
		if _, err := discounts.Create(ctx, &model.ProductDiscount{Name: d.Name, Desc: d.Desc, Percent: percent}); err != nil {
			return sum, err
		}
		sum.discounts++
	}

	inventories := service.NewCatalogService[model.ProductInventory, *model.ProductInventory](
		"product-inventory", repository.NewCatalogRepository[model.ProductInventory](gormDB), nil)
	for _, inv := range doc.Inventories {
		if inv.Quantity < 0 {
			log.Printf("Skipping inventory row with negative quantity: %d", inv.Quantity)
			sum.skipped++
			continue
		}
		if _, err := inventories.Create(ctx, &model.ProductInventory{Quantity: inv.Quantity}); err != nil {
			return sum, err
		}
		sum.inventories++
	}

	return sum, nil
}
