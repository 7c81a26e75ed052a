package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"kuse-store/internal/catalog"
	"kuse-store/internal/model"

	"github.com/klauspost/pgzip"
)

// generateSampleCatalog writes the built-in catalog, extended with a few more
// styles, as data/catalog.json and data/catalog.json.gz. Either file can be
// used as SEED_FILE, locally or uploaded under the S3 prefix.
func main() {
	dataDir := "data"

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products, err := catalog.Builtin().Products(context.Background())
	if err != nil {
		log.Fatalf("Failed to read built-in catalog: %v", err)
	}

	products = append(products,
		product("Peshawari Chappal", "Hand-stitched leather sandal with a double sole", 34.5, "Casual", "7", "8", "9", "10", "11"),
		product("Mirror Work Khussa", "Embroidered flats with mirror inlay for mehndi nights", 54, "Festive", "5", "6", "7"),
	)

	payload, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode catalog: %v", err)
	}

	plain := filepath.Join(dataDir, "catalog.json")
	if err := os.WriteFile(plain, payload, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", plain, err)
	}
	fmt.Printf("Created %s with %d products\n", plain, len(products))

	gz := filepath.Join(dataDir, "catalog.json.gz")
	if err := writeGzip(gz, payload); err != nil {
		log.Fatalf("Failed to write %s: %v", gz, err)
	}
	fmt.Printf("Created %s with %d products\n", gz, len(products))
}

func product(name, description string, price float64, kind string, sizes ...string) model.Product {
	inStock := true
	imageURL := "https://images.unsplash.com/photo-1543163521-1bf539c55dd2?q=80&w=1600&auto=format&fit=crop"
	return model.Product{
		Name:        &name,
		Description: &description,
		Price:       &price,
		ImageURL:    &imageURL,
		Sizes:       sizes,
		Type:        &kind,
		InStock:     &inStock,
	}
}

func writeGzip(filePath string, data []byte) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := pgzip.NewWriter(file)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}
