package storage

import (
	"fmt"
	"os"

	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"gopkg.in/yaml.v3"
)

// DefaultCatalog built-in seed dataset. CreatedAt is filled in when the
// catalog is loaded into a repository.
func DefaultCatalog() entity.Catalog {
	return entity.Catalog{
		Brands: []entity.Brand{
			{ID: 1, Name: "Toyota", Slug: "toyota", Country: "Japan"},
			{ID: 2, Name: "Honda", Slug: "honda", Country: "Japan"},
			{ID: 3, Name: "BMW", Slug: "bmw", Country: "Germany"},
			{ID: 4, Name: "Ford", Slug: "ford", Country: "USA"},
			{ID: 5, Name: "Nissan", Slug: "nissan", Country: "Japan"},
		},
		Categories: []entity.Category{
			{ID: 1, Name: "Engine Components", Slug: "engine", Icon: "Settings"},
			{ID: 2, Name: "Brakes & Suspension", Slug: "brakes-suspension", Icon: "Disc"},
			{ID: 3, Name: "Electrical & Lighting", Slug: "electrical", Icon: "Zap"},
			{ID: 4, Name: "Body & Exhaust", Slug: "body-exhaust", Icon: "Box"},
			{ID: 5, Name: "Oils & Fluids", Slug: "oils-fluids", Icon: "Droplet"},
		},
		Products: []entity.Product{
			{
				ID: 1, Name: "High Performance Brake Pads", Slug: "high-perf-brake-pads", SKU: "BP-TY-001",
				Description: "Ceramic brake pads designed for maximum stopping power and low dust. Ideal for city and highway driving.",
				Price:       45.99, Stock: 100, CategoryID: 2, BrandID: 1,
				ImageURL:         "https://picsum.photos/id/1/400/400",
				CompatibleModels: []string{"Camry", "Corolla", "RAV4"},
				IsFeatured:       true,
			},
			{
				ID: 2, Name: "Synthetic Motor Oil 5W-30", Slug: "synthetic-oil-5w30", SKU: "OIL-5W30-4L",
				Description: "Advanced full synthetic formula for superior engine protection against heat, deposits and wear.",
				Price:       32.50, Stock: 500, CategoryID: 5, BrandID: 1,
				ImageURL:         "https://picsum.photos/id/2/400/400",
				CompatibleModels: []string{"Universal"},
				IsFeatured:       true,
			},
			{
				ID: 3, Name: "LED Headlight Bulbs (H11)", Slug: "led-headlight-h11", SKU: "LGT-H11-LED",
				Description: "6000K Cool White LED bulbs. 300% brighter than halogen. Plug and play installation.",
				Price:       89.99, Stock: 50, CategoryID: 3, BrandID: 3,
				ImageURL:         "https://picsum.photos/id/3/400/400",
				CompatibleModels: []string{"3 Series", "5 Series", "X5"},
				IsFeatured:       true,
			},
			{
				ID: 4, Name: "Sport Air Filter", Slug: "sport-air-filter", SKU: "FLT-AIR-SPT",
				Description: "High-flow washable air filter. Increases horsepower and acceleration.",
				Price:       55.00, Stock: 30, CategoryID: 1, BrandID: 2,
				ImageURL:         "https://picsum.photos/id/4/400/400",
				CompatibleModels: []string{"Civic", "Accord", "CR-V"},
			},
			{
				ID: 5, Name: "Shock Absorber Rear", Slug: "shock-absorber-rear", SKU: "SUS-SHK-RR",
				Description: "Gas-charged rear shock absorber for smooth ride and handling stability.",
				Price:       75.25, Stock: 20, CategoryID: 2, BrandID: 4,
				ImageURL:         "https://picsum.photos/id/5/400/400",
				CompatibleModels: []string{"F-150", "Explorer"},
			},
			{
				ID: 6, Name: "Spark Plug Iridium", Slug: "spark-plug-iridium", SKU: "SPK-IRD-04",
				Description: "Long-life iridium spark plug. Improved fuel efficiency and acceleration.",
				Price:       12.99, Stock: 200, CategoryID: 1, BrandID: 5,
				ImageURL:         "https://picsum.photos/id/6/400/400",
				CompatibleModels: []string{"Altima", "Sentra", "Rogue"},
			},
			{
				ID: 7, Name: "Alternator 120A", Slug: "alternator-120a", SKU: "ELEC-ALT-120",
				Description: "Remanufactured 120 Amp Alternator. Tested for voltage stability.",
				Price:       145.00, Stock: 10, CategoryID: 3, BrandID: 1,
				ImageURL:         "https://picsum.photos/id/7/400/400",
				CompatibleModels: []string{"Camry", "Highlander"},
			},
			{
				ID: 8, Name: "Exhaust Muffler Tip", Slug: "exhaust-tip-chrome", SKU: "EXH-TIP-CHR",
				Description: "Stainless steel chrome polished exhaust tip. Bolt-on installation.",
				Price:       24.99, Stock: 60, CategoryID: 4, BrandID: 3,
				ImageURL:         "https://picsum.photos/id/8/400/400",
				CompatibleModels: []string{"Universal"},
			},
			{
				ID: 9, Name: "Timing Belt Kit", Slug: "timing-belt-kit", SKU: "ENG-TMG-KIT",
				Description: "Complete timing belt kit with water pump and tensioner.",
				Price:       120.50, Stock: 15, CategoryID: 1, BrandID: 2,
				ImageURL:         "https://picsum.photos/id/9/400/400",
				CompatibleModels: []string{"Civic", "Pilot"},
				IsFeatured:       true,
			},
			{
				ID: 10, Name: "Car Battery 12V", Slug: "battery-12v-60ah", SKU: "ELEC-BAT-60",
				Description: "Maintenance free 12V 60Ah battery with high cold cranking amps.",
				Price:       110.00, Stock: 25, CategoryID: 3, BrandID: 4,
				ImageURL:         "https://picsum.photos/id/10/400/400",
				CompatibleModels: []string{"Focus", "Fiesta"},
			},
		},
	}
}

// LoadCatalogFile reads a YAML seed catalog
func LoadCatalogFile(path string) (entity.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entity.Catalog{}, fmt.Errorf("read seed file: %w", err)
	}

	var catalog entity.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return entity.Catalog{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if len(catalog.Products) == 0 {
		return entity.Catalog{}, fmt.Errorf("seed file %s has no products", path)
	}

	for _, p := range catalog.Products {
		if p.Price < 0 {
			return entity.Catalog{}, fmt.Errorf("seed product %d: negative price: %w", p.ID, entity.ErrInvalidProduct)
		}
	}
	return catalog, nil
}
