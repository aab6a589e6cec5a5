package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"tabscope/domain/table"
)

// ShoppingGeneratorConfig configures the synthetic orders table
type ShoppingGeneratorConfig struct {
	OrderCount     int       `json:"order_count"`
	CustomerCount  int       `json:"customer_count"`
	ReturnRateBase float64   `json:"return_rate_base"`
	MissingRate    float64   `json:"missing_rate"`
	DuplicateRate  float64   `json:"duplicate_rate"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Seed           int64     `json:"seed"`
}

// DefaultShoppingConfig returns sensible defaults for shopping data generation
func DefaultShoppingConfig() ShoppingGeneratorConfig {
	return ShoppingGeneratorConfig{
		OrderCount:     2000,
		CustomerCount:  400,
		ReturnRateBase: 0.08,
		MissingRate:    0.02,
		DuplicateRate:  0.01,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
		Seed:           42,
	}
}

// ShoppingHeaders lists the generated columns in order
var ShoppingHeaders = []string{
	"order_id", "customer_id", "order_date", "country", "device_type",
	"payment_method", "shipping_speed", "items", "order_value", "discount_pct", "returned",
}

// ShoppingDataGenerator generates a deterministic e-commerce orders table
type ShoppingDataGenerator struct {
	config ShoppingGeneratorConfig
	rng    *rand.Rand
}

// NewShoppingDataGenerator creates a new shopping data generator
func NewShoppingDataGenerator(config ShoppingGeneratorConfig) *ShoppingDataGenerator {
	return &ShoppingDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// GenerateRecords returns header and string records, as a CSV reader would
func (g *ShoppingDataGenerator) GenerateRecords() ([]string, [][]string) {
	records := make([][]string, 0, g.config.OrderCount)

	for i := 0; i < g.config.OrderCount; i++ {
		if len(records) > 0 && g.rng.Float64() < g.config.DuplicateRate {
			prev := records[g.rng.Intn(len(records))]
			dup := make([]string, len(prev))
			copy(dup, prev)
			records = append(records, dup)
			continue
		}
		records = append(records, g.generateOrder(i))
	}

	headers := make([]string, len(ShoppingHeaders))
	copy(headers, ShoppingHeaders)
	return headers, records
}

// GenerateTable returns the generated orders as a table
func (g *ShoppingDataGenerator) GenerateTable() (*table.Table, error) {
	headers, records := g.GenerateRecords()
	return table.FromRecords(headers, records, nil)
}

func (g *ShoppingDataGenerator) generateOrder(i int) []string {
	device := g.randomDeviceType()
	speed := g.randomShippingSpeed()
	items := 1 + g.rng.Intn(6)

	// Desktop baskets run larger; express shipping nudges value up
	base := 18.0 + g.rng.ExpFloat64()*25.0
	if device == "desktop" {
		base *= 1.3
	}
	if speed == "express" {
		base += 12.0
	}
	value := math.Round(base*float64(items)*100) / 100

	discount := 0.0
	if g.rng.Float64() < 0.35 {
		discount = float64(5 * (1 + g.rng.Intn(6)))
	}

	returnRate := g.config.ReturnRateBase
	if discount >= 20 {
		returnRate *= 1.8
	}
	returned := g.rng.Float64() < returnRate

	record := []string{
		fmt.Sprintf("order_%05d", i+1),
		fmt.Sprintf("customer_%04d", 1+g.rng.Intn(g.config.CustomerCount)),
		g.randomTimeInRange(g.config.StartDate, g.config.EndDate).Format("2006-01-02"),
		g.randomCountry(),
		device,
		g.randomPaymentMethod(),
		speed,
		fmt.Sprintf("%d", items),
		fmt.Sprintf("%.2f", value),
		fmt.Sprintf("%.0f", discount),
		fmt.Sprintf("%t", returned),
	}

	// Blank out optional fields; identifiers always stay present
	for j := 3; j < len(record); j++ {
		if g.rng.Float64() < g.config.MissingRate {
			record[j] = ""
		}
	}

	return record
}

func (g *ShoppingDataGenerator) randomTimeInRange(start, end time.Time) time.Time {
	if !end.After(start) {
		return start
	}
	delta := end.Sub(start)
	return start.Add(time.Duration(g.rng.Int63n(int64(delta))))
}

func (g *ShoppingDataGenerator) randomCountry() string {
	countries := []string{"US", "US", "US", "GB", "DE", "FR", "CA", "AU", "JP", "BR"}
	return countries[g.rng.Intn(len(countries))]
}

func (g *ShoppingDataGenerator) randomDeviceType() string {
	r := g.rng.Float64()
	switch {
	case r < 0.55:
		return "mobile"
	case r < 0.90:
		return "desktop"
	default:
		return "tablet"
	}
}

func (g *ShoppingDataGenerator) randomPaymentMethod() string {
	r := g.rng.Float64()
	switch {
	case r < 0.50:
		return "card"
	case r < 0.75:
		return "paypal"
	case r < 0.90:
		return "apple_pay"
	default:
		return "gift_card"
	}
}

func (g *ShoppingDataGenerator) randomShippingSpeed() string {
	r := g.rng.Float64()
	switch {
	case r < 0.70:
		return "standard"
	case r < 0.95:
		return "express"
	default:
		return "overnight"
	}
}
