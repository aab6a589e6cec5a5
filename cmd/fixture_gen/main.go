package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tabscope/adapters/excel"
	"tabscope/internal/testkit"
)

func main() {
	out := flag.String("out", "shopping_orders.csv", "output file path")
	orders := flag.Int("orders", 1000, "number of orders")
	format := flag.String("format", "", "output format: xlsx or csv (default inferred from -out)")
	seed := flag.Int64("seed", 42, "RNG seed (deterministic)")
	start := flag.String("start", "2024-01-01", "first order date (YYYY-MM-DD)")
	missing := flag.Float64("missing-rate", 0.03, "fraction of cells left empty")
	dupes := flag.Float64("duplicate-rate", 0.01, "fraction of orders repeated verbatim")
	flag.Parse()

	if *orders <= 0 {
		fmt.Fprintln(os.Stderr, "orders must be > 0")
		os.Exit(2)
	}

	startDate, err := time.ParseInLocation("2006-01-02", *start, time.UTC)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid -start (expected YYYY-MM-DD):", err)
		os.Exit(2)
	}

	fmtName := strings.ToLower(strings.TrimSpace(*format))
	if fmtName == "" {
		fmtName = "csv"
		if strings.ToLower(filepath.Ext(*out)) == ".xlsx" {
			fmtName = "xlsx"
		}
	}

	cfg := testkit.DefaultShoppingConfig()
	cfg.OrderCount = *orders
	cfg.Seed = *seed
	cfg.StartDate = startDate
	cfg.EndDate = startDate.AddDate(1, 0, 0)
	cfg.MissingRate = *missing
	cfg.DuplicateRate = *dupes

	headers, records := testkit.NewShoppingDataGenerator(cfg).GenerateRecords()

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error creating output:", err)
		os.Exit(1)
	}
	defer f.Close()

	switch fmtName {
	case "csv":
		err = excel.WriteCSV(f, headers, records)
	case "xlsx":
		err = excel.WriteXLSX(f, "Orders", headers, records)
	default:
		fmt.Fprintln(os.Stderr, "unsupported format:", fmtName)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error writing %s: %v\n", fmtName, err)
		os.Exit(1)
	}

	fmt.Printf("Fixture written: %s\n", *out)
	fmt.Printf("Columns: %d | Rows: %d\n", len(headers), len(records))
}
