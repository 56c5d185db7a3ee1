package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/rdkadakkal/Yusen-Report/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Extra tenants beyond the required set so generated files exercise
// the alphabetical remainder of the report.
var extraTenants = []string{
	"Acme Corp",
	"Globex Logistics",
	"Initech Freight",
	"Umbrella Shipping",
}

// trackedTokens covers the accepted vocabulary in mixed case plus
// junk values that must land as not tracked.
var trackedTokens = []string{
	"true", "TRUE", "1", "yes", "YES", "Y", "t",
	"false", "FALSE", "0", "no", "N", "f",
	"unknown", "n/a", "",
}

func main() {
	// Define flags
	out := flag.String("out", "sample_tracking.xlsx", "Output workbook path")
	rows := flag.Int("rows", 500, "Number of tracking rows to generate")
	months := flag.Int("months", 3, "Number of trailing months to spread dates over")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")

	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	fmt.Println("🚀 Tracking Data Generator")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("📊 Configuration: %d rows over %d months (seed %d)\n", *rows, *months, *seed)

	if err := writeWorkbook(*out, *rows, *months, rng); err != nil {
		log.Fatalf("❌ Generation failed: %v", err)
	}

	fmt.Printf("\n✅ Wrote %s\n", *out)
}

func writeWorkbook(path string, rows, months int, rng *rand.Rand) error {
	if months < 1 {
		months = 1
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Data Availability"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headers := []string{domain.ColumnTenantName, domain.ColumnTracked, domain.ColumnPeriodDate}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	tenants := append(append([]string{}, domain.RequiredTenants...), extraTenants...)
	now := time.Now()

	for i := 0; i < rows; i++ {
		tenant := tenants[rng.Intn(len(tenants))]
		token := trackedTokens[rng.Intn(len(trackedTokens))]

		monthsBack := rng.Intn(months)
		day := rng.Intn(28) + 1
		anchor := now.AddDate(0, -monthsBack, 0)
		date := time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, time.UTC)

		values := []interface{}{tenant, token, date.Format("2006-01-02")}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}
