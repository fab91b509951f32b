// Generates small sample CSV feeds for local testing of the importer.
//
// Usage: go run scripts/generate_sample_csv.go
package main

import (
	"encoding/csv"
	"fmt"
	"os"
)

func main() {
	if err := writeCSV("sample_products.csv",
		[]string{"product_id", "product_name", "source", "unit", "cost_per_unit"},
		[][]string{
			{"101", "Yukon Gold Potatoes", "FarmDirect", "kg", "2.50"},
			{"102", "Beef Brisket", "Restaurant Depot", "lb", "1,234.50"},
			{"103", "Olive Oil", "Importer", "l", ""},
			{"104", "Sea Salt", "", "kg", "0.85"},
		},
	); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := writeCSV("sample_bill.csv",
		[]string{"product_name", "quantity", "product_price", "tax_amount", "total"},
		[][]string{
			{"Chuck Roast", "2", "10.00", "1.00", "20.00"},
			{"Sea Salt", "1", "5.00", "0.50", "5.00"},
		},
	); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Wrote sample_products.csv and sample_bill.csv")
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()

	return writer.Error()
}
