package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"pricebook/internal/csvsource"
	"pricebook/internal/database"
	"pricebook/internal/numeric"
	"pricebook/internal/repository"
	"pricebook/internal/service"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type importBillCmd struct {
	file       string
	vendorName string
	notes      string
	shipping   string
	currency   string
	billNumber string
	billDate   string
	source     string
}

// NewImportBillCommand creates the import-bill subcommand.
func NewImportBillCommand() subcommands.Command {
	return &importBillCmd{}
}

func (*importBillCmd) Name() string { return "import-bill" }
func (*importBillCmd) Synopsis() string {
	return "import a bill CSV into the bill and bill_item tables"
}
func (*importBillCmd) Usage() string {
	return `import-bill -file <path|s3://bucket/key> [flags]

  Imports a vendor bill from a CSV with columns: product_name, quantity,
  product_price, tax_amount, total. The subtotal is derived from
  quantity x price; the grand total adds tax and shipping.
`
}

func (c *importBillCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Path or s3:// reference of the bill CSV (required)")
	f.StringVar(&c.vendorName, "vendor-name", "", "Vendor the bill was issued by")
	f.StringVar(&c.notes, "notes", "", "Free-text notes stored on the bill")
	f.StringVar(&c.shipping, "shipping-amount", "0", "Shipping amount for the whole bill")
	f.StringVar(&c.currency, "currency", "USD", "3-letter currency code")
	f.StringVar(&c.billNumber, "bill-number", "", "External bill number")
	f.StringVar(&c.billDate, "bill-date", "", "Bill date as YYYY-MM-DD")
	f.StringVar(&c.source, "source", "", "Bill source URL or path (defaults to -file)")
}

func (c *importBillCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required.")
		return subcommands.ExitUsageError
	}

	cfg, logger, err := setup()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	params := service.BillParams{
		VendorName: optional(c.vendorName),
		Notes:      optional(c.notes),
		Number:     optional(c.billNumber),
		Currency:   normalizeCurrency(c.currency),
		Shipping:   numeric.Parse(c.shipping, decimal.Zero),
		Source:     c.source,
	}
	if params.Source == "" {
		params.Source = c.file
	}

	if c.billDate != "" {
		date, err := time.Parse("2006-01-02", c.billDate)
		if err != nil {
			logger.Warn().Str("bill_date", c.billDate).Msg("invalid -bill-date, ignoring")
		} else {
			params.Date = &date
		}
	}

	source, err := csvsource.ForRef(ctx, c.file, cfg.AWS.Region, logger)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	stream, err := source.Open(ctx, c.file)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer stream.Close()

	rows, err := csvsource.ReadBill(stream, logger)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer pool.Close()

	svc := service.NewBillImportService(repository.NewBillRepository(pool, logger), logger)

	summary, err := svc.Post(ctx, rows, params)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported bill with %d item(s). Subtotal=%s Tax=%s Shipping=%s Total=%s\n",
		summary.Items, summary.Subtotal, summary.TaxTotal, summary.Shipping, summary.Total)

	return subcommands.ExitSuccess
}

// normalizeCurrency upper-cases the code and truncates it to 3 characters,
// falling back to USD when empty.
func normalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "USD"
	}
	if len(code) > 3 {
		code = code[:3]
	}
	return code
}

// optional maps empty flag values to nil.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
