package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"pricebook/internal/csvsource"
	"pricebook/internal/database"
	"pricebook/internal/repository"
	"pricebook/internal/service"

	"github.com/google/subcommands"
)

type importProductsCmd struct {
	file string
}

// NewImportProductsCommand creates the import-products subcommand.
func NewImportProductsCommand() subcommands.Command {
	return &importProductsCmd{}
}

func (*importProductsCmd) Name() string { return "import-products" }
func (*importProductsCmd) Synopsis() string {
	return "import a product CSV into the product and product_price tables"
}
func (*importProductsCmd) Usage() string {
	return `import-products -file <path|s3://bucket/key>

  Imports products from a CSV with columns: product_id, product_name,
  source, unit, cost_per_unit (optional). Rows carrying a cost produce a
  price history observation stamped at the start of the run.
`
}

func (c *importProductsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Path or s3:// reference of the product CSV (required)")
}

func (c *importProductsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required.")
		return subcommands.ExitUsageError
	}

	cfg, logger, err := setup()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
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

	rows, err := csvsource.ReadProducts(stream, logger)
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

	productRepo := repository.NewProductRepository(pool, logger)
	priceRepo := repository.NewPriceRepository(pool, logger)

	svc := service.NewProductImportService(
		productRepo,
		service.NewLastWriteWinsPolicy(productRepo, logger),
		service.NewPriceReconciler(priceRepo, logger),
		logger,
	)

	summary, err := svc.Import(ctx, rows, time.Now())
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}

	fmt.Println("Import Summary:")
	fmt.Printf("  Products processed: %d\n", summary.Products)
	fmt.Printf("  New prices inserted: %d\n", summary.PricesInserted)
	fmt.Printf("  Prices corrected: %d\n", summary.PricesCorrected)
	fmt.Printf("  Prices unchanged: %d\n", summary.PricesUnchanged)
	if summary.PricesSkipped > 0 {
		fmt.Printf("  Prices skipped: %d\n", summary.PricesSkipped)
	}

	return subcommands.ExitSuccess
}
