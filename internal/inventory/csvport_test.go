package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/stockpilehq/stockpile/internal/domain"
)

func newTestPort(t *testing.T) (*Port, *Service) {
	t.Helper()
	svc, _ := newTestService(t)
	return NewPort(svc), svc
}

func TestImportAddsRows(t *testing.T) {
	port, svc := newTestPort(t)
	ctx := context.Background()

	csv := "name,unit,category,brand,stock,image\n" +
		"hammer,pcs,tools,Acme,5,\n" +
		"paint,ltr,paint,Coats,0,http://img/paint.png\n"
	result, err := port.Import(ctx, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Added != 2 || result.Skipped != 0 || len(result.Duplicates) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	products, _ := svc.List(ctx, "", "")
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	for _, p := range products {
		if p.Name == "paint" && p.Status != domain.StatusOutOfStock {
			t.Fatalf("expected derived status, got %q", p.Status)
		}
	}
}

func TestImportDuplicateWithinBatch(t *testing.T) {
	port, svc := newTestPort(t)
	ctx := context.Background()

	// the second row must observe the first row's insert
	csv := "name,unit,category,brand,stock,image\n" +
		"hammer,pcs,tools,Acme,5,\n" +
		"hammer,pcs,tools,Acme,9,\n"
	result, err := port.Import(ctx, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Added != 1 || result.Skipped != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.Duplicates) != 1 || result.Duplicates[0].Name != "hammer" {
		t.Fatalf("unexpected duplicates %+v", result.Duplicates)
	}

	products, _ := svc.List(ctx, "hammer", "")
	if len(products) != 1 {
		t.Fatalf("expected exactly one hammer, got %d", len(products))
	}
	if result.Duplicates[0].ExistingID != products[0].ID {
		t.Fatalf("expected existing id %d, got %d", products[0].ID, result.Duplicates[0].ExistingID)
	}
}

func TestImportAgainstExistingCatalog(t *testing.T) {
	port, svc := newTestPort(t)
	ctx := context.Background()

	existing, err := svc.Create(ctx, ProductInput{Name: "hammer", Stock: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	csv := "name,unit,category,brand,stock,image\nhammer,pcs,tools,Acme,5,\n"
	result, err := port.Import(ctx, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Added != 0 || result.Skipped != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Duplicates[0].ExistingID != existing.ID {
		t.Fatalf("expected existing id %d, got %d", existing.ID, result.Duplicates[0].ExistingID)
	}
}

func TestImportBadStockCoercesToZero(t *testing.T) {
	port, svc := newTestPort(t)
	ctx := context.Background()

	csv := "name,unit,category,brand,stock,image\nhammer,pcs,tools,Acme,notanumber,\n"
	result, err := port.Import(ctx, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Added != 1 || result.Skipped != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	products, _ := svc.List(ctx, "hammer", "")
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].Stock != 0 || products[0].Status != domain.StatusOutOfStock {
		t.Fatalf("expected zero stock fallback, got %+v", products[0])
	}
}

func TestImportContinuesAfterRowError(t *testing.T) {
	port, svc := newTestPort(t)
	ctx := context.Background()

	// empty name fails row validation; later rows still process
	csv := "name,unit,category,brand,stock,image\n" +
		",pcs,tools,Acme,5,\n" +
		"paint,ltr,paint,Coats,7,\n"
	result, err := port.Import(ctx, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Added != 1 || result.Skipped != 1 || len(result.Duplicates) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	products, _ := svc.List(ctx, "", "")
	if len(products) != 1 || products[0].Name != "paint" {
		t.Fatalf("unexpected catalog %+v", products)
	}
}

func TestImportToleratesRaggedRows(t *testing.T) {
	port, svc := newTestPort(t)
	ctx := context.Background()

	// a row with the wrong field count must not abort the batch;
	// missing trailing fields decode as empty, extra fields are dropped
	csv := "name,unit,category,brand,stock,image\n" +
		"hammer,pcs\n" +
		"paint,ltr,paint,Coats,7,\n" +
		"brush,pcs,tools,Acme,2,,unexpected-extra\n"
	result, err := port.Import(ctx, strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Added != 3 || result.Skipped != 0 {
		t.Fatalf("unexpected result %+v", result)
	}

	products, _ := svc.List(ctx, "", "")
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d", len(products))
	}
	hammers, _ := svc.List(ctx, "hammer", "")
	if len(hammers) != 1 {
		t.Fatalf("expected hammer row, got %d", len(hammers))
	}
	if hammers[0].Stock != 0 || hammers[0].Status != domain.StatusOutOfStock {
		t.Fatalf("expected empty stock field to default to zero, got %+v", hammers[0])
	}
}

func TestExportEmptyCatalog(t *testing.T) {
	port, _ := newTestPort(t)

	out, err := port.ExportCSV(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out != "name,unit,category,brand,stock,status,image\n" {
		t.Fatalf("unexpected empty export %q", out)
	}
}

func TestExportQuoting(t *testing.T) {
	port, svc := newTestPort(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProductInput{
		Name:     `say "hi" hammer`,
		Unit:     "pcs",
		Category: "tools",
		Brand:    "Acme, Inc",
		Stock:    3,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	out, err := port.ExportCSV(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if lines[0] != "name,unit,category,brand,stock,status,image" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	want := `"say ""hi"" hammer","pcs","tools","Acme, Inc","3","In Stock",""`
	if lines[1] != want {
		t.Fatalf("unexpected row %q, want %q", lines[1], want)
	}
}

func TestExportXLSX(t *testing.T) {
	port, svc := newTestPort(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, ProductInput{Name: "hammer", Stock: 3}); err != nil {
		t.Fatalf("create: %v", err)
	}

	f, err := port.ExportXLSX(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if got := f.GetCellValue("Sheet1", "A1"); got != "name" {
		t.Fatalf("unexpected header cell %q", got)
	}
	if got := f.GetCellValue("Sheet1", "A2"); got != "hammer" {
		t.Fatalf("unexpected data cell %q", got)
	}
}

func TestImportRoundTripThroughExport(t *testing.T) {
	port, _ := newTestPort(t)
	ctx := context.Background()

	csv := "name,unit,category,brand,stock,image\nhammer,pcs,tools,Acme,5,\n"
	if _, err := port.Import(ctx, strings.NewReader(csv)); err != nil {
		t.Fatalf("import: %v", err)
	}

	out, err := port.ExportCSV(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	// an export fed back in is all duplicates
	result, err := port.Import(ctx, strings.NewReader(out))
	if err != nil {
		t.Fatalf("reimport: %v", err)
	}
	if result.Added != 0 || result.Skipped != 1 || len(result.Duplicates) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}
