package inventory

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// CSVHeader is the column order for both import and export.
const CSVHeader = "name,unit,category,brand,stock,status,image"

// importRow matches the header-derived field names of an import file.
// Stock stays a string so malformed quantities coerce to zero instead
// of rejecting the row.
type importRow struct {
	Name     string `csv:"name"`
	Unit     string `csv:"unit"`
	Category string `csv:"category"`
	Brand    string `csv:"brand"`
	Stock    string `csv:"stock"`
	Image    string `csv:"image"`
}

// DuplicateRecord identifies an import row skipped because its name
// already exists.
type DuplicateRecord struct {
	Name       string `json:"name"`
	ExistingID int64  `json:"existingId"`
}

// ImportResult aggregates the outcome of one import batch.
type ImportResult struct {
	Added      int               `json:"added"`
	Skipped    int               `json:"skipped"`
	Duplicates []DuplicateRecord `json:"duplicates"`
}

// Port is the bulk import/export engine over the catalog service.
type Port struct {
	svc *Service
}

// NewPort creates a bulk import/export engine.
func NewPort(svc *Service) *Port {
	return &Port{svc: svc}
}

// Import decodes CSV rows and applies the create path to each one in
// input order. Ordering is load-bearing: a row's duplicate check must
// observe the inserts of earlier rows in the same batch, so rows are
// processed strictly sequentially. Per-row failures are logged and
// counted as skipped; the batch itself never fails.
func (p *Port) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	// Non-strict reader: ragged rows decode with missing fields left
	// empty instead of aborting the batch.
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows []importRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil && !errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return nil, errors.Wrap(err, "parse csv")
	}

	result := &ImportResult{Duplicates: []DuplicateRecord{}}
	for _, row := range rows {
		in := ProductInput{
			Name:     row.Name,
			Unit:     row.Unit,
			Category: row.Category,
			Brand:    row.Brand,
			Stock:    cast.ToInt(strings.TrimSpace(row.Stock)),
			Image:    row.Image,
		}
		_, err := p.svc.Create(ctx, in)
		switch {
		case err == nil:
			result.Added++
		case IsConflict(err):
			conflict := AsConflict(err)
			result.Skipped++
			result.Duplicates = append(result.Duplicates, DuplicateRecord{
				Name:       conflict.Name,
				ExistingID: conflict.ExistingID,
			})
		default:
			result.Skipped++
			zap.L().Warn("import row skipped",
				zap.String("name", row.Name),
				zap.Error(err))
		}
	}
	return result, nil
}

// ExportCSV renders the full catalog as CSV text: a plain header line,
// then one line per product with every value quoted and embedded quotes
// doubled. An empty catalog yields the header line alone.
func (p *Port) ExportCSV(ctx context.Context) (string, error) {
	products, err := p.svc.List(ctx, "", "")
	if err != nil {
		return "", err
	}

	if len(products) == 0 {
		return CSVHeader + "\n", nil
	}

	var sb strings.Builder
	sb.WriteString(CSVHeader)
	for _, product := range products {
		sb.WriteString("\n")
		values := []string{
			product.Name,
			product.Unit,
			product.Category,
			product.Brand,
			cast.ToString(product.Stock),
			product.Status,
			product.Image,
		}
		for i, v := range values {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(`"` + strings.ReplaceAll(v, `"`, `""`) + `"`)
		}
	}
	return sb.String(), nil
}

var xlsxColumns = []string{"A", "B", "C", "D", "E", "F", "G"}

// ExportXLSX renders the same column set as a spreadsheet.
func (p *Port) ExportXLSX(ctx context.Context) (*excelize.File, error) {
	products, err := p.svc.List(ctx, "", "")
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Sheet1"
	for i, name := range strings.Split(CSVHeader, ",") {
		f.SetCellValue(sheet, xlsxColumns[i]+"1", name)
	}
	for row, product := range products {
		values := []interface{}{
			product.Name,
			product.Unit,
			product.Category,
			product.Brand,
			product.Stock,
			product.Status,
			product.Image,
		}
		for col, v := range values {
			f.SetCellValue(sheet, xlsxColumns[col]+cast.ToString(row+2), v)
		}
	}
	return f, nil
}
