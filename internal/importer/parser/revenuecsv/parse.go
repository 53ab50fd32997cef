package revenuecsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agencydesk/backend/internal/importer"
	"github.com/agencydesk/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parse reads a revenue CSV export for a company. Excel likes to prepend a
// byte order mark to exported files, so the input is decoded with a BOM
// aware transform before parsing.
//
// The expected columns are: Month (YYYY-MM), Client, Project, Type, Amount, Note.
func Parse(f io.Reader, company models.Company) ([]importer.RevenuePreview, error) {
	reader := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true

	var previews []importer.RevenuePreview

	// Skip the header line
	_, err := reader.Read()
	if err == io.EOF {
		return []importer.RevenuePreview{}, nil
	}
	if err != nil {
		return csvReadError(reader, fmt.Errorf("could not read the CSV header: %w", err))
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		if len(record) < Amount+1 {
			return csvReadError(reader, errors.New("the line has too few columns"))
		}

		month, err := time.Parse("2006-01", strings.TrimSpace(record[Month]))
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not parse the month: %w", err))
		}

		revenueType := strings.TrimSpace(record[Type])
		if revenueType == "" {
			revenueType = models.RevenueBooked
		}
		if revenueType != models.RevenueBooked && revenueType != models.RevenueForecast {
			return csvReadError(reader, fmt.Errorf("%q is not a valid revenue type", revenueType))
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[Amount]))
		if err != nil {
			return csvReadError(reader, errors.New("the amount could not be parsed to a decimal"))
		}

		if amount.IsNegative() {
			return csvReadError(reader, errors.New("the amount must not be negative"))
		}

		note := ""
		if len(record) > Note {
			note = strings.TrimSpace(record[Note])
		}

		previews = append(previews, importer.RevenuePreview{
			Entry: models.MonthlyRevenue{
				CompanyID:   company.ID,
				Year:        month.Year(),
				Month:       int(month.Month()),
				RevenueType: revenueType,
				Revenue:     amount,
				Note:        note,
			},
			ClientName:  strings.TrimSpace(record[Client]),
			ProjectName: strings.TrimSpace(record[Project]),
		})
	}

	if previews == nil {
		previews = make([]importer.RevenuePreview, 0)
	}

	return previews, nil
}

// csvReadError returns an error including the line of the input
// the error occurred in.
func csvReadError(r *csv.Reader, err error) ([]importer.RevenuePreview, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(0)

	return []importer.RevenuePreview{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
