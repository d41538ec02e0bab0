package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) ExportResults(w io.Writer, r Results) error {
	writer := csv.NewWriter(w)

	header := []string{"ID", "Name", "Styles", "City", "Postcode", "Difficulty", "Rating", "Price Min", "Price Max", "Available"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, a := range r.Result.Items {
		row := []string{
			strconv.FormatInt(a.ID, 10),
			a.Name,
			strings.Join(a.Styles, ";"),
			a.City,
			a.Postcode,
			string(a.Difficulty),
			strconv.FormatFloat(a.Rating, 'f', 1, 64),
			strconv.Itoa(a.PriceMin),
			strconv.Itoa(a.PriceMax),
			strconv.FormatBool(a.Available),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
