package summary

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fintrackhq/fintrack/internal/models"
)

// palette cycles across category slices.
var palette = []string{
	"0088FE", "00C49F", "FFBB28", "FF8042",
	"AF19FF", "FF42A1", "42A1FF", "A1FF42",
}

// RenderCategoryChart renders the expense breakdown as a PNG pie chart.
// Returns raw PNG bytes. Zero-total slices are skipped; an empty breakdown
// is an error since a pie chart needs at least one positive value.
func RenderCategoryChart(categories []models.CategoryTotal) ([]byte, error) {
	values := make([]chart.Value, 0, len(categories))
	for i, cat := range categories {
		if cat.Total <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s ($%.2f)", cat.Category, cat.Total),
			Value: cat.Total,
			Style: chart.Style{
				FillColor: drawing.ColorFromHex(palette[i%len(palette)]),
			},
		})
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no expense data to chart")
	}

	graph := chart.PieChart{
		Title:  "Expenses by Category",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}
