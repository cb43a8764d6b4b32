// Package statement imports transactions from PDF bank statements.
package statement

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/fintrackhq/fintrack/internal/common"
	"github.com/fintrackhq/fintrack/internal/services/ledger"
)

// maxTextSize caps extracted statement text; anything past this is noise.
const maxTextSize = 200_000

// lineRe matches one statement row: ISO date, free-text description, and a
// signed decimal amount at the end of the line. Negative amounts are
// expenses, positive amounts income.
var lineRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\s+(.+?)\s+(-?\d+(?:[.,]\d{1,2})?)$`)

// Result is the outcome of parsing one statement.
type Result struct {
	Inputs  []ledger.AddInput
	Skipped int // non-empty lines that did not parse as transaction rows
}

// Parser extracts transaction rows from PDF statements.
type Parser struct {
	logger *common.Logger
}

// NewParser creates a statement parser.
func NewParser(logger *common.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse extracts text from the PDF bytes and parses transaction rows.
// Unparseable rows are counted, not fatal.
func (p *Parser) Parse(data []byte) (*Result, error) {
	text, err := extractText(data)
	if err != nil {
		return nil, err
	}
	result := p.parseText(text)
	p.logger.Debug().
		Int("parsed", len(result.Inputs)).
		Int("skipped", result.Skipped).
		Msg("Statement parsed")
	return result, nil
}

// extractText extracts plain text from PDF bytes, page by page.
func extractText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	totalPages := r.NumPage()

	for i := 1; i <= totalPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")

		if sb.Len() > maxTextSize {
			break
		}
	}

	return sb.String(), nil
}

// parseText scans statement text line by line for transaction rows.
func (p *Parser) parseText(text string) *Result {
	result := &Result{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			result.Skipped++
			continue
		}

		date, description, rawAmount := m[1], strings.TrimSpace(m[2]), m[3]

		value, err := strconv.ParseFloat(strings.ReplaceAll(rawAmount, ",", "."), 64)
		if err != nil {
			result.Skipped++
			continue
		}

		kind := "income"
		if value < 0 {
			kind = "expense"
			value = -value
		}

		result.Inputs = append(result.Inputs, ledger.AddInput{
			Description: description,
			Amount:      strconv.FormatFloat(value, 'f', -1, 64),
			Kind:        kind,
			Category:    "Imported",
			Date:        date,
		})
	}

	return result
}
