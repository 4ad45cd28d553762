package prices

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoData means the page had no usable history table, typically a
	// delisted or unknown ticker or an upstream layout change.
	ErrNoData = errors.New("no price data")

	// ErrMalformed means a session row could not be parsed.
	ErrMalformed = errors.New("malformed price row")
)

// DefaultHeadings is the column layout of the history table.
var DefaultHeadings = []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}

// PriceRow is one trading session. Date is midnight UTC of the session day.
type PriceRow struct {
	Date     int64
	Open     decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Close    decimal.Decimal
	AdjClose decimal.Decimal
	Volume   decimal.Decimal
}

// Table is a daily history, most recent session first.
type Table struct {
	Headings []string
	Rows     []PriceRow
}

// Source fetches daily history for symbol between start and end. Both bounds
// are epoch seconds at midnight, and the session on end's calendar day is the
// last one included.
type Source interface {
	History(ctx context.Context, symbol string, start, end int64) (*Table, error)
}

type columns struct {
	date, open, high, low, close, adjClose, volume int
}

func mapColumns(headings []string) (columns, bool) {
	cols := columns{-1, -1, -1, -1, -1, -1, -1}
	for i, h := range headings {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.HasPrefix(h, "date"):
			cols.date = i
		case strings.HasPrefix(h, "open"):
			cols.open = i
		case strings.HasPrefix(h, "high"):
			cols.high = i
		case strings.HasPrefix(h, "low"):
			cols.low = i
		case strings.HasPrefix(h, "adj"):
			cols.adjClose = i
		case strings.HasPrefix(h, "close"):
			cols.close = i
		case strings.HasPrefix(h, "volume"):
			cols.volume = i
		}
	}
	return cols, cols.date >= 0 && cols.close >= 0
}

// ParseHistoryTable reads the first table of a historical quotes page.
// Head cells become the headings with "*" markers removed. Body rows with
// fewer cells than headings are dividend or split notices and are skipped.
func ParseHistoryTable(r io.Reader) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, ErrNoData
	}

	head := table.Find("thead").First()
	body := table.Find("tbody").First()
	if head.Length() == 0 || body.Length() == 0 {
		return nil, ErrNoData
	}

	var headings []string
	head.Find("th").Each(func(i int, s *goquery.Selection) {
		headings = append(headings, strings.ReplaceAll(cellText(s), "*", ""))
	})

	cols, ok := mapColumns(headings)
	if !ok {
		return nil, ErrNoData
	}

	result := &Table{Headings: headings}
	var parseErr error
	body.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		var cells []string
		tr.Find("td").Each(func(j int, td *goquery.Selection) {
			cells = append(cells, cellText(td))
		})
		if len(cells) < len(headings) {
			return true
		}

		row, err := parseRow(cells, cols)
		if err != nil {
			parseErr = err
			return false
		}
		result.Rows = append(result.Rows, row)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return result, nil
}

func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

var dateLayouts = []string{"Jan 2, 2006", "January 2, 2006", "2006-01-02"}

func parseDate(s string) (int64, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, &RowError{Cell: s}
}

func parseRow(cells []string, cols columns) (PriceRow, error) {
	var row PriceRow

	date, err := parseDate(cells[cols.date])
	if err != nil {
		return row, err
	}
	row.Date = date

	prices := []struct {
		idx int
		dst *decimal.Decimal
	}{
		{cols.open, &row.Open},
		{cols.high, &row.High},
		{cols.low, &row.Low},
		{cols.close, &row.Close},
		{cols.adjClose, &row.AdjClose},
	}
	for _, p := range prices {
		if p.idx < 0 {
			continue
		}
		v, err := parseNumber(cells[p.idx])
		if err != nil {
			return row, err
		}
		*p.dst = v
	}

	if cols.volume >= 0 {
		// indices report "-" for volume
		if v, err := parseNumber(cells[cols.volume]); err == nil {
			row.Volume = v
		}
	}

	return row, nil
}

func parseNumber(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return decimal.Zero, &RowError{Cell: s, Err: err}
	}
	return d, nil
}

// RowError reports the cell that failed to parse.
type RowError struct {
	Cell string
	Err  error
}

func (e *RowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed price row: cell %q: %v", e.Cell, e.Err)
	}
	return fmt.Sprintf("malformed price row: cell %q", e.Cell)
}

func (e *RowError) Is(target error) bool {
	return target == ErrMalformed
}

func (e *RowError) Unwrap() error {
	return e.Err
}
