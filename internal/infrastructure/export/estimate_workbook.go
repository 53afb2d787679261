// Package export renders projects as downloadable spreadsheets.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"remodel_calc/internal/domain/costing"
	"remodel_calc/internal/domain/entities"

	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	SheetSummary   = "Summary"
	SheetWorkItems = "Work Items"
	SheetPayments  = "Payments"

	moneyFormat = 4 // #,##0.00
	dateLayout  = "2006-01-02"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

type styles struct {
	title  int
	header int
	money  int
	total  int
}

// EstimateWorkbook builds a three-sheet workbook: customer and cost summary,
// priced work items, and the payment ledger.
func EstimateWorkbook(p entities.Project, generatedAt time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetWorkItems, SheetPayments} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	for _, write := range []func(*excelize.File, entities.Project, styles) error{
		func(f *excelize.File, p entities.Project, st styles) error {
			return writeSummary(f, p, st, generatedAt)
		},
		writeWorkItems,
		writePayments,
	} {
		if err := write(f, p, st); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Filename is the attachment name for a project's workbook.
func Filename(p entities.Project, generatedAt time.Time) string {
	name := p.CustomerInfo.ProjectName
	if strings.TrimSpace(name) == "" {
		name = "estimate_" + p.ID
	}
	name = strings.Trim(unsafeFilename.ReplaceAllString(name, "_"), "_")
	return fmt.Sprintf("%s_%s.xlsx", name, generatedAt.UTC().Format("20060102_150405"))
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return st, err
	}
	st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return st, err
	}
	st.money, err = f.NewStyle(&excelize.Style{NumFmt: moneyFormat})
	if err != nil {
		return st, err
	}
	st.total, err = f.NewStyle(&excelize.Style{
		NumFmt: moneyFormat,
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
	})
	return st, err
}

func writeSummary(f *excelize.File, p entities.Project, st styles, generatedAt time.Time) error {
	c := p.CustomerInfo
	title := c.ProjectName
	if title == "" {
		title = "Remodel estimate"
	}

	rows := [][]any{
		{title},
		{"Generated", generatedAt.UTC().Format("2006-01-02 15:04:05")},
		{},
		{"Customer", strings.TrimSpace(c.FirstName + " " + c.LastName)},
		{"Address", addressLine(c)},
		{"Phone", c.Phone},
		{"Email", c.Email},
		{"Type", string(c.Type)},
		{"Start date", formatDate(c.StartDate)},
		{"Finish date", formatDatePtr(c.FinishDate)},
		{},
	}
	if err := setRows(f, SheetSummary, 1, rows); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "A1", st.title); err != nil {
		return err
	}

	b := p.Breakdown
	lines := [][]any{
		{"Material cost", b.MaterialCost},
		{"Labor cost", b.LaborCost},
		{"Labor discount", -b.LaborDiscountAmount},
		{"Discounted labor", b.DiscountedLaborCost},
		{"Base subtotal", b.BaseSubtotal},
		{"Waste", b.WasteCost},
		{"Tax", b.Tax},
		{"Markup", b.MarkupCost},
		{"Misc fees", b.MiscFeesTotal},
		{"Transportation", b.TransportationFee},
		{"Total", b.Total},
		{},
		{"Total paid", p.Settings.TotalPaid},
		{"Amount due", p.Settings.AmountDue},
		{"Amount remaining", p.Settings.AmountRemaining},
	}
	start := len(rows) + 1
	if err := setHeader(f, SheetSummary, start, []any{"Line", "Amount"}, st); err != nil {
		return err
	}
	if err := setRows(f, SheetSummary, start+1, lines); err != nil {
		return err
	}
	first, last := cell("B", start+1), cell("B", start+len(lines))
	if err := f.SetCellStyle(SheetSummary, first, last, st.money); err != nil {
		return err
	}
	totalRow := start + 11
	if err := f.SetCellStyle(SheetSummary, cell("A", totalRow), cell("B", totalRow), st.total); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "B", 22)
}

func writeWorkItems(f *excelize.File, p entities.Project, st styles) error {
	header := []any{"Category", "Work item", "Type", "Subtype", "Units", "Unit type", "Material / unit", "Labor / unit", "Material", "Labor"}
	if err := setHeader(f, SheetWorkItems, 1, header, st); err != nil {
		return err
	}

	row := 2
	for _, category := range p.Categories {
		for _, item := range category.WorkItems {
			units, _ := costing.WorkItemUnits(item)
			values := []any{
				category.Name, item.Name, item.Type, item.Subtype,
				units, string(item.UnitType),
				item.MaterialCost, item.LaborCost,
				item.MaterialCost * units, item.LaborCost * units,
			}
			if err := f.SetSheetRow(SheetWorkItems, cell("A", row), &values); err != nil {
				return err
			}
			row++
		}
	}
	if row > 2 {
		if err := f.SetCellStyle(SheetWorkItems, cell("G", 2), cell("J", row-1), st.money); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetWorkItems, "A", "J", 16)
}

func writePayments(f *excelize.File, p entities.Project, st styles) error {
	header := []any{"Date", "Method", "Amount", "Status", "Note"}
	if err := setHeader(f, SheetPayments, 1, header, st); err != nil {
		return err
	}

	row := 2
	for _, pay := range p.Settings.Payments {
		values := []any{formatDate(pay.Date), string(pay.Method), pay.Amount, string(pay.Status), pay.Note}
		if err := f.SetSheetRow(SheetPayments, cell("A", row), &values); err != nil {
			return err
		}
		row++
	}

	totals := [][]any{
		{"Total paid", "", p.Settings.TotalPaid},
		{"Amount due", "", p.Settings.AmountDue},
	}
	if err := setRows(f, SheetPayments, row, totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetPayments, cell("C", 2), cell("C", row+1), st.money); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetPayments, cell("A", row), cell("C", row), st.total); err != nil {
		return err
	}
	return f.SetColWidth(SheetPayments, "A", "E", 16)
}

func setHeader(f *excelize.File, sheet string, row int, values []any, st styles) error {
	if err := f.SetSheetRow(sheet, cell("A", row), &values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell("A", row), last, st.header)
}

func setRows(f *excelize.File, sheet string, start int, rows [][]any) error {
	for i, values := range rows {
		if len(values) == 0 {
			continue
		}
		if err := f.SetSheetRow(sheet, cell("A", start+i), &values); err != nil {
			return err
		}
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func addressLine(c entities.CustomerInfo) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{c.Street, c.Unit, c.State, c.ZipCode} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}
