package report

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// DataExporter builds an xlsx workbook out of sheets of titled sections.
type DataExporter struct {
	sheets []*SheetBuilder
}

// SheetBuilder collects the sections of one sheet.
type SheetBuilder struct {
	exporter *DataExporter
	name     string
	sections []*SectionConfig
}

// SectionConfig defines a block of rows in a sheet. Data is a slice of structs
// (or pointers to structs); a single struct is treated as a one-row slice.
type SectionConfig struct {
	Title      string
	ShowHeader bool
	Data       interface{}
	Columns    []ColumnConfig
}

// ColumnConfig maps a struct field to a column. FieldName may be a dotted
// path through nested structs and pointers, e.g. "Manager.Name".
type ColumnConfig struct {
	FieldName string
	Header    string
	Width     float64
}

func NewDataExporter() *DataExporter {
	return &DataExporter{sheets: []*SheetBuilder{}}
}

// AddSheet starts a new sheet builder.
func (e *DataExporter) AddSheet(name string) *SheetBuilder {
	sb := &SheetBuilder{
		exporter: e,
		name:     name,
		sections: []*SectionConfig{},
	}
	e.sheets = append(e.sheets, sb)
	return sb
}

// AddSection appends a section below the previous ones.
func (sb *SheetBuilder) AddSection(config *SectionConfig) *SheetBuilder {
	sb.sections = append(sb.sections, config)
	return sb
}

// Build returns the exporter to continue chaining.
func (sb *SheetBuilder) Build() *DataExporter {
	return sb.exporter
}

// BuildExcel renders every sheet into a new in-memory workbook.
func (e *DataExporter) BuildExcel() (*excelize.File, error) {
	if len(e.sheets) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	for i, sb := range e.sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sb.name); err != nil {
				f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(sb.name); err != nil {
			f.Close()
			return nil, err
		}
		if err := renderSections(f, sb.name, sb.sections); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", sb.name, err)
		}
	}
	return f, nil
}

// ExportToExcel generates the Excel file on disk.
func (e *DataExporter) ExportToExcel(ctx context.Context, path string) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

// ToBytes exports the Excel file to an in-memory byte slice.
func (e *DataExporter) ToBytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := e.ToWriter(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToWriter writes the Excel file to w.
func (e *DataExporter) ToWriter(w io.Writer) error {
	f, err := e.BuildExcel()
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

func renderSections(f *excelize.File, sheet string, sections []*SectionConfig) error {
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}})
	if err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	row := 1
	for _, sec := range sections {
		if sec.Title != "" {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetCellValue(sheet, cell, sec.Title); err != nil {
				return err
			}
			f.SetCellStyle(sheet, cell, cell, titleStyle)
			row++
		}

		if sec.ShowHeader {
			for i, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
					return err
				}
				f.SetCellStyle(sheet, cell, cell, headerStyle)
				if col.Width > 0 {
					colName, _ := excelize.ColumnNumberToName(i + 1)
					f.SetColWidth(sheet, colName, colName, col.Width)
				}
			}
			row++
		}

		for _, item := range rowsOf(sec.Data) {
			for j, col := range sec.Columns {
				cell, _ := excelize.CoordinatesToCellName(j+1, row)
				if err := f.SetCellValue(sheet, cell, extractValue(item, col.FieldName)); err != nil {
					return fmt.Errorf("row %d: %w", row, err)
				}
			}
			row++
		}

		// Add spacing between sections
		row++
	}
	return nil
}

func rowsOf(data interface{}) []reflect.Value {
	if data == nil {
		return nil
	}
	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return []reflect.Value{v}
	}
	rows := make([]reflect.Value, v.Len())
	for i := range rows {
		rows[i] = v.Index(i)
	}
	return rows
}

// extractValue walks a dotted field path and converts the result to a cell
// value. Missing fields, nil pointers and invalid sql.Null* values give "".
func extractValue(item reflect.Value, path string) interface{} {
	v := item
	for _, name := range strings.Split(path, ".") {
		for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
			if v.IsNil() {
				return ""
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return ""
		}
		v = v.FieldByName(name)
		if !v.IsValid() {
			return ""
		}
	}
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	return cellValue(v.Interface())
}

func cellValue(val interface{}) interface{} {
	switch x := val.(type) {
	case time.Time:
		return x.Format(dateLayout)
	case sql.NullString:
		if !x.Valid {
			return ""
		}
		return x.String
	case sql.NullTime:
		if !x.Valid {
			return ""
		}
		return x.Time.Format(dateLayout)
	default:
		return val
	}
}
