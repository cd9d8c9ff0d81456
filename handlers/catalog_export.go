package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"fixbay.io/fixbay/config"
	"fixbay.io/fixbay/middleware"
	"fixbay.io/fixbay/models"
)

type catalogExportRow struct {
	Category    string
	Subcategory string
	Service     string
	Description string
	LaborHours  float64
	LaborRate   float64
}

var catalogExportHeader = []string{"Category", "Subcategory", "Service", "Description", "Default Labor Hours", "Default Labor Rate"}

// ExportServiceCatalog downloads the catalog as a flat spreadsheet,
// one row per service. ?format=csv switches to CSV; default is xlsx.
func ExportServiceCatalog(w http.ResponseWriter, r *http.Request) {
	shopID := middleware.GetShopID(r)

	rows, err := collectCatalogRows(config.DB, shopID)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	stamp := time.Now().Format("20060102_150405")
	if r.URL.Query().Get("format") == "csv" {
		data, err := catalogCSV(rows)
		if err != nil {
			http.Error(w, "failed to generate CSV file", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=service_catalog_%s.csv", stamp))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
		return
	}

	f, err := catalogWorkbook(rows)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=service_catalog_%s.xlsx", stamp))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func collectCatalogRows(db *gorm.DB, shopID interface{}) ([]catalogExportRow, error) {
	var categories []models.ServiceCategory
	err := db.Where("shop_id = ?", shopID).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, name ASC")
		}).
		Preload("Subcategories.Services", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Order("display_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	var rows []catalogExportRow
	for _, cat := range categories {
		for _, sub := range cat.Subcategories {
			for _, svc := range sub.Services {
				rows = append(rows, catalogExportRow{
					Category:    cat.Name,
					Subcategory: sub.Name,
					Service:     svc.Name,
					Description: svc.Description,
					LaborHours:  svc.DefaultLaborHours,
					LaborRate:   svc.DefaultLaborRate,
				})
			}
		}
	}
	return rows, nil
}

func catalogWorkbook(rows []catalogExportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Service Catalog"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	for i, h := range catalogExportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, row := range rows {
		values := []interface{}{row.Category, row.Subcategory, row.Service, row.Description, row.LaborHours, row.LaborRate}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "C", 24)
	f.SetColWidth(sheet, "D", "D", 40)
	f.SetColWidth(sheet, "E", "F", 18)
	return f, nil
}

func catalogCSV(rows []catalogExportRow) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(catalogExportHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.Category,
			row.Subcategory,
			row.Service,
			row.Description,
			strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", row.LaborHours), "0"), "."),
			fmt.Sprintf("%.2f", row.LaborRate),
		}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}
