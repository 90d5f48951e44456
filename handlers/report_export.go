package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"p9e.in/frota/config"
	"p9e.in/frota/models"
)

var refuelingExportHeaders = []string{
	"Data", "Placa", "Modelo", "Encarregado", "Município", "Contrato",
	"Posto", "Produto", "Quantidade (L)", "Custo Total", "Nota Fiscal", "Requisição",
}

// ExportRefuelings streams the refueling report for a date window as xlsx
// or csv, chosen by the format query param.
func ExportRefuelings(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	var refuelings []models.RefuelingLog
	q := config.DB.Order("date asc")
	if start != "" {
		q = q.Where("date >= ?", start)
	}
	if end != "" {
		q = q.Where("date <= ?", end)
	}
	if err := q.Find(&refuelings).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	stationNames := loadStationNames()
	rows := make([][]interface{}, len(refuelings))
	for i, rf := range refuelings {
		plate := rf.PlateSnapshot
		if rf.External() {
			plate = models.ExternalVehicleID
		}
		model := rf.ModelSnapshot
		if rf.External() {
			model = rf.ExternalType
		}
		requisition := ""
		if rf.RequisitionNumber != 0 {
			requisition = fmt.Sprintf("%d", rf.RequisitionNumber)
		}
		rows[i] = []interface{}{
			rf.Date, plate, model, rf.ForemanSnapshot, rf.MunicipalitySnapshot,
			rf.ContractSnapshot, stationNames[rf.StationID.String()], rf.Product,
			rf.Quantity, rf.TotalCost, rf.InvoiceNumber, requisition,
		}
	}

	filename := fmt.Sprintf("abastecimentos_%s", time.Now().Format("20060102_150405"))
	switch format {
	case "xlsx":
		f, err := buildRefuelingWorkbook(rows)
		if err != nil {
			http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
			return
		}
		buffer, err := f.WriteToBuffer()
		if err != nil {
			http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))
		w.WriteHeader(http.StatusOK)
		w.Write(buffer.Bytes())
	case "csv":
		data, err := buildRefuelingCSV(rows)
		if err != nil {
			http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	default:
		http.Error(w, "format must be xlsx or csv", http.StatusBadRequest)
	}
}

func buildRefuelingWorkbook(rows [][]interface{}) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "Abastecimentos"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", "Relatório de Abastecimentos")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Gerado em: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	for colIdx, header := range refuelingExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func buildRefuelingCSV(rows [][]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write(refuelingExportHeaders)
	for _, row := range rows {
		record := make([]string, len(row))
		for i, value := range row {
			record[i] = fmt.Sprintf("%v", value)
		}
		writer.Write(record)
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

func loadStationNames() map[string]string {
	names := make(map[string]string)
	var stations []models.GasStation
	if err := config.DB.Find(&stations).Error; err != nil {
		return names
	}
	for _, s := range stations {
		names[s.ID.String()] = s.Name
	}
	return names
}
