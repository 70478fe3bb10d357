package services

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"crm_manager/internal/models"
	"crm_manager/internal/store"
)

// ImportResult reports one spreadsheet import. Row-level problems are not
// reported individually; bad numeric cells default to zero and the whole
// file either imports or fails with a single error.
type ImportResult struct {
	BatchID  string `json:"batch_id"`
	Imported int    `json:"imported"`
}

type ImportService interface {
	ImportCustomers(r io.Reader) (ImportResult, error)
	ImportProspects(r io.Reader) (ImportResult, error)
}

type importService struct {
	customers *store.CustomerStore
	prospects *store.ProspectStore
}

func NewImportService(customers *store.CustomerStore, prospects *store.ProspectStore) ImportService {
	return &importService{customers: customers, prospects: prospects}
}

func (s *importService) ImportCustomers(r io.Reader) (ImportResult, error) {
	rows, err := sheetRows(r)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{BatchID: uuid.NewString()}
	for _, row := range rows {
		customer := models.Customer{
			Name:     row.text("Name"),
			Email:    row.text("Email"),
			Phone:    row.text("Phone"),
			Location: row.firstOf("Address", "Location"),
			CarModel: row.text("Car Model"),
			Notes:    row.text("Notes"),
			Tags:     row.tags("Tags"),
		}
		if customer.Name == "" {
			continue
		}
		// Legacy sheets carry a Total Spent column. Customer totals derive
		// from orders, so the figure is kept visible in the notes instead.
		if spent := row.number("Total Spent"); spent > 0 {
			note := fmt.Sprintf("Imported total spent: %.2f", spent)
			if customer.Notes != "" {
				note = customer.Notes + "; " + note
			}
			customer.Notes = note
		}
		if _, err := s.customers.Add(customer); err != nil {
			return ImportResult{}, fmt.Errorf("failed to import customers: %w", err)
		}
		result.Imported++
	}
	log.Printf("Import batch %s: %d customers", result.BatchID, result.Imported)
	return result, nil
}

func (s *importService) ImportProspects(r io.Reader) (ImportResult, error) {
	rows, err := sheetRows(r)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{BatchID: uuid.NewString()}
	for _, row := range rows {
		prospect := models.Prospect{
			Name:     row.text("Name"),
			Phone:    row.text("Phone"),
			CarModel: row.text("Car Model"),
			Location: row.firstOf("Location", "Address"),
		}
		if prospect.Name == "" {
			continue
		}
		if _, err := s.prospects.Add(prospect); err != nil {
			return ImportResult{}, fmt.Errorf("failed to import prospects: %w", err)
		}
		result.Imported++
	}
	log.Printf("Import batch %s: %d prospects", result.BatchID, result.Imported)
	return result, nil
}

// importRow maps header names onto one spreadsheet row.
type importRow map[string]string

func (r importRow) text(column string) string {
	return strings.TrimSpace(r[column])
}

func (r importRow) firstOf(columns ...string) string {
	for _, column := range columns {
		if value := r.text(column); value != "" {
			return value
		}
	}
	return ""
}

func (r importRow) tags(column string) []string {
	raw := r.text(column)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// number parses a numeric cell, defaulting to zero when unparseable.
func (r importRow) number(column string) float64 {
	value, err := strconv.ParseFloat(r.text(column), 64)
	if err != nil {
		return 0
	}
	return value
}

func sheetRows(r io.Reader) ([]importRow, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0]
	out := make([]importRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := make(importRow, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[strings.TrimSpace(name)] = cells[i]
			}
		}
		out = append(out, row)
	}
	return out, nil
}
