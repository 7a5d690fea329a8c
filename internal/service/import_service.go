package service

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"
	"go-inventory-api/internal/ws"
	"go-inventory-api/pkg/logger"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// DuplicateEntry reports a CSV row whose name already belongs to a product.
type DuplicateEntry struct {
	Name       string `json:"name"`
	ExistingID uint   `json:"existingId"`
}

// ImportResult is the per-batch accounting: every row ends up either
// added or skipped (blank name, duplicate, or storage failure).
type ImportResult struct {
	Added      int              `json:"added"`
	Skipped    int              `json:"skipped"`
	Duplicates []DuplicateEntry `json:"duplicates"`
}

type ImportService interface {
	ImportCSV(r io.Reader, actor string) (*ImportResult, error)
}

type importService struct {
	productRepo repository.ProductRepository
	wsHub       *ws.Hub
	log         zerolog.Logger
}

func NewImportService(pRepo repository.ProductRepository, hub *ws.Hub) ImportService {
	return &importService{
		productRepo: pRepo,
		wsHub:       hub,
		log:         logger.New("import"),
	}
}

// ImportCSV runs a single sequential pass over the uploaded file. Rows
// must be processed one at a time: in-batch duplicate detection relies
// on each row's insert being visible to the next row's name lookup.
// Any storage error on a row (lookup or insert) skips that row and
// processing continues.
func (s *importService) ImportCSV(r io.Reader, actor string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{Duplicates: []DuplicateEntry{}}

	header, err := reader.Read()
	if err != nil {
		// Empty upload: nothing to process
		return result, nil
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	// One timestamp shared by every row inserted in this batch
	batchTime := time.Now()

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}

		name := strings.TrimSpace(field(record, columns, "name"))
		if name == "" {
			result.Skipped++
			continue
		}

		stock, err := strconv.Atoi(strings.TrimSpace(field(record, columns, "stock")))
		if err != nil {
			stock = 0
		}

		existing, err := s.productRepo.FindByName(name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn().Err(err).Str("name", name).Msg("import row lookup failed")
			result.Skipped++
			continue
		}
		if existing != nil {
			result.Duplicates = append(result.Duplicates, DuplicateEntry{Name: name, ExistingID: existing.ID})
			result.Skipped++
			continue
		}

		product := &model.Product{
			Name:      name,
			Unit:      field(record, columns, "unit"),
			Category:  field(record, columns, "category"),
			Brand:     field(record, columns, "brand"),
			Stock:     stock,
			Status:    model.StatusFor(stock),
			Image:     field(record, columns, "image"),
			CreatedAt: batchTime,
			UpdatedAt: batchTime,
		}

		if err := s.productRepo.Create(product); err != nil {
			s.log.Warn().Err(err).Str("name", name).Msg("import row insert failed")
			result.Skipped++
			continue
		}
		result.Added++
	}

	go s.wsHub.BroadcastEvent("products_imported", map[string]interface{}{
		"added":   result.Added,
		"skipped": result.Skipped,
		"actor":   actor,
	})

	return result, nil
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}
