package service

import (
	"strings"
	"testing"

	"go-inventory-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCSVPartialSuccess(t *testing.T) {
	env := newTestEnv(t)

	csvData := "name,stock\nWidget,5\nWidget,9\n,1\n"
	result, err := env.importer.ImportCSV(strings.NewReader(csvData), "a@b.com")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 2, result.Skipped)

	inserted, err := env.productRepo.FindByName("Widget")
	require.NoError(t, err)
	assert.Equal(t, 5, inserted.Stock, "second Widget row must not overwrite the first")

	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, "Widget", result.Duplicates[0].Name)
	assert.Equal(t, inserted.ID, result.Duplicates[0].ExistingID)
}

func TestImportCSVDuplicateAgainstExistingCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	existing := env.seedProduct(t, "Widget", 5)

	result, err := env.importer.ImportCSV(strings.NewReader("name,stock\nWIDGET,3\n"), "a@b.com")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Duplicates, 1)
	assert.Equal(t, existing.ID, result.Duplicates[0].ExistingID)

	stored, err := env.productRepo.FindByID(existing.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock, "duplicate rows never merge into the existing product")
}

func TestImportCSVEmptyInputs(t *testing.T) {
	env := newTestEnv(t)

	// Header only
	result, err := env.importer.ImportCSV(strings.NewReader("name,unit,stock\n"), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Duplicates: []DuplicateEntry{}}, result)

	// No bytes at all
	result, err = env.importer.ImportCSV(strings.NewReader(""), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{Duplicates: []DuplicateEntry{}}, result)
}

func TestImportCSVStockDefaultsAndStatus(t *testing.T) {
	env := newTestEnv(t)

	csvData := "name,stock,status\nNoStock,,In Stock\nBadStock,abc,\nGood,4,Out of Stock\n"
	result, err := env.importer.ImportCSV(strings.NewReader(csvData), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Added)

	noStock, err := env.productRepo.FindByName("NoStock")
	require.NoError(t, err)
	assert.Equal(t, 0, noStock.Stock)
	assert.Equal(t, model.StatusOutOfStock, noStock.Status, "status comes from the deriver, not the file")

	badStock, err := env.productRepo.FindByName("BadStock")
	require.NoError(t, err)
	assert.Equal(t, 0, badStock.Stock)

	good, err := env.productRepo.FindByName("Good")
	require.NoError(t, err)
	assert.Equal(t, 4, good.Stock)
	assert.Equal(t, model.StatusInStock, good.Status)
}

func TestImportCSVTrimsAndQuotedFields(t *testing.T) {
	env := newTestEnv(t)

	csvData := "name,unit,category,brand,stock\n\"  Spaced Name  \",pcs,\"cat,egory\",Acme,2\n"
	result, err := env.importer.ImportCSV(strings.NewReader(csvData), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)

	p, err := env.productRepo.FindByName("Spaced Name")
	require.NoError(t, err)
	assert.Equal(t, "cat,egory", p.Category)
}

func TestImportCSVSharedBatchTimestamp(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.importer.ImportCSV(strings.NewReader("name,stock\nFirst,1\nSecond,2\n"), "a@b.com")
	require.NoError(t, err)
	require.Equal(t, 2, result.Added)

	first, err := env.productRepo.FindByName("First")
	require.NoError(t, err)
	second, err := env.productRepo.FindByName("Second")
	require.NoError(t, err)

	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.True(t, first.CreatedAt.Equal(first.UpdatedAt))
}

func TestExportThenImportIsAllDuplicates(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Widget, Deluxe", 5)
	env.seedProduct(t, `The "Best" Gadget`, 0)
	env.seedProduct(t, "Plain", 3)

	out, err := env.products.ExportCSV()
	require.NoError(t, err)

	result, err := env.importer.ImportCSV(strings.NewReader(out), "a@b.com")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 3, result.Skipped)
	assert.Len(t, result.Duplicates, 3)

	// Nothing was mutated
	p, err := env.productRepo.FindByName("Widget, Deluxe")
	require.NoError(t, err)
	assert.Equal(t, 5, p.Stock)
}
