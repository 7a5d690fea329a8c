package repository

import (
	"path/filepath"
	"sort"
	"testing"

	"go-inventory-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.InventoryLog{}))
	return db
}

func seedCatalog(t *testing.T, repo ProductRepository) {
	t.Helper()

	products := []model.Product{
		{Name: "Apple Juice", Unit: "btl", Category: "drinks", Brand: "Fresh", Stock: 12, Status: model.StatusInStock},
		{Name: "Banana Chips", Unit: "bag", Category: "snacks", Brand: "Crunch", Stock: 0, Status: model.StatusOutOfStock},
		{Name: "Cherry Soda", Unit: "can", Category: "drinks", Brand: "Fizz", Stock: 30, Status: model.StatusInStock},
		{Name: "apple pie", Unit: "pcs", Category: "snacks", Brand: "Oven", Stock: 4, Status: model.StatusInStock},
		{Name: "Dried Apples", Unit: "bag", Category: "snacks", Brand: "Crunch", Stock: 7, Status: model.StatusInStock},
	}
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}
}

func TestListPaginationAndTotal(t *testing.T) {
	repo := NewProductRepo(openTestDB(t))
	seedCatalog(t, repo)

	page, total, err := repo.List(ListOptions{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.EqualValues(t, 5, total, "total counts all matches, not the page")

	page2, total2, err := repo.List(ListOptions{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page2, 1)
	assert.EqualValues(t, 5, total2)
}

func TestListClampsPageAndLimit(t *testing.T) {
	repo := NewProductRepo(openTestDB(t))
	seedCatalog(t, repo)

	page, total, err := repo.List(ListOptions{Page: -3, Limit: 0})
	require.NoError(t, err)
	assert.Len(t, page, 5, "limit falls back to the default of 10")
	assert.EqualValues(t, 5, total)
}

func TestListSearchCaseInsensitiveWithMatchingTotal(t *testing.T) {
	repo := NewProductRepo(openTestDB(t))
	seedCatalog(t, repo)

	page, total, err := repo.List(ListOptions{Search: "APPLE", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.EqualValues(t, 3, total, "total honors the same filter as the page")

	for _, p := range page {
		assert.Contains(t, []string{"Apple Juice", "apple pie", "Dried Apples"}, p.Name)
	}
}

func TestListFiltersCombineWithAND(t *testing.T) {
	repo := NewProductRepo(openTestDB(t))
	seedCatalog(t, repo)

	page, total, err := repo.List(ListOptions{Search: "apple", Category: "snacks"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, p := range page {
		assert.Equal(t, "snacks", p.Category)
	}
}

func TestListSortAscDesc(t *testing.T) {
	repo := NewProductRepo(openTestDB(t))
	seedCatalog(t, repo)

	asc, _, err := repo.List(ListOptions{Sort: "stock", Order: "asc"})
	require.NoError(t, err)
	assert.True(t, sort.SliceIsSorted(asc, func(i, j int) bool { return asc[i].Stock < asc[j].Stock }))

	// Order is case-insensitive
	desc, _, err := repo.List(ListOptions{Sort: "stock", Order: "DESC"})
	require.NoError(t, err)
	assert.True(t, sort.SliceIsSorted(desc, func(i, j int) bool { return desc[i].Stock > desc[j].Stock }))
}

func TestListUnknownSortFallsBackToID(t *testing.T) {
	repo := NewProductRepo(openTestDB(t))
	seedCatalog(t, repo)

	page, _, err := repo.List(ListOptions{Sort: "evil; DROP TABLE products", Order: "sideways"})
	require.NoError(t, err)
	assert.True(t, sort.SliceIsSorted(page, func(i, j int) bool { return page[i].ID < page[j].ID }),
		"unknown sort keys sort by id, unknown order means asc")
}

func TestFindByNameCaseInsensitive(t *testing.T) {
	repo := NewProductRepo(openTestDB(t))
	seedCatalog(t, repo)

	p, err := repo.FindByName("APPLE JUICE")
	require.NoError(t, err)
	assert.Equal(t, "Apple Juice", p.Name)

	_, err = repo.FindByName("No Such Thing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFindByNameExcept(t *testing.T) {
	repo := NewProductRepo(openTestDB(t))
	seedCatalog(t, repo)

	self, err := repo.FindByName("Apple Juice")
	require.NoError(t, err)

	// A product never conflicts with itself
	_, err = repo.FindByNameExcept("apple juice", self.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	conflict, err := repo.FindByNameExcept("apple juice", self.ID+100)
	require.NoError(t, err)
	assert.Equal(t, self.ID, conflict.ID)
}

func TestSearchByName(t *testing.T) {
	repo := NewProductRepo(openTestDB(t))
	seedCatalog(t, repo)

	results, err := repo.SearchByName("apple")
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestDeleteReportsRowsAffected(t *testing.T) {
	repo := NewProductRepo(openTestDB(t))
	seedCatalog(t, repo)

	p, err := repo.FindByName("Apple Juice")
	require.NoError(t, err)

	affected, err := repo.Delete(p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = repo.Delete(p.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}
