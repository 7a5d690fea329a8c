package service

import (
	"path/filepath"
	"testing"

	"go-inventory-api/internal/model"
	"go-inventory-api/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB creates a throwaway sqlite database for one test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Product{}, &model.InventoryLog{}))
	return db
}

type testEnv struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
	products    ProductService
	importer    ImportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := openTestDB(t)
	productRepo := repository.NewProductRepo(db)
	logRepo := repository.NewInventoryLogRepo(db)

	return &testEnv{
		db:          db,
		productRepo: productRepo,
		logRepo:     logRepo,
		products:    NewProductService(productRepo, logRepo, nil),
		importer:    NewImportService(productRepo, nil),
	}
}

func (e *testEnv) seedProduct(t *testing.T, name string, stock int) *model.Product {
	t.Helper()

	p := &model.Product{Name: name, Unit: "pcs", Category: "general", Brand: "Acme", Stock: stock}
	require.NoError(t, e.products.CreateProduct(p, "seed@test.local"), "seeding %q", name)
	return p
}
