package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prasadvm/storekart/internal/db"
	"github.com/prasadvm/storekart/internal/models"
	"github.com/prasadvm/storekart/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return repo.New(gdb)
}

func seedProduct(t *testing.T, r *repo.GormRepo, sellerID uuid.UUID, name string, price float64) *models.Product {
	t.Helper()
	p := models.Product{
		SellerID:    sellerID,
		Name:        name,
		Price:       price,
		Description: name + " description",
		Category:    "test",
	}
	require.NoError(t, r.DB.Create(&p).Error)
	return &p
}
