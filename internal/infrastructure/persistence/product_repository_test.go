package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormProductRepository(gormDB), mock, mockDB
}

func TestGormProductRepository_DecrementStock(t *testing.T) {
	t.Run("decrements stock when enough units remain", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET .*"stock_quantity"=stock_quantity - \$1.* WHERE id = \$\d+ AND stock_quantity >= \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DecrementStock(context.Background(), productID, 3)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fails with insufficient stock when guard matches no row", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		// Zero rows affected means the conditional UPDATE found no row with
		// enough stock. That must surface as ErrInsufficientStock, not as a
		// silent no-op.
		mock.ExpectExec(`UPDATE "products" SET .*"stock_quantity"=stock_quantity - \$1.* WHERE id = \$\d+ AND stock_quantity >= \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DecrementStock(context.Background(), productID, 100)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_IncrementStock(t *testing.T) {
	t.Run("adds stock back", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET .*"stock_quantity"=stock_quantity \+ \$1.* WHERE id = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementStock(context.Background(), productID, 2)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown product returns not found", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "products"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementStock(context.Background(), uuid.New(), 2)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_IncrementViewCount(t *testing.T) {
	repo, mock, mockDB := newMockProductRepository(t)
	defer mockDB.Close()

	mock.ExpectExec(`UPDATE "products" SET .*"view_count"=view_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementViewCount(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_FindByID_NotFound(t *testing.T) {
	repo, mock, mockDB := newMockProductRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_FindByIDs_Empty(t *testing.T) {
	repo, _, mockDB := newMockProductRepository(t)
	defer mockDB.Close()

	products, err := repo.FindByIDs(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, products)
}
