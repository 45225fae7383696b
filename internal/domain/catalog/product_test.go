package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func createTestProduct(t *testing.T, price float64, stock int) *Product {
	p, err := NewProduct("Steel Water Bottle", "SKU-BOTTLE-1", "1L insulated bottle", uuid.New(), valueobject.NewMoneyINRFromFloat(price), stock)
	require.NoError(t, err)
	return p
}

func TestNewProduct_Validation(t *testing.T) {
	categoryID := uuid.New()
	price := valueobject.NewMoneyINRFromFloat(100)

	tests := []struct {
		name     string
		prodName string
		sku      string
		category uuid.UUID
		price    valueobject.Money
		stock    int
		wantErr  bool
	}{
		{"valid", "Bottle", "SKU-1", categoryID, price, 5, false},
		{"empty name", "", "SKU-1", categoryID, price, 5, true},
		{"whitespace name", "   ", "SKU-1", categoryID, price, 5, true},
		{"empty sku", "Bottle", "", categoryID, price, 5, true},
		{"nil category", "Bottle", "SKU-1", uuid.Nil, price, 5, true},
		{"negative price", "Bottle", "SKU-1", categoryID, valueobject.NewMoneyINRFromFloat(-1), 5, true},
		{"negative stock", "Bottle", "SKU-1", categoryID, price, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct(tt.prodName, tt.sku, "", tt.category, tt.price, tt.stock)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProduct_SlugGeneratedFromName(t *testing.T) {
	p := createTestProduct(t, 100, 5)
	assert.Equal(t, "steel-water-bottle", p.Slug)
}

func TestProduct_EffectivePrice(t *testing.T) {
	t.Run("no discount uses list price", func(t *testing.T) {
		p := createTestProduct(t, 100, 5)
		assert.True(t, p.EffectivePrice().Amount().Equal(decimal.NewFromInt(100)))
		assert.False(t, p.IsOnSale())
	})

	t.Run("lower discount wins", func(t *testing.T) {
		p := createTestProduct(t, 100, 5)
		require.NoError(t, p.SetDiscountPrice(valueobject.NewMoneyINRFromFloat(80)))
		assert.True(t, p.EffectivePrice().Amount().Equal(decimal.NewFromInt(80)))
		assert.True(t, p.IsOnSale())
		assert.Equal(t, 20, p.DiscountPercentage())
	})

	t.Run("discount at or above list price is rejected", func(t *testing.T) {
		p := createTestProduct(t, 100, 5)
		assert.Error(t, p.SetDiscountPrice(valueobject.NewMoneyINRFromFloat(100)))
		assert.Error(t, p.SetDiscountPrice(valueobject.NewMoneyINRFromFloat(150)))
	})

	t.Run("stale discount equal to price is ignored", func(t *testing.T) {
		// A discount can become >= price after a price drop
		p := createTestProduct(t, 100, 5)
		require.NoError(t, p.SetDiscountPrice(valueobject.NewMoneyINRFromFloat(90)))
		require.NoError(t, p.UpdatePrice(valueobject.NewMoneyINRFromFloat(85)))
		assert.True(t, p.EffectivePrice().Amount().Equal(decimal.NewFromInt(85)))
		assert.Equal(t, 0, p.DiscountPercentage())
	})

	t.Run("clear discount restores list price", func(t *testing.T) {
		p := createTestProduct(t, 100, 5)
		require.NoError(t, p.SetDiscountPrice(valueobject.NewMoneyINRFromFloat(70)))
		p.ClearDiscountPrice()
		assert.True(t, p.EffectivePrice().Amount().Equal(decimal.NewFromInt(100)))
	})
}

func TestProduct_Stock(t *testing.T) {
	p := createTestProduct(t, 100, 3)

	assert.True(t, p.IsInStock(3))
	assert.False(t, p.IsInStock(4))

	require.NoError(t, p.DecreaseStock(2))
	assert.Equal(t, 1, p.StockQuantity)

	err := p.DecreaseStock(2)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.Equal(t, 1, p.StockQuantity)

	require.NoError(t, p.IncreaseStock(5))
	assert.Equal(t, 6, p.StockQuantity)

	assert.Error(t, p.DecreaseStock(0))
	assert.Error(t, p.IncreaseStock(-1))
}

func TestProduct_UnavailableIsNeverInStock(t *testing.T) {
	p := createTestProduct(t, 100, 10)
	p.MarkUnavailable()
	assert.False(t, p.IsInStock(1))
}

func TestProduct_RecordView(t *testing.T) {
	p := createTestProduct(t, 100, 1)
	p.RecordView()
	p.RecordView()
	assert.Equal(t, int64(2), p.ViewCount)
}

func TestProductVariant_FinalPrice(t *testing.T) {
	p := createTestProduct(t, 100, 5)
	require.NoError(t, p.SetDiscountPrice(valueobject.NewMoneyINRFromFloat(90)))

	v, err := NewProductVariant(p.ID, VariantTypeSize, "XL", decimal.NewFromInt(15), 3)
	require.NoError(t, err)

	// Adjustment applies on top of the effective (discounted) price
	assert.True(t, v.FinalPrice(p).Amount().Equal(decimal.NewFromInt(105)))
}

func TestNewProductVariant_Validation(t *testing.T) {
	productID := uuid.New()

	_, err := NewProductVariant(uuid.Nil, VariantTypeSize, "M", decimal.Zero, 1)
	assert.Error(t, err)

	_, err = NewProductVariant(productID, VariantType("shape"), "round", decimal.Zero, 1)
	assert.Error(t, err)

	_, err = NewProductVariant(productID, VariantTypeColor, "", decimal.Zero, 1)
	assert.Error(t, err)

	_, err = NewProductVariant(productID, VariantTypeColor, "red", decimal.Zero, -1)
	assert.Error(t, err)
}

func TestNewReview_Validation(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()

	for _, rating := range []int{0, 6, -1} {
		_, err := NewReview(productID, userID, rating, "", "")
		assert.Error(t, err, "rating %d should be rejected", rating)
	}

	r, err := NewReview(productID, userID, 5, "Great", "Works well")
	require.NoError(t, err)
	assert.False(t, r.IsApproved)

	r.Approve()
	assert.True(t, r.IsApproved)
}

func TestNewCategory_SlugAndState(t *testing.T) {
	c, err := NewCategory("Home & Kitchen", "")
	require.NoError(t, err)
	assert.Equal(t, "home-kitchen", c.Slug)
	assert.True(t, c.IsActive)

	c.Deactivate()
	assert.False(t, c.IsActive)

	require.NoError(t, c.Rename("Kitchenware"))
	assert.Equal(t, "kitchenware", c.Slug)
}
