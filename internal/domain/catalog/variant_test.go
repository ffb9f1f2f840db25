package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductVariant(t *testing.T) {
	productID := uuid.New()
	color := Color{BaseColor: "blue", ActualColor: "navy", ColorName: "Navy"}

	t.Run("creates variant with valid inputs", func(t *testing.T) {
		sizes := []SizeStock{{Size: SizeM, Stock: 10}, {Size: SizeL, Stock: 0}}
		variant, err := NewProductVariant(productID, "oxf-001-nvy", decimal.NewFromInt(45), color, sizes)
		require.NoError(t, err)
		require.NotNil(t, variant)

		assert.Equal(t, productID, variant.ProductID)
		assert.Equal(t, "OXF-001-NVY", variant.SKU)
		assert.Equal(t, "navy", variant.Color.ActualColor)
		assert.True(t, variant.Status)
		assert.Equal(t, 10, variant.TotalStock())
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProductVariant(productID, "OXF-001-NVY", decimal.NewFromInt(-1), color, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price cannot be negative")
	})

	t.Run("fails with empty actual color", func(t *testing.T) {
		_, err := NewProductVariant(productID, "OXF-001-NVY", decimal.NewFromInt(45), Color{BaseColor: "blue"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "actual color cannot be empty")
	})

	t.Run("fails with unsupported size", func(t *testing.T) {
		sizes := []SizeStock{{Size: "XS", Stock: 1}}
		_, err := NewProductVariant(productID, "OXF-001-NVY", decimal.NewFromInt(45), color, sizes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unsupported size")
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		sizes := []SizeStock{{Size: SizeM, Stock: -1}}
		_, err := NewProductVariant(productID, "OXF-001-NVY", decimal.NewFromInt(45), color, sizes)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stock cannot be negative")
	})
}

func TestProductVariant_SetSKU(t *testing.T) {
	variant, err := NewProductVariant(uuid.New(), "OXF-001-NVY", decimal.NewFromInt(45),
		Color{BaseColor: "blue", ActualColor: "navy", ColorName: "Navy"}, nil)
	require.NoError(t, err)

	require.NoError(t, variant.SetSKU("oxf-001-red"))
	assert.Equal(t, "OXF-001-RED", variant.SKU)

	require.Error(t, variant.SetSKU(""))
	require.Error(t, variant.SetSKU("has spaces"))
	assert.Equal(t, "OXF-001-RED", variant.SKU)
}

func TestProductVariant_SetSizes(t *testing.T) {
	variant, err := NewProductVariant(uuid.New(), "OXF-001-NVY", decimal.NewFromInt(45),
		Color{BaseColor: "blue", ActualColor: "navy", ColorName: "Navy"}, nil)
	require.NoError(t, err)

	require.NoError(t, variant.SetSizes([]SizeStock{{Size: SizeS, Stock: 3}, {Size: SizeXXL, Stock: 2}}))
	assert.Equal(t, 5, variant.TotalStock())

	err = variant.SetSizes([]SizeStock{{Size: "M/L", Stock: 1}})
	require.Error(t, err)
	assert.Equal(t, 5, variant.TotalStock())
}
