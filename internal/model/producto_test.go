package model

import (
	"testing"

	"napos/internal/domainerr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalcularPrecio(t *testing.T) {
	tests := []struct {
		name     string
		costo    string
		margen   string
		ajuste   string
		esperado string
	}{
		{"margen base sin ajuste", "1000", "40", "0", "1400"},
		{"ajuste positivo", "1000", "40", "5", "1450"},
		{"ajuste negativo", "1000", "40", "-10", "1300"},
		{"redondeo medio hacia arriba", "10", "1.25", "0", "10.13"},
		{"centavos exactos", "3.50", "30", "0", "4.55"},
		{"margen fraccionario", "7.99", "33.33", "0", "10.65"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			precio, err := CalcularPrecio(d(tt.costo), d(tt.margen), d(tt.ajuste))
			require.NoError(t, err)
			assert.True(t, d(tt.esperado).Equal(precio), "esperado %s, obtenido %s", tt.esperado, precio)
		})
	}
}

func TestCalcularPrecio_MargenEfectivoNoPositivo(t *testing.T) {
	_, err := CalcularPrecio(d("1000"), d("10"), d("-10"))
	assert.ErrorIs(t, err, domainerr.ErrMargenInvalido)

	_, err = CalcularPrecio(d("1000"), d("10"), d("-15"))
	assert.ErrorIs(t, err, domainerr.ErrMargenInvalido)
}

func TestCalcularPrecio_NoAcumulaRedondeo(t *testing.T) {
	// Repricing from the stored cost must always reproduce the same
	// price, no matter how many times it runs.
	costo, margen := d("7.77"), d("33.33")
	primero, err := CalcularPrecio(costo, margen, decimal.Zero)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		otra, err := CalcularPrecio(costo, margen, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, primero.Equal(otra))
	}
}

func TestProducto_CalcularPrecioVentaSinProveedor(t *testing.T) {
	p := &Producto{Nombre: "Bolsa", PrecioCompra: d("100"), PrecioVenta: d("250")}
	require.NoError(t, p.CalcularPrecioVenta())
	assert.True(t, d("250").Equal(p.PrecioVenta), "el precio manual no debe cambiar")
}

func TestProducto_CambiarProveedorPrincipalReseteaAjuste(t *testing.T) {
	viejo := &Proveedor{PorcentajeGanancia: d("30")}
	p := &Producto{Nombre: "Arroz", PrecioCompra: d("100"), AjusteProducto: d("8"), Proveedor: viejo}
	require.NoError(t, p.CalcularPrecioVenta())
	require.True(t, d("138").Equal(p.PrecioVenta))

	nuevo := &Proveedor{PorcentajeGanancia: d("50")}
	require.NoError(t, p.CambiarProveedorPrincipal(nuevo))
	assert.True(t, p.AjusteProducto.IsZero())
	assert.True(t, d("150").Equal(p.PrecioVenta))
}

func TestProducto_AplicarAjusteInvalidoNoMuta(t *testing.T) {
	p := &Producto{
		Nombre:       "Aceite",
		PrecioCompra: d("100"),
		PrecioVenta:  d("130"),
		Proveedor:    &Proveedor{PorcentajeGanancia: d("30")},
	}
	err := p.AplicarAjuste(d("-30"))
	require.ErrorIs(t, err, domainerr.ErrMargenInvalido)
	assert.True(t, p.AjusteProducto.IsZero())
	assert.True(t, d("130").Equal(p.PrecioVenta))
}

func TestProducto_Stock(t *testing.T) {
	p := &Producto{Nombre: "Leche", Stock: 5, StockMinimo: 5}

	assert.True(t, p.BajoStockMinimo())

	require.NoError(t, p.DescontarStock(5))
	assert.Equal(t, 0, p.Stock)

	err := p.DescontarStock(1)
	assert.ErrorIs(t, err, domainerr.ErrStockInsuficiente)
	assert.Equal(t, 0, p.Stock)

	require.NoError(t, p.IncrementarStock(3))
	assert.Equal(t, 3, p.Stock)

	assert.ErrorIs(t, p.IncrementarStock(0), domainerr.ErrCantidadInvalida)
}
