package service

import (
	"context"
	"testing"

	"napos/internal/domainerr"
	"napos/internal/dto"
	"napos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductoService(t *testing.T) (ProductoService, *stubProductoRepo, *stubProveedorRepo, *stubHistorialRepo) {
	t.Helper()
	productos := newStubProductoRepo()
	proveedores := newStubProveedorRepo()
	historial := newStubHistorialRepo()
	return NewProductoService(productos, proveedores, historial), productos, proveedores, historial
}

func TestCrearProducto_SinProveedorUsaPrecioManual(t *testing.T) {
	svc, _, _, _ := newProductoService(t)

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoBarras: "7700001112223",
		Nombre:       "Bolsa plástica",
		PrecioCompra: d("50"),
		PrecioVenta:  d("200"),
		Stock:        100,
		StockMinimo:  10,
	})
	require.NoError(t, err)

	assert.True(t, d("200").Equal(resp.PrecioVenta), "sin proveedor el precio es el manual")
	assert.Nil(t, resp.ProveedorID)
	assert.True(t, resp.Activo)
}

func TestCrearProducto_ConProveedorDerivaElPrecio(t *testing.T) {
	svc, _, proveedores, _ := newProductoService(t)
	proveedor := proveedores.add(&model.Proveedor{
		Nombre:             "Distribuidora Norte",
		NIT:                "900123456-1",
		PorcentajeGanancia: d("40"),
		Activo:             true,
	})

	pid := proveedor.ID.String()
	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoBarras: "7700004445556",
		Nombre:       "Arroz Diana 500g",
		PrecioCompra: d("1000"),
		PrecioVenta:  d("9999"), // ignored: the formula wins
		ProveedorID:  &pid,
		Stock:        50,
		StockMinimo:  5,
	})
	require.NoError(t, err)

	assert.True(t, d("1400").Equal(resp.PrecioVenta))
	require.NotNil(t, resp.ProveedorID)
	assert.Equal(t, pid, *resp.ProveedorID)
}

func TestCrearProducto_BarcodeDuplicado(t *testing.T) {
	svc, productos, _, _ := newProductoService(t)
	productos.add(&model.Producto{CodigoBarras: "7700001112223", Nombre: "Existente", Activo: true})

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoBarras: "7700001112223",
		Nombre:       "Repetido",
		PrecioCompra: d("10"),
		PrecioVenta:  d("20"),
	})
	require.ErrorIs(t, err, domainerr.ErrDuplicado)
}

func TestCrearProducto_ProveedorNoExiste(t *testing.T) {
	svc, _, _, _ := newProductoService(t)

	pid := uuid.NewString()
	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		CodigoBarras: "7700007778889",
		Nombre:       "Sin proveedor real",
		PrecioCompra: d("10"),
		ProveedorID:  &pid,
	})
	require.ErrorIs(t, err, domainerr.ErrNoEncontrado)
}

func TestActualizarProducto_NoTocaPrecios(t *testing.T) {
	svc, productos, _, _ := newProductoService(t)
	p := productos.add(&model.Producto{
		CodigoBarras: "7700001112223",
		Nombre:       "Arroz",
		PrecioCompra: d("1000"),
		PrecioVenta:  d("1400"),
		StockMinimo:  5,
		Activo:       true,
	})

	resp, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarProductoRequest{
		Nombre:      "Arroz Diana",
		Categoria:   "granos",
		StockMinimo: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, "Arroz Diana", resp.Nombre)
	assert.Equal(t, 8, resp.StockMinimo)
	assert.True(t, d("1400").Equal(resp.PrecioVenta))
}

func TestDesactivarYReactivarProducto(t *testing.T) {
	svc, productos, _, _ := newProductoService(t)
	p := productos.add(&model.Producto{CodigoBarras: "7700001112223", Nombre: "Arroz", Activo: true})

	require.NoError(t, svc.Desactivar(context.Background(), p.ID))
	assert.False(t, p.Activo)

	require.NoError(t, svc.Reactivar(context.Background(), p.ID))
	assert.True(t, p.Activo)
}

func TestHistorialProducto(t *testing.T) {
	svc, productos, _, historial := newProductoService(t)
	p := productos.add(&model.Producto{CodigoBarras: "7700001112223", Nombre: "Arroz", Activo: true})

	require.NoError(t, historial.CreateTx(nil, &model.HistorialPrecio{
		ProductoID:   p.ID,
		CostoAntes:   d("1000"),
		CostoDespues: d("1200"),
		VentaAntes:   d("1400"),
		VentaDespues: d("1680"),
		Motivo:       model.MotivoCompra,
	}))

	filas, err := svc.Historial(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, filas, 1)
	assert.Equal(t, model.MotivoCompra, filas[0].Motivo)
	assert.True(t, d("1680").Equal(filas[0].VentaDespues))
}

func TestObtenerProducto_NoExiste(t *testing.T) {
	svc, _, _, _ := newProductoService(t)

	_, err := svc.ObtenerPorID(context.Background(), newID())
	require.ErrorIs(t, err, domainerr.ErrNoEncontrado)
}
