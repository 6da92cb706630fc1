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
	"gorm.io/gorm"
)

type ventaFixture struct {
	svc            VentaService
	ventas         *stubVentaRepo
	productos      *stubProductoRepo
	clientes       *stubClienteRepo
	usuarios       *stubUsuarioRepo
	cajas          *stubCajaRepo
	notificaciones *stubNotificacionRepo
	caja           *model.Caja
	usuario        *model.Usuario
	cliente        *model.Cliente
	producto       *model.Producto
}

func newVentaFixture(t *testing.T) *ventaFixture {
	t.Helper()
	ventas := newStubVentaRepo()
	productos := newStubProductoRepo()
	clientes := newStubClienteRepo()
	usuarios := newStubUsuarioRepo()
	cajas := newStubCajaRepo()
	notifRepo := newStubNotificacionRepo()

	caja := &model.Caja{MontoInicial: d("50000"), Estado: model.CajaAbierta}
	require.NoError(t, cajas.Create(context.Background(), caja))

	usuario := usuarios.add(&model.Usuario{
		Username: "lramirez",
		Nombre:   "Laura Ramírez",
		Rol:      "cajero",
		Activo:   true,
	})

	limite := d("100000")
	cliente := clientes.add(&model.Cliente{
		Nombre:       "Carlos Pérez",
		Cedula:       "1020304050",
		MontoCredito: &limite,
		Activo:       true,
	})

	producto := productos.add(&model.Producto{
		CodigoBarras: "7702001020304",
		Nombre:       "Gaseosa 1.5L",
		PrecioCompra: d("2000"),
		PrecioVenta:  d("3000"),
		Stock:        20,
		StockMinimo:  5,
		Activo:       true,
	})

	credito := NewCreditoService(clientes)
	notificaciones := NewNotificacionService(notifRepo, productos, nil)
	svc := NewVentaService(ventas, productos, clientes, usuarios, cajas, credito, notificaciones, "NaPos", t.TempDir())

	return &ventaFixture{
		svc:            svc,
		ventas:         ventas,
		productos:      productos,
		clientes:       clientes,
		usuarios:       usuarios,
		cajas:          cajas,
		notificaciones: notifRepo,
		caja:           caja,
		usuario:        usuario,
		cliente:        cliente,
		producto:       producto,
	}
}

func (f *ventaFixture) request(metodo string, items ...dto.ItemVentaRequest) dto.RegistrarVentaRequest {
	return dto.RegistrarVentaRequest{
		CajaID:     f.caja.ID.String(),
		UsuarioID:  f.usuario.ID.String(),
		MetodoPago: metodo,
		Items:      items,
	}
}

func TestRegistrarVenta_Efectivo(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.RegistrarVenta(context.Background(), f.request(model.MetodoEfectivo,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 3},
	))
	require.NoError(t, err)

	assert.Equal(t, 1, resp.NumeroTicket)
	assert.Equal(t, model.VentaCompletada, resp.Estado)
	assert.True(t, d("9000").Equal(resp.Total))
	require.Len(t, resp.Detalles, 1)
	assert.Equal(t, "Gaseosa 1.5L", resp.Detalles[0].Producto)
	assert.True(t, d("3000").Equal(resp.Detalles[0].PrecioUnitario))

	assert.Equal(t, 17, f.producto.Stock)
}

func TestRegistrarVenta_TicketsConsecutivos(t *testing.T) {
	f := newVentaFixture(t)

	for esperado := 1; esperado <= 3; esperado++ {
		resp, err := f.svc.RegistrarVenta(context.Background(), f.request(model.MetodoEfectivo,
			dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 1},
		))
		require.NoError(t, err)
		assert.Equal(t, esperado, resp.NumeroTicket)
	}
}

func TestRegistrarVenta_StockInsuficiente(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.RegistrarVenta(context.Background(), f.request(model.MetodoEfectivo,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 21},
	))
	require.ErrorIs(t, err, domainerr.ErrStockInsuficiente)
	assert.Equal(t, domainerr.KindResourceExhausted, domainerr.KindOf(err))

	assert.Equal(t, 20, f.producto.Stock, "el stock no se toca")
	assert.Empty(t, f.ventas.ventas, "la venta no se persiste")
}

func TestRegistrarVenta_CajaCerrada(t *testing.T) {
	f := newVentaFixture(t)
	require.NoError(t, f.caja.Cerrar(d("50000"), f.caja.FechaApertura))

	_, err := f.svc.RegistrarVenta(context.Background(), f.request(model.MetodoEfectivo,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 1},
	))
	require.ErrorIs(t, err, domainerr.ErrCajaNoAbierta)
	assert.Equal(t, 20, f.producto.Stock)
}

func TestRegistrarVenta_SinItems(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.RegistrarVenta(context.Background(), f.request(model.MetodoEfectivo))
	require.ErrorIs(t, err, domainerr.ErrVentaVacia)
}

func TestRegistrarVenta_ProductoInactivo(t *testing.T) {
	f := newVentaFixture(t)
	f.producto.Activo = false

	_, err := f.svc.RegistrarVenta(context.Background(), f.request(model.MetodoEfectivo,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 1},
	))
	require.ErrorIs(t, err, domainerr.ErrProductoInactivo)
}

func TestRegistrarVenta_CreditoCargaAlCliente(t *testing.T) {
	f := newVentaFixture(t)
	req := f.request(model.MetodoCredito,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 2},
	)
	cid := f.cliente.ID.String()
	req.ClienteID = &cid

	resp, err := f.svc.RegistrarVenta(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, d("6000").Equal(resp.Total))
	assert.True(t, d("6000").Equal(f.cliente.SaldoUtilizado))
	assert.Equal(t, 18, f.producto.Stock)
}

func TestRegistrarVenta_CreditoExcedido(t *testing.T) {
	f := newVentaFixture(t)
	f.cliente.SaldoUtilizado = d("99000") // quedan 1000 disponibles

	req := f.request(model.MetodoCredito,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 1},
	)
	cid := f.cliente.ID.String()
	req.ClienteID = &cid

	_, err := f.svc.RegistrarVenta(context.Background(), req)
	require.ErrorIs(t, err, domainerr.ErrCreditoExcedido)

	// El crédito se carga antes de mover inventario: nada cambió.
	assert.True(t, d("99000").Equal(f.cliente.SaldoUtilizado))
	assert.Equal(t, 20, f.producto.Stock)
	assert.Empty(t, f.ventas.ventas)
}

func TestRegistrarVenta_CreditoPorElLimiteExacto(t *testing.T) {
	f := newVentaFixture(t)
	limite := d("9000")
	f.cliente.MontoCredito = &limite

	req := f.request(model.MetodoCredito,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 3},
	)
	cid := f.cliente.ID.String()
	req.ClienteID = &cid

	_, err := f.svc.RegistrarVenta(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, f.cliente.SaldoDisponible().IsZero())
}

func TestRegistrarVenta_CreditoSinCliente(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.RegistrarVenta(context.Background(), f.request(model.MetodoCredito,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 1},
	))
	require.ErrorIs(t, err, domainerr.ErrCreditoRequiereCliente)
}

func TestRegistrarVenta_PrecioCongeladoEnElDetalle(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.RegistrarVenta(context.Background(), f.request(model.MetodoEfectivo,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 1},
	))
	require.NoError(t, err)

	// Later repricing must not rewrite the historical line.
	f.producto.PrecioVenta = d("9999")

	venta, err := f.svc.ObtenerVenta(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.True(t, d("3000").Equal(venta.Detalles[0].PrecioUnitario))
}

func TestRegistrarVenta_GeneraAlertaDeStockBajo(t *testing.T) {
	f := newVentaFixture(t)
	f.producto.Stock = 6 // una venta de 1 lo deja en el mínimo

	_, err := f.svc.RegistrarVenta(context.Background(), f.request(model.MetodoEfectivo,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 1},
	))
	require.NoError(t, err)

	pendientes, err := f.notificaciones.ListNoLeidas(context.Background())
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.Equal(t, model.SeveridadAdvertencia, pendientes[0].Severidad)
}

func TestAnularVenta_RestauraStockYCredito(t *testing.T) {
	f := newVentaFixture(t)
	req := f.request(model.MetodoCredito,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 4},
	)
	cid := f.cliente.ID.String()
	req.ClienteID = &cid

	resp, err := f.svc.RegistrarVenta(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 16, f.producto.Stock)
	require.True(t, d("12000").Equal(f.cliente.SaldoUtilizado))

	anulada, err := f.svc.AnularVenta(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)

	assert.Equal(t, model.VentaAnulada, anulada.Estado)
	assert.Equal(t, 20, f.producto.Stock)
	assert.True(t, f.cliente.SaldoUtilizado.IsZero())
}

func TestAnularVenta_DosVeces(t *testing.T) {
	f := newVentaFixture(t)

	resp, err := f.svc.RegistrarVenta(context.Background(), f.request(model.MetodoEfectivo,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 1},
	))
	require.NoError(t, err)

	id := uuid.MustParse(resp.ID)
	_, err = f.svc.AnularVenta(context.Background(), id)
	require.NoError(t, err)

	_, err = f.svc.AnularVenta(context.Background(), id)
	require.ErrorIs(t, err, domainerr.ErrVentaNoCompletada)
	assert.Equal(t, domainerr.KindStateConflict, domainerr.KindOf(err))
	assert.Equal(t, 20, f.producto.Stock, "el stock no se restaura dos veces")
}

// ventaRepoAnulacionAjena pierde el flip condicional: otra petición ya
// anuló la misma venta dentro de su propia transacción.
type ventaRepoAnulacionAjena struct {
	*stubVentaRepo
}

func (r *ventaRepoAnulacionAjena) MarcarAnuladaTx(_ *gorm.DB, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func TestAnularVenta_ConcurrenteNoRestauraDosVeces(t *testing.T) {
	f := newVentaFixture(t)
	req := f.request(model.MetodoCredito,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 2},
	)
	cid := f.cliente.ID.String()
	req.ClienteID = &cid

	resp, err := f.svc.RegistrarVenta(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 18, f.producto.Stock)

	credito := NewCreditoService(f.clientes)
	notif := NewNotificacionService(f.notificaciones, f.productos, nil)
	svc := NewVentaService(&ventaRepoAnulacionAjena{f.ventas}, f.productos, f.clientes,
		f.usuarios, f.cajas, credito, notif, "NaPos", t.TempDir())

	_, err = svc.AnularVenta(context.Background(), uuid.MustParse(resp.ID))
	require.ErrorIs(t, err, domainerr.ErrVentaNoCompletada)

	// La anulación que ganó ya devolvió stock y crédito; esta no repite.
	assert.Equal(t, 18, f.producto.Stock)
	assert.True(t, d("6000").Equal(f.cliente.SaldoUtilizado))
}

// cajaRepoCierreConcurrente muestra la caja abierta en el pre-chequeo pero
// cerrada en la relectura bajo bloqueo, como si un Cerrar hubiera confirmado
// en medio de la venta.
type cajaRepoCierreConcurrente struct {
	*stubCajaRepo
}

func (r *cajaRepoCierreConcurrente) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	c, err := r.stubCajaRepo.FindByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	cerrada := *c
	cerrada.Estado = model.CajaCerrada
	return &cerrada, nil
}

func TestRegistrarVenta_CajaCerradaDuranteLaVenta(t *testing.T) {
	f := newVentaFixture(t)
	credito := NewCreditoService(f.clientes)
	notif := NewNotificacionService(f.notificaciones, f.productos, nil)
	svc := NewVentaService(f.ventas, f.productos, f.clientes, f.usuarios,
		&cajaRepoCierreConcurrente{f.cajas}, credito, notif, "NaPos", t.TempDir())

	_, err := svc.RegistrarVenta(context.Background(), f.request(model.MetodoEfectivo,
		dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 1},
	))
	require.ErrorIs(t, err, domainerr.ErrCajaNoAbierta)

	// La venta no llegó a tocar nada.
	assert.Equal(t, 20, f.producto.Stock)
	assert.Empty(t, f.ventas.ventas)
}

func TestAnularVenta_NoExiste(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.AnularVenta(context.Background(), newID())
	require.ErrorIs(t, err, domainerr.ErrNoEncontrado)
}

func TestObtenerVenta_NoExiste(t *testing.T) {
	f := newVentaFixture(t)

	_, err := f.svc.ObtenerVenta(context.Background(), newID())
	require.ErrorIs(t, err, domainerr.ErrNoEncontrado)
}

func TestListVentas_FiltraPorEstado(t *testing.T) {
	f := newVentaFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.svc.RegistrarVenta(context.Background(), f.request(model.MetodoEfectivo,
			dto.ItemVentaRequest{ProductoID: f.producto.ID.String(), Cantidad: 1},
		))
		require.NoError(t, err)
	}

	lista, err := f.svc.ListVentas(context.Background(), dto.VentaFilter{Estado: model.VentaCompletada, Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(3), lista.Total)

	anuladas, err := f.svc.ListVentas(context.Background(), dto.VentaFilter{Estado: model.VentaAnulada, Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(0), anuladas.Total)
	assert.Empty(t, anuladas.Data)
}
