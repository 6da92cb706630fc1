package service

import (
	"context"
	"strings"
	"time"

	"napos/internal/dto"
	"napos/internal/model"
	"napos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so runTx executes the
// transaction body directly — no real rollback, each test asserts on the
// first mutation that should have failed.

func newID() uuid.UUID { return uuid.New() }

// ── ProductoRepository ───────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) add(p *model.Producto) *model.Producto {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	r.add(p)
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras == barcode && p.Activo {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) FindByProveedorID(_ context.Context, proveedorID uuid.UUID) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.ProveedorID != nil && *p.ProveedorID == proveedorID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) FindBajoStockMinimo(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.BajoStockMinimo() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, int64, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if filter.Nombre != "" && !strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(filter.Nombre)) {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = activo
	return nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) FindByProveedorIDTx(_ *gorm.DB, proveedorID uuid.UUID) ([]model.Producto, error) {
	return r.FindByProveedorID(context.Background(), proveedorID)
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (int64, error) {
	p, ok := r.productos[id]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	if p.Stock < cantidad {
		return 0, nil
	}
	p.Stock -= cantidad
	return 1, nil
}

func (r *stubProductoRepo) IncrementarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += cantidad
	return nil
}

func (r *stubProductoRepo) UpdatePreciosTx(_ *gorm.DB, id uuid.UUID, costo, venta, ajuste decimal.Decimal) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.PrecioCompra = costo
	p.PrecioVenta = venta
	p.AjusteProducto = ajuste
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── ProveedorRepository ──────────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo() *stubProveedorRepo {
	return &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
}

func (r *stubProveedorRepo) add(p *model.Proveedor) *model.Proveedor {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return p
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	r.add(p)
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) FindByNombre(_ context.Context, nombre string) (*model.Proveedor, error) {
	for _, p := range r.proveedores {
		if p.Nombre == nombre {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProveedorRepo) FindByNIT(_ context.Context, nit string) (*model.Proveedor, error) {
	for _, p := range r.proveedores {
		if p.NIT == nit {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProveedorRepo) List(_ context.Context, soloActivos bool) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if soloActivos && !p.Activo {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) SetActivo(_ context.Context, id uuid.UUID, activo bool) error {
	p, ok := r.proveedores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = activo
	return nil
}

func (r *stubProveedorRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Proveedor, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProveedorRepo) UpdateTx(_ *gorm.DB, p *model.Proveedor) error {
	return r.Update(context.Background(), p)
}

func (r *stubProveedorRepo) DB() *gorm.DB { return nil }

var _ repository.ProveedorRepository = (*stubProveedorRepo)(nil)

// ── ClienteRepository ────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
}

func (r *stubClienteRepo) add(c *model.Cliente) *model.Cliente {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return c
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	r.add(c)
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) FindByCedula(_ context.Context, cedula string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Cedula == cedula {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context, soloActivos bool) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if soloActivos && !c.Activo {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Cliente, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubClienteRepo) UpdateTx(_ *gorm.DB, c *model.Cliente) error {
	return r.Update(context.Background(), c)
}

func (r *stubClienteRepo) DB() *gorm.DB { return nil }

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── CajaRepository ───────────────────────────────────────────────────────────

type stubCajaRepo struct {
	cajas map[uuid.UUID]*model.Caja
}

func newStubCajaRepo() *stubCajaRepo {
	return &stubCajaRepo{cajas: make(map[uuid.UUID]*model.Caja)}
}

func (r *stubCajaRepo) Create(_ context.Context, c *model.Caja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cajas[c.ID] = c
	return nil
}

func (r *stubCajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCajaRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubCajaRepo) FindAbierta(_ context.Context) (*model.Caja, error) {
	for _, c := range r.cajas {
		if c.EstaAbierta() {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCajaRepo) Update(_ context.Context, c *model.Caja) error {
	r.cajas[c.ID] = c
	return nil
}

func (r *stubCajaRepo) List(_ context.Context) ([]model.Caja, error) {
	var out []model.Caja
	for _, c := range r.cajas {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCajaRepo) DB() *gorm.DB { return nil }

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

// ── VentaRepository ──────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas     map[uuid.UUID]*model.Venta
	nextTicket int
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := *v
	return &c, nil
}

func (r *stubVentaRepo) MarcarAnuladaTx(_ *gorm.DB, id uuid.UUID) (int64, error) {
	v, ok := r.ventas[id]
	if !ok || v.Estado != model.VentaCompletada {
		return 0, nil
	}
	v.Estado = model.VentaAnulada
	return 1, nil
}

func (r *stubVentaRepo) NextTicketNumber(_ *gorm.DB) (int, error) {
	r.nextTicket++
	return r.nextTicket, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "all" && filter.Estado != "" && v.Estado != filter.Estado {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ResumenPorCaja(_ context.Context, cajaID uuid.UUID) (*repository.ResumenCaja, error) {
	res := &repository.ResumenCaja{
		TotalVentas:   decimal.Zero,
		TotalEfectivo: decimal.Zero,
	}
	for _, v := range r.ventas {
		if v.CajaID != cajaID || v.Estado != model.VentaCompletada {
			continue
		}
		res.CantidadVentas++
		res.TotalVentas = res.TotalVentas.Add(v.Total)
		if v.MetodoPago == model.MetodoEfectivo {
			res.TotalEfectivo = res.TotalEfectivo.Add(v.Total)
		}
	}
	return res, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── CompraRepository ─────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras map[uuid.UUID]*model.Compra
}

func newStubCompraRepo() *stubCompraRepo {
	return &stubCompraRepo{compras: make(map[uuid.UUID]*model.Compra)}
}

func (r *stubCompraRepo) CreateTx(_ *gorm.DB, c *model.Compra) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.compras[c.ID] = c
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCompraRepo) List(_ context.Context, _ dto.CompraFilter) ([]model.Compra, int64, error) {
	var out []model.Compra
	for _, c := range r.compras {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

// ── UsuarioRepository ────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) add(u *model.Usuario) *model.Usuario {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return u
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	r.add(u)
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── HistorialPrecioRepository ────────────────────────────────────────────────

type stubHistorialRepo struct {
	historial []model.HistorialPrecio
}

func newStubHistorialRepo() *stubHistorialRepo { return &stubHistorialRepo{} }

func (r *stubHistorialRepo) CreateTx(_ *gorm.DB, h *model.HistorialPrecio) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	h.CreatedAt = time.Now()
	r.historial = append(r.historial, *h)
	return nil
}

func (r *stubHistorialRepo) ListByProducto(_ context.Context, productoID uuid.UUID) ([]model.HistorialPrecio, error) {
	var out []model.HistorialPrecio
	for _, h := range r.historial {
		if h.ProductoID == productoID {
			out = append(out, h)
		}
	}
	return out, nil
}

var _ repository.HistorialPrecioRepository = (*stubHistorialRepo)(nil)

// ── NotificacionRepository ───────────────────────────────────────────────────

type stubNotificacionRepo struct {
	notificaciones map[uuid.UUID]*model.Notificacion
}

func newStubNotificacionRepo() *stubNotificacionRepo {
	return &stubNotificacionRepo{notificaciones: make(map[uuid.UUID]*model.Notificacion)}
}

func (r *stubNotificacionRepo) Create(_ context.Context, n *model.Notificacion) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now()
	r.notificaciones[n.ID] = n
	return nil
}

func (r *stubNotificacionRepo) ListNoLeidas(_ context.Context) ([]model.Notificacion, error) {
	var out []model.Notificacion
	for _, n := range r.notificaciones {
		if !n.Leida {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNotificacionRepo) MarcarLeida(_ context.Context, id uuid.UUID) error {
	n, ok := r.notificaciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.Leida = true
	return nil
}

func (r *stubNotificacionRepo) ExisteNoLeida(_ context.Context, productoID uuid.UUID) (bool, error) {
	for _, n := range r.notificaciones {
		if n.ProductoID == productoID && !n.Leida {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.NotificacionRepository = (*stubNotificacionRepo)(nil)
