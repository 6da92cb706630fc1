package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"napos/internal/domainerr"
	"napos/internal/dto"
	"napos/internal/model"
	"napos/internal/repository"

	"gorm.io/gorm"
)

// CajaService manages the cash-drawer session lifecycle: at most one caja
// abierta at a time, and closing is one-way.
type CajaService interface {
	Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*dto.CajaResponse, error)
	Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error)
	Abierta(ctx context.Context) (*dto.CajaResponse, error)
	Listar(ctx context.Context) ([]dto.CajaResponse, error)
}

type cajaService struct {
	repo      repository.CajaRepository
	ventaRepo repository.VentaRepository
	now       func() time.Time
}

func NewCajaService(repo repository.CajaRepository, ventaRepo repository.VentaRepository) CajaService {
	return &cajaService{repo: repo, ventaRepo: ventaRepo, now: time.Now}
}

func (s *cajaService) Abrir(ctx context.Context, req dto.AbrirCajaRequest) (*dto.CajaResponse, error) {
	if req.MontoInicial.IsNegative() {
		return nil, domainerr.Wrap(domainerr.ErrMontoInvalido, "monto inicial negativo")
	}

	if _, err := s.repo.FindAbierta(ctx); err == nil {
		return nil, domainerr.ErrCajaYaAbierta
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("verificando caja abierta: %w", err)
	}

	caja := &model.Caja{
		FechaApertura: s.now(),
		MontoInicial:  req.MontoInicial,
		Estado:        model.CajaAbierta,
	}
	if err := s.repo.Create(ctx, caja); err != nil {
		// Two simultaneous opens race past the pre-check; the partial
		// unique index on cajas(estado) rejects the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domainerr.ErrCajaYaAbierta
		}
		return nil, err
	}
	return cajaToResponse(caja), nil
}

func (s *cajaService) Cerrar(ctx context.Context, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error) {
	caja, err := s.repo.FindAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerr.ErrCajaNoAbierta
	}
	if err != nil {
		return nil, fmt.Errorf("buscando caja abierta: %w", err)
	}

	if err := caja.Cerrar(req.MontoFinal, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, caja); err != nil {
		return nil, err
	}

	resumen, err := s.ventaRepo.ResumenPorCaja(ctx, caja.ID)
	if err != nil {
		return nil, fmt.Errorf("calculando resumen de caja: %w", err)
	}

	return &dto.CierreCajaResponse{
		Caja:             *cajaToResponse(caja),
		CantidadVentas:   resumen.CantidadVentas,
		TotalVentas:      resumen.TotalVentas,
		EfectivoEsperado: caja.MontoInicial.Add(resumen.TotalEfectivo),
	}, nil
}

func (s *cajaService) Abierta(ctx context.Context) (*dto.CajaResponse, error) {
	caja, err := s.repo.FindAbierta(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerr.ErrCajaNoAbierta
	}
	if err != nil {
		return nil, err
	}
	return cajaToResponse(caja), nil
}

func (s *cajaService) Listar(ctx context.Context) ([]dto.CajaResponse, error) {
	cajas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CajaResponse, 0, len(cajas))
	for i := range cajas {
		out = append(out, *cajaToResponse(&cajas[i]))
	}
	return out, nil
}

func cajaToResponse(c *model.Caja) *dto.CajaResponse {
	resp := &dto.CajaResponse{
		ID:            c.ID.String(),
		FechaApertura: c.FechaApertura.Format(time.RFC3339),
		MontoInicial:  c.MontoInicial,
		MontoFinal:    c.MontoFinal,
		Estado:        c.Estado,
	}
	if c.FechaCierre != nil {
		cierre := c.FechaCierre.Format(time.RFC3339)
		resp.FechaCierre = &cierre
	}
	return resp
}
