package recepcion

import (
	"context"
	"fmt"

	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
)

// TicketPDFGenerator puerto de salida para renderizar el ticket de ingreso
// interno. El adaptador concreto vive en infrastructure/pdf.
type TicketPDFGenerator interface {
	GenerarTicketPDF(
		ctx context.Context,
		recepcion *entity.Recepcion,
		empresa *entity.Empresa,
		analisis *entity.Laboratorio,
	) ([]byte, error)
}

// PDFUseCase genera el PDF del ticket de ingreso interno de una recepción.
// Sólo se permite si el ticket ya fue emitido.
type PDFUseCase struct {
	recepciones  repository.RecepcionRepository
	empresas     repository.EmpresaRepository
	laboratorios repository.LaboratorioRepository
	generator    TicketPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	recepciones repository.RecepcionRepository,
	empresas repository.EmpresaRepository,
	laboratorios repository.LaboratorioRepository,
	generator TicketPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		recepciones:  recepciones,
		empresas:     empresas,
		laboratorios: laboratorios,
		generator:    generator,
	}
}

// DescargarTicketPDF recupera recepción, empresa y análisis (si existe) y
// genera el PDF con el código de barras del ticket.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la recepción no existe.
//   - domain.ErrSinTicket       si la recepción aún no tiene ticket emitido.
func (uc *PDFUseCase) DescargarTicketPDF(ctx context.Context, empresaID, recepcionID int64) (pdfBytes []byte, filename string, err error) {
	r, err := uc.recepciones.GetByID(empresaID, recepcionID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener recepción: %w", err)
	}
	if r == nil {
		return nil, "", domain.ErrNotFound
	}
	if !r.TieneTicket() {
		return nil, "", domain.ErrSinTicket
	}

	empresa, err := uc.empresas.GetByID(empresaID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if empresa == nil {
		return nil, "", domain.ErrNotFound
	}

	// El análisis es opcional: el ticket sale igual sin laboratorio.
	analisis, err := uc.laboratorios.GetByRecepcion(recepcionID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener análisis: %w", err)
	}

	pdfBytes, err = uc.generator.GenerarTicketPDF(ctx, r, empresa, analisis)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return pdfBytes, fmt.Sprintf("ticket_%s.pdf", r.TicketCodigo), nil
}
