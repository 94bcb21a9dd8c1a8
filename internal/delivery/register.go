// Package delivery appends delivery orders to the delivery worksheet and
// updates their payment and delivery status.
package delivery

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/matthieukhl/sheetstock/internal/apperr"
	"github.com/matthieukhl/sheetstock/internal/models"
	"github.com/matthieukhl/sheetstock/internal/spreadsheet"
)

// Journal receives a copy of every successful write.
type Journal interface {
	Record(ctx context.Context, ev models.DeliveryEvent) error
}

type Register struct {
	source     spreadsheet.Source
	documentID string
	worksheet  string
	now        func() time.Time
	journal    Journal
	log        zerolog.Logger
}

type Option func(*Register)

// WithClock overrides the time source used for the Fecha column.
func WithClock(now func() time.Time) Option {
	return func(r *Register) { r.now = now }
}

// WithJournal mirrors writes to j. Journal failures are logged only.
func WithJournal(j Journal) Option {
	return func(r *Register) { r.journal = j }
}

func NewRegister(source spreadsheet.Source, documentID, worksheet string, log zerolog.Logger, opts ...Option) *Register {
	r := &Register{
		source:     source,
		documentID: documentID,
		worksheet:  worksheet,
		now:        time.Now,
		log:        log.With().Str("component", "delivery").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Register) upstream(err error, msg string) error {
	r.log.Error().Err(err).
		Str("document", r.documentID).
		Str("worksheet", r.worksheet).
		Msg(msg)
	return apperr.Upstream(msg, err)
}

func (r *Register) record(ctx context.Context, ev models.DeliveryEvent) {
	if r.journal == nil {
		return
	}
	if err := r.journal.Record(ctx, ev); err != nil {
		r.log.Warn().Err(err).Str("kind", ev.Kind).Str("code", ev.Code).Msg("failed to journal delivery event")
	}
}

func orDefault(v *Text, def string) string {
	if v == nil {
		return def
	}
	return v.String()
}

// Build turns a request into the delivery row written at t.
func Build(req *Request, t time.Time) models.Delivery {
	return models.Delivery{
		Timestamp:      t,
		Name:           req.Name.String(),
		Product:        req.Product.String(),
		Code:           req.Code.String(),
		Phone:          req.Phone.String(),
		Address:        req.Address.String(),
		Amount:         req.Amount.String(),
		PaymentStatus:  orDefault(req.Payment, models.PaymentPending),
		DeliveryStatus: orDefault(req.Status, models.DeliveryToDispatch),
		Notes:          req.Notes.String(),
		ReferredBy:     req.ReferredBy.String(),
	}
}

// RegisterDelivery appends a delivery row stamped with the server's local time.
// The worksheet is created with its header row when missing.
func (r *Register) RegisterDelivery(ctx context.Context, req *Request) (*models.Delivery, error) {
	if err := r.source.EnsureWorksheet(ctx, r.documentID, r.worksheet, models.DeliveryHeader); err != nil {
		return nil, r.upstream(err, "Error al abrir la hoja de entregas")
	}

	d := Build(req, r.now())
	if err := r.source.AppendRecord(ctx, r.documentID, r.worksheet, d.Row()); err != nil {
		return nil, r.upstream(err, "Error al registrar la entrega")
	}

	r.log.Info().Str("code", d.Code).Str("product", d.Product).Msg("delivery registered")
	r.record(ctx, models.DeliveryEvent{Kind: models.EventRegistered, Code: d.Code, Value: d.Amount, At: d.Timestamp})
	return &d, nil
}

// RegisterConfirmation validates a confirmation payload and registers it.
func (r *Register) RegisterConfirmation(ctx context.Context, body []byte) (*models.Delivery, error) {
	req, err := ParseRequest(body, ConfirmationFields...)
	if err != nil {
		return nil, err
	}
	return r.RegisterDelivery(ctx, req)
}

// SetPaymentStatus writes Pagado or Pendiente on the first row with code.
func (r *Register) SetPaymentStatus(ctx context.Context, code string, paid bool) error {
	return r.setStatus(ctx, code, models.PaymentStatusColumn, models.PaymentLabel(paid), models.EventPaymentStatus)
}

// SetDeliveryStatus writes Entregado or En ruta on the first row with code.
func (r *Register) SetDeliveryStatus(ctx context.Context, code string, delivered bool) error {
	return r.setStatus(ctx, code, models.DeliveryStatusColumn, models.DeliveryLabel(delivered), models.EventDeliveryStatus)
}

func (r *Register) setStatus(ctx context.Context, code string, column int, value, kind string) error {
	if code == "" {
		return apperr.Validation("Falta el código de la entrega")
	}
	if err := r.source.EnsureWorksheet(ctx, r.documentID, r.worksheet, models.DeliveryHeader); err != nil {
		return r.upstream(err, "Error al abrir la hoja de entregas")
	}

	err := r.source.UpdateCellByKey(ctx, r.documentID, r.worksheet, models.DeliveryCodeColumn, code, column, value)
	if errors.Is(err, spreadsheet.ErrKeyNotFound) {
		return apperr.New(apperr.KindNotFound, "Código no encontrado en Entregas", err)
	}
	if err != nil {
		return r.upstream(err, "Error al actualizar la entrega")
	}

	r.log.Info().Str("code", code).Str("status", value).Msg("delivery status updated")
	r.record(ctx, models.DeliveryEvent{Kind: kind, Code: code, Value: value, At: r.now()})
	return nil
}
