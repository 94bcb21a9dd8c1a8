package delivery

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/sheetstock/internal/apperr"
	"github.com/matthieukhl/sheetstock/internal/models"
	"github.com/matthieukhl/sheetstock/internal/spreadsheet"
)

const (
	testDoc   = "entregas-doc"
	testSheet = "Entregas"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

type recordingJournal struct {
	events []models.DeliveryEvent
	err    error
}

func (j *recordingJournal) Record(ctx context.Context, ev models.DeliveryEvent) error {
	j.events = append(j.events, ev)
	return j.err
}

func newTestRegister(t *testing.T, opts ...Option) (*Register, *spreadsheet.MemorySource) {
	t.Helper()
	src := spreadsheet.NewMemorySource()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewRegister(src, testDoc, testSheet, zerolog.Nop(), opts...), src
}

func TestRegisterDeliveryCreatesWorksheetAndDefaults(t *testing.T) {
	reg, src := newTestRegister(t)

	req, err := ParseRequest([]byte(`{"nombre":"Ana","producto":"Cono","codigo":"P-1","monto":12000}`))
	require.NoError(t, err)

	d, err := reg.RegisterDelivery(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, d.PaymentStatus)
	assert.Equal(t, models.DeliveryToDispatch, d.DeliveryStatus)

	rows := src.Rows(testDoc, testSheet)
	require.Len(t, rows, 2)
	assert.Equal(t, models.DeliveryHeader, rows[0])
	assert.Equal(t, []string{
		"2024-03-09 14:05:07", "Ana", "Cono", "P-1", "", "", "12000",
		"Pendiente", "Por despachar", "", "",
	}, rows[1])
}

func TestRegisterDeliveryTimestampFormat(t *testing.T) {
	src := spreadsheet.NewMemorySource()
	reg := NewRegister(src, testDoc, testSheet, zerolog.Nop())

	_, err := reg.RegisterDelivery(context.Background(), &Request{Code: "X"})
	require.NoError(t, err)

	rows := src.Rows(testDoc, testSheet)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`), rows[1][0])
}

func TestRegisterDeliveryKeepsExplicitStatus(t *testing.T) {
	reg, src := newTestRegister(t)

	req, err := ParseRequest([]byte(`{"codigo":"P-2","pago":"Pagado","estado":"","referido_por":"Luis"}`))
	require.NoError(t, err)
	_, err = reg.RegisterDelivery(context.Background(), req)
	require.NoError(t, err)

	row := src.Rows(testDoc, testSheet)[1]
	assert.Equal(t, "Pagado", row[7])
	assert.Equal(t, "", row[8])
	assert.Equal(t, "Luis", row[10])
}

func TestRegisterDeliveryUpstreamFailure(t *testing.T) {
	reg, src := newTestRegister(t)
	src.Fail(errors.New("permission denied"))

	_, err := reg.RegisterDelivery(context.Background(), &Request{Code: "P-1"})
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
}

func TestRegisterConfirmation(t *testing.T) {
	reg, src := newTestRegister(t)
	ctx := context.Background()

	_, err := reg.RegisterConfirmation(ctx, []byte(`{"nombre":"Ana","telefono":"300"}`))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = reg.RegisterConfirmation(ctx, []byte(`{not json`))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	body := `{"nombre":"Ana","telefono":"300","direccion":"Calle 1","monto":"9000","producto":"Copa","codigo":"P-9"}`
	d, err := reg.RegisterConfirmation(ctx, []byte(body))
	require.NoError(t, err)
	assert.Equal(t, "P-9", d.Code)
	assert.Len(t, src.Rows(testDoc, testSheet), 2)
}

func seedDeliveries(t *testing.T, reg *Register, codes ...string) {
	t.Helper()
	for _, c := range codes {
		_, err := reg.RegisterDelivery(context.Background(), &Request{Code: Text(c)})
		require.NoError(t, err)
	}
}

func TestSetPaymentStatus(t *testing.T) {
	journal := &recordingJournal{}
	reg, src := newTestRegister(t, WithJournal(journal))
	seedDeliveries(t, reg, "P-1", "P-2", "P-2")
	ctx := context.Background()

	require.NoError(t, reg.SetPaymentStatus(ctx, "P-2", true))
	rows := src.Rows(testDoc, testSheet)
	assert.Equal(t, "Pendiente", rows[1][7])
	assert.Equal(t, "Pagado", rows[2][7])
	assert.Equal(t, "Pendiente", rows[3][7], "only the first match is updated")

	require.NoError(t, reg.SetPaymentStatus(ctx, "P-2", false))
	assert.Equal(t, "Pendiente", src.Rows(testDoc, testSheet)[2][7])

	last := journal.events[len(journal.events)-1]
	assert.Equal(t, models.EventPaymentStatus, last.Kind)
	assert.Equal(t, "Pendiente", last.Value)
}

func TestSetDeliveryStatus(t *testing.T) {
	reg, src := newTestRegister(t)
	seedDeliveries(t, reg, "P-1")
	ctx := context.Background()

	require.NoError(t, reg.SetDeliveryStatus(ctx, "P-1", true))
	assert.Equal(t, "Entregado", src.Rows(testDoc, testSheet)[1][8])

	require.NoError(t, reg.SetDeliveryStatus(ctx, "P-1", false))
	assert.Equal(t, "En ruta", src.Rows(testDoc, testSheet)[1][8])
}

func TestSetStatusUnknownCodeFails(t *testing.T) {
	reg, _ := newTestRegister(t)
	seedDeliveries(t, reg, "P-1")
	ctx := context.Background()

	err := reg.SetPaymentStatus(ctx, "p-1", true)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "codes match case-sensitively")

	err = reg.SetDeliveryStatus(ctx, "NOPE", true)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	err = reg.SetDeliveryStatus(ctx, "", true)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestJournalFailureDoesNotFailWrite(t *testing.T) {
	journal := &recordingJournal{err: errors.New("db down")}
	reg, _ := newTestRegister(t, WithJournal(journal))

	_, err := reg.RegisterDelivery(context.Background(), &Request{Code: "P-1"})
	require.NoError(t, err)
	require.Len(t, journal.events, 1)
	assert.Equal(t, models.EventRegistered, journal.events[0].Kind)
}
