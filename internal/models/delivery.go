package models

import "time"

// TimestampLayout is the format of the Fecha column.
const TimestampLayout = "2006-01-02 15:04:05"

// Delivery worksheet header, in column order.
var DeliveryHeader = []string{
	"Fecha", "Nombre", "Producto", "Codigo", "Telefono", "Direccion",
	"Monto", "Pago", "Estado", "Observaciones", "ReferidoPor",
}

// 1-based column indexes in the delivery worksheet.
const (
	DeliveryCodeColumn   = 4
	PaymentStatusColumn  = 8
	DeliveryStatusColumn = 9
)

const (
	PaymentPaid    = "Pagado"
	PaymentPending = "Pendiente"

	DeliveryToDispatch = "Por despachar"
	DeliveryDelivered  = "Entregado"
	DeliveryEnRoute    = "En ruta"
)

// Delivery is one row of the delivery worksheet.
type Delivery struct {
	Timestamp      time.Time
	Name           string
	Product        string
	Code           string
	Phone          string
	Address        string
	Amount         string
	PaymentStatus  string
	DeliveryStatus string
	Notes          string
	ReferredBy     string
}

// Row returns the delivery as worksheet values in DeliveryHeader order.
func (d Delivery) Row() []any {
	return []any{
		d.Timestamp.Format(TimestampLayout),
		d.Name,
		d.Product,
		d.Code,
		d.Phone,
		d.Address,
		d.Amount,
		d.PaymentStatus,
		d.DeliveryStatus,
		d.Notes,
		d.ReferredBy,
	}
}

// PaymentLabel returns the payment status written for paid.
func PaymentLabel(paid bool) string {
	if paid {
		return PaymentPaid
	}
	return PaymentPending
}

// DeliveryLabel returns the delivery status written for delivered.
func DeliveryLabel(delivered bool) string {
	if delivered {
		return DeliveryDelivered
	}
	return DeliveryEnRoute
}

// DeliveryEvent describes one write to the delivery worksheet.
type DeliveryEvent struct {
	Kind  string
	Code  string
	Value string
	At    time.Time
}

const (
	EventRegistered     = "registered"
	EventPaymentStatus  = "payment_status"
	EventDeliveryStatus = "delivery_status"
)
