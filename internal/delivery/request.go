package delivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matthieukhl/sheetstock/internal/apperr"
)

// ConfirmationFields must all be present in a confirmation payload.
var ConfirmationFields = []string{"nombre", "telefono", "direccion", "monto", "producto", "codigo"}

// Text accepts a JSON string, number, boolean or null and keeps its textual form.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{', '[':
		return fmt.Errorf("expected a scalar, got %s", data)
	default:
		*t = Text(data)
	}
	return nil
}

func (t Text) String() string {
	return strings.TrimSpace(string(t))
}

// Flag accepts booleans, numbers and strings. Strings that are not a
// recognizable boolean are true when non-empty.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	s := t.String()
	if b, err := strconv.ParseBool(s); err == nil {
		*f = Flag(b)
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		*f = n != 0
		return nil
	}
	*f = s != ""
	return nil
}

// Request is the payload of a delivery registration.
type Request struct {
	Name       Text  `json:"nombre"`
	Product    Text  `json:"producto"`
	Code       Text  `json:"codigo"`
	Phone      Text  `json:"telefono"`
	Address    Text  `json:"direccion"`
	Amount     Text  `json:"monto"`
	Payment    *Text `json:"pago"`
	Status     *Text `json:"estado"`
	Notes      Text  `json:"observaciones"`
	ReferredBy Text  `json:"referido_por"`
}

// StatusRequest is the payload of a payment or delivery status update.
type StatusRequest struct {
	Code      Text `json:"codigo"`
	Paid      Flag `json:"pagado"`
	Delivered Flag `json:"entregado"`
}

func invalidJSON(err error) error {
	return apperr.New(apperr.KindValidation, "JSON inválido", err)
}

// ParseRequest decodes a registration payload and checks that every required
// key is present. Presence is all that is checked; values may be empty.
func ParseRequest(body []byte, required ...string) (*Request, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, invalidJSON(err)
	}
	for _, k := range required {
		if _, ok := keys[k]; !ok {
			return nil, apperr.Validation("Faltan datos obligatorios para el registro.")
		}
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, invalidJSON(err)
	}
	return &req, nil
}

// ParseStatusRequest decodes a status update payload.
func ParseStatusRequest(body []byte) (*StatusRequest, error) {
	var req StatusRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, invalidJSON(err)
	}
	return &req, nil
}
