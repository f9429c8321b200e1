// internal/domain/checkout/form.go
package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ShippingInfo carries the customer's shipping address and contact.
// Every field is required after trimming. Fields are declared in the
// order the form presents them; validation reports the first failure.
type ShippingInfo struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state" validate:"required"`
	Zip       string `json:"zip" validate:"required"`
}

// ShippingMethod is one tier of the fixed shipping options.
type ShippingMethod struct {
	Cost decimal.Decimal `json:"cost"`
}

// PaymentMethod selects how the order is paid.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentCard           PaymentMethod = "card"
)

// CardDetails are the card fields collected when paying by card. They
// are write-only: validated, reduced to a masked last-4, and discarded.
type CardDetails struct {
	Name   string `json:"name" validate:"required"`
	Number string `json:"number" validate:"required,cardnumber"`
	Expiry string `json:"expiry" validate:"required,cardexpiry"`
	CVV    string `json:"cvv" validate:"required,cvv"`
}

// Form is one checkout submission as collected from the user. A nil
// ShippingMethod or empty Payment means the corresponding control was
// never selected.
type Form struct {
	Shipping       ShippingInfo    `json:"shipping"`
	ShippingMethod *ShippingMethod `json:"shipping_method"`
	Payment        PaymentMethod   `json:"payment"`
	Card           *CardDetails    `json:"card,omitempty"`
	TermsAccepted  bool            `json:"terms_accepted"`
}

// FormData is the typed record an accepted submission produces. Raw
// card data never survives validation; CardLast4 is the only remnant.
type FormData struct {
	Shipping     ShippingInfo
	ShippingCost decimal.Decimal
	Payment      PaymentMethod
	CardLast4    string
}

// FieldError scopes a validation failure to a single form field. Field
// names match the form's control names so the presentation layer can
// attach the message to (and focus) the offending control. Validation
// returns at most one FieldError per attempt, so re-validating a
// corrected form never stacks messages.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("checkout: %s: %s", e.Field, e.Message)
}
