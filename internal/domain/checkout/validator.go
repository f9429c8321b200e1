// internal/domain/checkout/validator.go
package checkout

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrEmptyCart rejects a submission made against an empty cart. It is
// a whole-form failure, not a field failure.
var ErrEmptyCart = errors.New("checkout: cart is empty")

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^\+?\d{7,15}$`)
	phoneStripPattern = regexp.MustCompile(`[\s()-]`)
	cardCharsPattern  = regexp.MustCompile(`^[\d ]+$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
	expiryPattern     = regexp.MustCompile(`^(\d{2})/(\d{2}|\d{4})$`)
)

// shippingFields maps ShippingInfo struct fields to the form control
// name and the message shown when the field is blank. Order follows the
// struct declaration, which is the order the form presents them.
var shippingFields = map[string]struct {
	key     string
	message string
}{
	"FirstName": {"fname", "First name is required"},
	"LastName":  {"lname", "Last name is required"},
	"Email":     {"email", "Email is required"},
	"Phone":     {"phone", "Phone is required"},
	"Address":   {"address", "Address is required"},
	"City":      {"city", "City is required"},
	"State":     {"state", "State is required"},
	"Zip":       {"zip", "ZIP code is required"},
}

var cardFields = map[string]struct {
	key      string
	required string
	invalid  string
}{
	"Name":   {"card-name", "Name on card is required", ""},
	"Number": {"card-number", "Card number is required", "Card number is invalid"},
	"Expiry": {"card-expiry", "Expiry date is required", "Card is expired or expiry is invalid"},
	"CVV":    {"card-cvv", "CVV is required", "CVV must be 3 or 4 digits"},
}

// Validator checks checkout submissions. Checks run in presentation
// order and stop at the first failure, so the caller always gets the
// single error closest to the top of the form.
type Validator struct {
	validate *validator.Validate

	// Now is the clock used for expiry checks. Tests pin it.
	Now func() time.Time
}

// NewValidator builds a Validator with the card rules registered.
func NewValidator() *Validator {
	v := &Validator{
		validate: validator.New(),
		Now:      time.Now,
	}
	v.validate.RegisterValidation("cardnumber", func(fl validator.FieldLevel) bool {
		return validCardNumber(fl.Field().String())
	})
	v.validate.RegisterValidation("cardexpiry", func(fl validator.FieldLevel) bool {
		return validExpiry(fl.Field().String(), v.Now())
	})
	v.validate.RegisterValidation("cvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate runs the ordered checks against one submission. itemCount is
// the number of cart lines the submission is paying for. On success it
// returns the typed form data with card fields reduced to a masked
// last-4; on failure it returns ErrEmptyCart or a single *FieldError.
func (v *Validator) Validate(form *Form, itemCount int) (*FormData, error) {
	if itemCount == 0 {
		return nil, ErrEmptyCart
	}

	shipping := trimShipping(form.Shipping)
	if err := v.checkShipping(&shipping); err != nil {
		return nil, err
	}

	if !emailPattern.MatchString(shipping.Email) {
		return nil, &FieldError{Field: "email", Message: "Enter a valid email address"}
	}

	phone := phoneStripPattern.ReplaceAllString(shipping.Phone, "")
	if !phonePattern.MatchString(phone) {
		return nil, &FieldError{Field: "phone", Message: "Enter a valid phone number"}
	}

	if form.ShippingMethod == nil {
		return nil, &FieldError{Field: "shipping", Message: "Select a shipping method"}
	}
	if form.ShippingMethod.Cost.IsNegative() {
		return nil, &FieldError{Field: "shipping", Message: "Select a shipping method"}
	}

	switch form.Payment {
	case PaymentCashOnDelivery, PaymentCard:
	case "":
		return nil, &FieldError{Field: "payment", Message: "Select a payment method"}
	default:
		return nil, &FieldError{Field: "payment", Message: "Select a payment method"}
	}

	var cardLast4 string
	if form.Payment == PaymentCard {
		if form.Card == nil {
			return nil, &FieldError{Field: "card-name", Message: cardFields["Name"].required}
		}
		card := trimCard(*form.Card)
		if err := v.checkCard(&card); err != nil {
			return nil, err
		}
		digits := strings.ReplaceAll(card.Number, " ", "")
		cardLast4 = digits[len(digits)-4:]
	}

	if !form.TermsAccepted {
		return nil, &FieldError{Field: "terms", Message: "You must accept the terms and conditions"}
	}

	return &FormData{
		Shipping:     shipping,
		ShippingCost: form.ShippingMethod.Cost,
		Payment:      form.Payment,
		CardLast4:    cardLast4,
	}, nil
}

func (v *Validator) checkShipping(info *ShippingInfo) error {
	err := v.validate.Struct(info)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	field := shippingFields[verrs[0].StructField()]
	return &FieldError{Field: field.key, Message: field.message}
}

func (v *Validator) checkCard(card *CardDetails) error {
	err := v.validate.Struct(card)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	field := cardFields[first.StructField()]
	if first.Tag() == "required" {
		return &FieldError{Field: field.key, Message: field.required}
	}
	return &FieldError{Field: field.key, Message: field.invalid}
}

func trimShipping(info ShippingInfo) ShippingInfo {
	info.FirstName = strings.TrimSpace(info.FirstName)
	info.LastName = strings.TrimSpace(info.LastName)
	info.Email = strings.TrimSpace(info.Email)
	info.Phone = strings.TrimSpace(info.Phone)
	info.Address = strings.TrimSpace(info.Address)
	info.City = strings.TrimSpace(info.City)
	info.State = strings.TrimSpace(info.State)
	info.Zip = strings.TrimSpace(info.Zip)
	return info
}

func trimCard(card CardDetails) CardDetails {
	card.Name = strings.TrimSpace(card.Name)
	card.Number = strings.TrimSpace(card.Number)
	card.Expiry = strings.TrimSpace(card.Expiry)
	card.CVV = strings.TrimSpace(card.CVV)
	return card
}

// validCardNumber accepts digits and spaces whose digit string passes
// the Luhn checksum.
func validCardNumber(raw string) bool {
	if !cardCharsPattern.MatchString(raw) {
		return false
	}
	digits := strings.ReplaceAll(raw, " ", "")
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// validExpiry accepts MM/YY or MM/YYYY dates whose month has not yet
// ended relative to now. A card expiring 06/24 is valid through the
// last instant of June 2024.
func validExpiry(raw string, now time.Time) bool {
	m := expiryPattern.FindStringSubmatch(raw)
	if m == nil {
		return false
	}
	month := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	if month < 1 || month > 12 {
		return false
	}
	year := 0
	for _, c := range m[2] {
		year = year*10 + int(c-'0')
	}
	if year < 100 {
		year += 2000
	}
	endOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return endOfMonth.After(now)
}
