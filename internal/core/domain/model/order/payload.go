package order

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"repair/internal/pkg/errs"
)

// Field names a value a transition may carry.
type Field string

const (
	FieldProposedPrice      Field = "proposed_price"
	FieldPriceJustification Field = "price_justification"
	FieldFinalPrice         Field = "final_price"
)

// MaxPrice bounds every price field.
const MaxPrice = 10_000_000.0

// AllowedFields returns the fields a move to target may carry.
// Any other field in the payload is a validation error.
func AllowedFields(target Status) []Field {
	switch target { //nolint:exhaustive // every other edge carries nothing
	case StatusPriceProposed:
		return []Field{FieldProposedPrice, FieldPriceJustification}
	case StatusConfirmed:
		return []Field{FieldFinalPrice}
	default:
		return nil
	}
}

// Payload is the typed body of a transition request. It remembers every key
// the caller sent, known or not, so ValidateFor can enforce the allow-list
// instead of silently ignoring extras.
type Payload struct {
	proposedPrice      *float64
	priceJustification *string
	finalPrice         *float64
	present            []string
}

// EmptyPayload is the payload of edges that carry no data.
func EmptyPayload() Payload {
	return Payload{}
}

// NewPayload builds a Payload from decoded JSON-like values.
// Numbers must be float64 or int, text must be string.
//
// Example:
//
//	p, err := order.NewPayload(map[string]any{"proposed_price": 1500.0})
func NewPayload(fields map[string]any) (Payload, error) {
	p := Payload{present: make([]string, 0, len(fields))}
	var problems []error

	for name, raw := range fields {
		p.present = append(p.present, name)

		switch Field(name) {
		case FieldProposedPrice:
			v, err := asPrice(name, raw)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			p.proposedPrice = &v
		case FieldFinalPrice:
			v, err := asPrice(name, raw)
			if err != nil {
				problems = append(problems, err)
				continue
			}
			p.finalPrice = &v
		case FieldPriceJustification:
			s, ok := raw.(string)
			if !ok {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(name, errors.New("must be a string")))
				continue
			}
			s = strings.TrimSpace(s)
			p.priceJustification = &s
		}
	}
	sort.Strings(p.present)

	if err := errors.Join(problems...); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// ValidateFor checks the payload against the allow-list of target and its
// required fields.
func (p Payload) ValidateFor(target Status) error {
	allowed := AllowedFields(target)
	var problems []error
	for _, name := range p.present {
		if !slices.Contains(allowed, Field(name)) {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				name, fmt.Errorf("field is not accepted when moving to %s", target)))
		}
	}

	if target == StatusPriceProposed && p.proposedPrice == nil {
		problems = append(problems, errs.NewValueIsRequiredError(string(FieldProposedPrice)))
	}

	return errors.Join(problems...)
}

// Fields returns the sorted names the caller supplied.
func (p Payload) Fields() []string {
	return slices.Clone(p.present)
}

func (p Payload) ProposedPrice() *float64 { return p.proposedPrice }

func (p Payload) PriceJustification() *string { return p.priceJustification }

func (p Payload) FinalPrice() *float64 { return p.finalPrice }

func asPrice(name string, raw any) (float64, error) {
	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	default:
		return 0, errs.NewValueIsInvalidErrorWithCause(name, errors.New("must be a number"))
	}
	if err := ValidatePrice(name, v); err != nil {
		return 0, err
	}
	return v, nil
}

// ValidatePrice accepts finite prices in (0, MaxPrice].
func ValidatePrice(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > MaxPrice {
		return errs.NewValueIsOutOfRangeError(name, v, 0, MaxPrice)
	}
	return nil
}
