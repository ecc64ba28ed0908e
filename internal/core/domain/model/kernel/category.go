package kernel

import (
	"fmt"

	"repair/internal/pkg/errs"
)

// Category is the kind of item handed in. Orders carry one and pickup points
// advertise which ones they accept.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryTech
	CategoryClothes
	CategoryShoes
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		CategoryUnknown: "unknown",
		CategoryTech:    "tech",
		CategoryClothes: "clothes",
		CategoryShoes:   "shoes",
	}
}

// ParseCategory converts a wire/storage name into a Category.
func ParseCategory(s string) (Category, error) {
	for c, name := range getCategoryStrings() {
		if c != CategoryUnknown && name == s {
			return c, nil
		}
	}
	return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a known category", s))
}

func (c Category) Validate() error {
	if c <= CategoryUnknown || c > CategoryShoes {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

func (c Category) String() string {
	if s, ok := getCategoryStrings()[c]; ok {
		return s
	}
	return "unknown"
}
