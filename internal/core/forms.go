package core

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/catalog-admin/internal/catalog"
)

// ErrMalformedForm is returned when a product form body cannot be decoded.
var ErrMalformedForm = errors.New("malformed product form")

// ProductForm is the modal form shared by create and update.
// Every field arrives as text; conversion happens after validation.
type ProductForm struct {
	Title       string `json:"title" validate:"required,max=255"`
	Price       string `json:"price" validate:"required,price"`
	Description string `json:"description" validate:"max=5000"`
	CategoryID  string `json:"categoryId"`
	ImageURL    string `json:"imageUrl" validate:"omitempty,url"`
}

// FieldError is one failed form field.
type FieldError struct {
	Field string // json name of the field
	Tag   string // failed rule
}

func (f FieldError) String() string {
	switch f.Tag {
	case "required":
		return f.Field + " is required"
	case "price":
		return f.Field + " must be a non-negative number"
	case "url":
		return f.Field + " must be a valid URL"
	case "max":
		return f.Field + " is too long"
	default:
		return f.Field + " is invalid"
	}
}

// ValidationError lists every invalid field of a ProductForm.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Summary()
}

// Summary joins the field messages for display.
func (e *ValidationError) Summary() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// formValidator reports fields by their json names and knows the "price" rule.
type formValidator struct {
	validate *validator.Validate
}

func newFormValidator() *formValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && !d.IsNegative()
	})

	return &formValidator{validate: validate}
}

// updateFormFields are the fields an update sends; only these are checked on that path.
var updateFormFields = []string{"Title", "Price", "Description"}

// Check validates the whole form and returns a *ValidationError on failure.
func (v *formValidator) Check(form ProductForm) error {
	return v.result(v.validate.Struct(form))
}

// CheckUpdate validates only the fields an update sends. A prefilled image
// that is not a URL must not block editing the title or price.
func (v *formValidator) CheckUpdate(form ProductForm) error {
	return v.result(v.validate.StructPartial(form, updateFormFields...))
}

func (v *formValidator) result(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate form: %w", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

// wholePrice converts a validated price to the integer the catalog receives.
// Fractions are truncated toward zero.
func wholePrice(raw string) int64 {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return d.IntPart()
}

// categoryOrDefault parses the category id, falling back to the default
// category for blank, malformed or zero input.
func categoryOrDefault(raw string) int {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id == 0 {
		return catalog.DefaultCategoryID
	}
	return id
}

// UpdateFields builds the update payload. Category and image are not sent.
func (f ProductForm) UpdateFields() catalog.UpdateFields {
	return catalog.UpdateFields{
		Title:       f.Title,
		Price:       wholePrice(f.Price),
		Description: f.Description,
	}
}

// CreateFields builds the create payload with category and image defaults applied.
func (f ProductForm) CreateFields() catalog.CreateFields {
	image := strings.TrimSpace(f.ImageURL)
	if image == "" {
		image = catalog.DefaultCreateImage
	}
	return catalog.CreateFields{
		Title:       f.Title,
		Price:       wholePrice(f.Price),
		Description: f.Description,
		CategoryID:  categoryOrDefault(f.CategoryID),
		Images:      []string{image},
	}
}

// FormFromProduct prefills the edit form from a product.
func FormFromProduct(p catalog.Product) ProductForm {
	return ProductForm{
		Title:       p.Title,
		Price:       p.Price.String(),
		Description: p.Description,
		CategoryID:  strconv.Itoa(p.CategoryID()),
		ImageURL:    p.FirstImage(),
	}
}
