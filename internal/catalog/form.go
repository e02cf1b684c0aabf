package catalog

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/storefront-admin/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FormData is the raw admin form payload; numeric fields stay text until parsed.
type FormData struct {
	Name          string `json:"name" validate:"required,max=200"`
	Description   string `json:"description" validate:"max=2000"`
	Price         string `json:"price" validate:"required"`
	Category      string `json:"category" validate:"required,max=100"`
	StockQuantity string `json:"stock_quantity"`
	ImageURL      string `json:"image_url" validate:"omitempty,url"`
	IsActive      *bool  `json:"is_active,omitempty"`
}

type ServiceInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	IsActive    *bool
}

type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	Category      string
	StockQuantity int
	ImageURL      *string
	IsActive      *bool
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ParseServiceForm validates form and converts it into a ServiceInput. Stock and image are ignored.
func ParseServiceForm(form FormData) (ServiceInput, error) {
	form = trimForm(form)
	details := validateForm(form)
	price, priceErr := parsePrice(form.Price)
	if priceErr != "" {
		details["price"] = priceErr
	}
	if len(details) > 0 {
		return ServiceInput{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return ServiceInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Category:    form.Category,
		IsActive:    form.IsActive,
	}, nil
}

func ParseProductForm(form FormData) (ProductInput, error) {
	form = trimForm(form)
	details := validateForm(form)
	price, priceErr := parsePrice(form.Price)
	if priceErr != "" {
		details["price"] = priceErr
	}
	stock, stockErr := parseStock(form.StockQuantity)
	if stockErr != "" {
		details["stock_quantity"] = stockErr
	}
	if len(details) > 0 {
		return ProductInput{}, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	input := ProductInput{
		Name:          form.Name,
		Description:   form.Description,
		Price:         price,
		Category:      form.Category,
		StockQuantity: stock,
		IsActive:      form.IsActive,
	}
	if form.ImageURL != "" {
		url := form.ImageURL
		input.ImageURL = &url
	}
	return input, nil
}

func trimForm(form FormData) FormData {
	form.Name = strings.TrimSpace(form.Name)
	form.Description = strings.TrimSpace(form.Description)
	form.Price = strings.TrimSpace(form.Price)
	form.Category = strings.TrimSpace(form.Category)
	form.StockQuantity = strings.TrimSpace(form.StockQuantity)
	form.ImageURL = strings.TrimSpace(form.ImageURL)
	return form
}

func validateForm(form FormData) map[string]string {
	details := map[string]string{}
	err := validate.Struct(form)
	if err == nil {
		return details
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		details["form"] = err.Error()
		return details
	}
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			details[fe.Field()] = "is required"
		case "max":
			details[fe.Field()] = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "url":
			details[fe.Field()] = "must be a valid url"
		default:
			details[fe.Field()] = "is invalid"
		}
	}
	return details
}

// parsePrice accepts a non-negative amount with at most two decimal places.
func parsePrice(raw string) (decimal.Decimal, string) {
	if raw == "" {
		return decimal.Zero, ""
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, "must be a number"
	}
	if price.IsNegative() {
		return decimal.Zero, "must not be negative"
	}
	if !price.Equal(price.Round(2)) {
		return decimal.Zero, "must have at most 2 decimal places"
	}
	return price.Round(2), ""
}

// parseStock treats an empty value as zero.
func parseStock(raw string) (int, string) {
	if raw == "" {
		return 0, ""
	}
	stock, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "must be a whole number"
	}
	if stock < 0 {
		return 0, "must not be negative"
	}
	return stock, ""
}
