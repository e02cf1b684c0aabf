package enums

import "fmt"

// AdminTab is the catalog section selected on the admin catalog page.
type AdminTab string

const (
	AdminTabServices AdminTab = "services"
	AdminTabProducts AdminTab = "products"
)

var validAdminTabs = []AdminTab{
	AdminTabServices,
	AdminTabProducts,
}

// AdminTabs returns the tabs in display order.
func AdminTabs() []AdminTab {
	return append([]AdminTab(nil), validAdminTabs...)
}

// String implements fmt.Stringer.
func (t AdminTab) String() string {
	return string(t)
}

// IsValid reports whether the value is a known AdminTab.
func (t AdminTab) IsValid() bool {
	for _, candidate := range validAdminTabs {
		if candidate == t {
			return true
		}
	}
	return false
}

// Label returns the human readable tab title.
func (t AdminTab) Label() string {
	switch t {
	case AdminTabServices:
		return "Services"
	case AdminTabProducts:
		return "Products"
	}
	return string(t)
}

// ParseAdminTab converts raw input into an AdminTab.
func ParseAdminTab(value string) (AdminTab, error) {
	for _, candidate := range validAdminTabs {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin tab %q", value)
}
