// Package category represents the governed entity categories in the system.
// Branches, employees, departments and designations share one lifecycle:
// store-issued identifiers, company ownership stamped at creation, soft
// deletes, and per-company quotas.
package category

import "fmt"

// The set of governed entity categories.
var (
	Branch      = newCategory("BRANCH", "branch", "branches")
	Employee    = newCategory("EMPLOYEE", "employee", "employees")
	Department  = newCategory("DEPARTMENT", "department", "departments")
	Designation = newCategory("DESIGNATION", "designation", "designations")
)

// =============================================================================

// Set of known categories.
var categories = make(map[string]Category)

// Category represents a governed entity category in the system.
type Category struct {
	value    string
	singular string
	plural   string
}

func newCategory(value string, singular string, plural string) Category {
	c := Category{value, singular, plural}
	categories[value] = c
	return c
}

// String returns the name of the category.
func (c Category) String() string {
	return c.value
}

// Singular returns the human readable singular noun for the category.
func (c Category) Singular() string {
	return c.singular
}

// Plural returns the human readable plural noun for the category.
func (c Category) Plural() string {
	return c.plural
}

// Noun returns the singular or plural noun depending on the count.
func (c Category) Noun(count int) string {
	if count == 1 {
		return c.singular
	}

	return c.plural
}

// Equal provides support for the go-cmp package and testing.
func (c Category) Equal(c2 Category) bool {
	return c.value == c2.value
}

// MarshalText provides support for logging and any marshal needs.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// =============================================================================

// Parse parses the string value and returns a category if one exists.
func Parse(value string) (Category, error) {
	category, exists := categories[value]
	if !exists {
		return Category{}, fmt.Errorf("invalid category %q", value)
	}

	return category, nil
}

// MustParse parses the string value and returns a category if one exists. If
// an error occurs the function panics.
func MustParse(value string) Category {
	category, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return category
}
