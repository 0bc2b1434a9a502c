package models

// Category classifies a Biller.
type Category string

const (
	CategoryUtility   Category = "Utility"
	CategoryCredit    Category = "Credit Card"
	CategoryInternet  Category = "Internet"
	CategoryRent      Category = "Rent"
	CategoryInsurance Category = "Insurance"
	CategoryWater     Category = "Water"
	CategoryGas       Category = "Gas"
	CategoryPhone     Category = "Phone"
	CategoryBankLoan  Category = "Bank Loan"
	CategoryOther     Category = "Other"
)

// Categories lists every known category in display order.
var Categories = []Category{
	CategoryUtility, CategoryCredit, CategoryInternet, CategoryRent, CategoryInsurance,
	CategoryWater, CategoryGas, CategoryPhone, CategoryBankLoan, CategoryOther,
}

// Valid reports whether c is empty (unset) or one of Categories.
func (c Category) Valid() bool {
	if c == "" {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Biller is an organization bills are owed to.
type Biller struct {
	// ID is the unique identifier for the biller (UUID format).
	ID string

	// OwnerID is the identity that owns this biller.
	OwnerID string

	// Name is the display name. Required.
	Name string

	// Category is optional.
	Category Category

	// Account is the account or customer number at the biller.
	Account string

	Notes string

	// CreatedAt is the Unix timestamp when the biller was created.
	CreatedAt int64
}
