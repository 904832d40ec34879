package models

// Currency represents a row of the currencies table.
type Currency struct {
	CurrencyCode string  `db:"currency_code"` // Primary Key (e.g., "USD")
	CountryCode  *string `db:"country_code"`  // Nullable, set to NULL when the country is removed
	Name         string  `db:"name"`
	NameEn       string  `db:"name_en"`
	AuditFields
}
