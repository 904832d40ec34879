package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	CountryCode  string `json:"countryCode"`  // Nullable reference to the country registry
	Name         string `json:"name"`         // Localised display name
	NameEn       string `json:"nameEn"`       // English display name
	AuditFields
}
