package service

const (
	MonthsPerYear = 12

	// Default deduction formulas, applied to annual gross income.
	DefaultPensionRate   = 0.08
	DefaultMortgageRate  = 0.10
	DefaultRentRate      = 0.20
	DefaultInsuranceFlat = 300_000.0

	RentCap = 500_000.0 // applies to manual entries as well

	TaxFreeThreshold = 800_000.0

	DigestRecentSubmissions = 10
	MaxNameLength           = 100
)

const (
	msgMailNotConfigured = "Email service is not configured. Please contact support."
	msgMissingFields     = "Please fill in all fields"
	msgInvalidEmail      = "Please enter a valid email address"
	msgMissingConsent    = "Please provide consent to receive the report"
)
