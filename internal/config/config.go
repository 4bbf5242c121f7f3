package config

import "os"

type Config struct {
	Port       string
	BackendURL string
	PrefsDB    string
	Env        string
	Company    CompanyDetails
	Bank       BankDetails
}

// CompanyDetails feeds the invoice document header and the bill-from block.
type CompanyDetails struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Web     string
}

// BankDetails appears on every rendered invoice.
type BankDetails struct {
	Name          string
	AccountName   string
	AccountNumber string
	SwiftCode     string
	Branch        string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.BackendURL = getEnv("BACKEND_URL", "http://localhost:5000")
	cfg.PrefsDB = getEnv("PREFS_DB", "prefs.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.Company = CompanyDetails{
		Name:    getEnv("COMPANY_NAME", "Vogue Software Solutions (pvt) Ltd"),
		Address: getEnv("COMPANY_ADDRESS", "Malabe, Colombo, Sri Lanka"),
		Phone:   getEnv("COMPANY_PHONE", "+94 77 555 118"),
		Email:   getEnv("COMPANY_EMAIL", "info@voguesoftware.com"),
		Web:     getEnv("COMPANY_WEB", "www.voguesoftware.com"),
	}
	cfg.Bank = BankDetails{
		Name:          getEnv("BANK_NAME", "COMMERCIAL BANK (MALABE)"),
		AccountName:   getEnv("BANK_ACCOUNT_NAME", cfg.Company.Name),
		AccountNumber: getEnv("BANK_ACCOUNT_NUMBER", "1000857661"),
		SwiftCode:     getEnv("BANK_SWIFT_CODE", "CCE YLXX XXX"),
		Branch:        getEnv("BANK_BRANCH", "MALABE"),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
