package model

// ClientInfo is the singleton-per-catalog client and terms block printed on
// the first page of the quote document. Name/address/phone default to empty;
// the remaining fields fall back to the company defaults below when unset.
type ClientInfo struct {
	Name             string `json:"name"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	CompanyName      string `json:"companyName,omitempty"`
	ValidityText     string `json:"validityText,omitempty"`
	InstallationText string `json:"installationText,omitempty"`
	TaxText          string `json:"taxText,omitempty"`
}

// Default header/terms texts used when a catalog is reset or a snapshot
// arrives without a clientInfo block.
const (
	DefaultCompanyName      = "Tu Empresa S.L."
	DefaultValidityText     = "15 días naturales"
	DefaultInstallationText = "No incluida (salvo indicación)"
	DefaultTaxText          = "IVA 21% Desglosado"
)

// DefaultClientInfo returns the documented default client block.
func DefaultClientInfo() ClientInfo {
	return ClientInfo{
		CompanyName:      DefaultCompanyName,
		ValidityText:     DefaultValidityText,
		InstallationText: DefaultInstallationText,
		TaxText:          DefaultTaxText,
	}
}
