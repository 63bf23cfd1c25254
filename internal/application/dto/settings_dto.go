package dto

// StoreSettingsDTO datos de la tienda para GET/PUT /api/settings.
type StoreSettingsDTO struct {
	CompanyName   string `json:"company_name"`
	Slogan        string `json:"slogan"`
	TaxID         string `json:"tax_id"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ReceiptFooter string `json:"receipt_footer"`
}
