package entity

// StoreSettings datos de la tienda impresos en el comprobante.
type StoreSettings struct {
	CompanyName   string
	Slogan        string
	TaxID         string // CNPJ
	Phone         string
	Email         string
	Address       string
	City          string
	ReceiptFooter string
}
