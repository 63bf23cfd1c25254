package entity

// PaymentMethod forma de pago aceptada en caja.
type PaymentMethod struct {
	Code  string
	Label string
}

var paymentMethods = []PaymentMethod{
	{Code: "dinheiro", Label: "Dinheiro"},
	{Code: "cartao_credito", Label: "Cartão de Crédito"},
	{Code: "cartao_debito", Label: "Cartão de Débito"},
	{Code: "pix", Label: "PIX"},
	{Code: "boleto", Label: "Boleto Bancário"},
	{Code: "transferencia", Label: "Transferência Bancária"},
	{Code: "cheque", Label: "Cheque"},
	{Code: "credito_loja", Label: "Crédito na Loja"},
}

// PaymentMethods devuelve el catálogo fijo de formas de pago.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

// FindPaymentMethod busca una forma de pago por código.
func FindPaymentMethod(code string) (PaymentMethod, bool) {
	for _, m := range paymentMethods {
		if m.Code == code {
			return m, true
		}
	}
	return PaymentMethod{}, false
}
