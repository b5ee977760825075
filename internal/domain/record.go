package domain

// RawRecord é um registro bruto de venda como chega da fonte de dados.
// Nomes de campos e formatos variam conforme a fonte.
type RawRecord map[string]any

// Columns nomes canônicos das colunas de uma venda
const (
	ColumnID           = "id"
	ColumnSaleDate     = "sale_date"
	ColumnSaleAmount   = "sale_amount"
	ColumnCity         = "city"
	ColumnState        = "state"
	ColumnCustomer     = "customer"
	ColumnCustomerType = "customer_type"
	ColumnProduct      = "product"
)

// Rename retorna uma cópia do registro com os campos traduzidos pelo mapeamento
// informado. Campos sem entrada no mapeamento são mantidos como estão.
func (r RawRecord) Rename(mapping map[string]string) RawRecord {
	if len(mapping) == 0 {
		return r
	}

	renamed := make(RawRecord, len(r))
	for key, value := range r {
		if target, ok := mapping[key]; ok && target != "" {
			renamed[target] = value
			continue
		}
		renamed[key] = value
	}

	return renamed
}
