package normalizing

import (
	"sort"
	"strings"
	"unicode"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RequiredColumns colunas que precisam existir em pelo menos um registro do lote
var RequiredColumns = []string{
	domain.ColumnID,
	domain.ColumnSaleAmount,
	domain.ColumnSaleDate,
	domain.ColumnCity,
	domain.ColumnState,
	domain.ColumnCustomer,
	domain.ColumnCustomerType,
	domain.ColumnProduct,
}

// defaultAliases nomes conhecidos das duas fontes (já normalizados por columnKey)
var defaultAliases = map[string]string{
	"id": domain.ColumnID,

	"sale_date":     domain.ColumnSaleDate,
	"data_venda":    domain.ColumnSaleDate,
	"data_de_venda": domain.ColumnSaleDate,
	"data_da_venda": domain.ColumnSaleDate,

	"sale_amount":    domain.ColumnSaleAmount,
	"valor_de_venda": domain.ColumnSaleAmount,
	"valor_da_venda": domain.ColumnSaleAmount,
	"valor_venda":    domain.ColumnSaleAmount,

	"city":   domain.ColumnCity,
	"cidade": domain.ColumnCity,

	"state":  domain.ColumnState,
	"estado": domain.ColumnState,
	"uf":     domain.ColumnState,

	"customer": domain.ColumnCustomer,
	"cliente":  domain.ColumnCustomer,

	"customer_type":   domain.ColumnCustomerType,
	"tipo_cliente":    domain.ColumnCustomerType,
	"tipo_de_cliente": domain.ColumnCustomerType,

	"product": domain.ColumnProduct,
	"produto": domain.ColumnProduct,
}

// FoldKey remove acentos, converte para minúsculas e colapsa espaços.
// "  São  Gabriel " -> "sao gabriel"
func FoldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}

// columnKey normaliza o nome de um campo: "Valor de venda" -> "valor_de_venda"
func columnKey(name string) string {
	key := FoldKey(name)
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	return key
}

// columnResolver traduz nomes de campos das fontes para os nomes canônicos
type columnResolver struct {
	aliases map[string]string
}

// Outros nomes de campo são traduzidos nas fontes (SOURCE_FIELD_MAPPING)
func newColumnResolver() *columnResolver {
	return &columnResolver{aliases: defaultAliases}
}

// canonicalize devolve o registro com os nomes canônicos. Campos desconhecidos são ignorados.
// Quando dois campos resolvem para a mesma coluna, vence o primeiro não nulo em ordem alfabética.
func (c *columnResolver) canonicalize(raw domain.RawRecord) domain.RawRecord {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	record := make(domain.RawRecord, len(RequiredColumns))
	for _, key := range keys {
		column, ok := c.aliases[columnKey(key)]
		if !ok {
			continue
		}

		value := raw[key]
		if existing, seen := record[column]; seen && existing != nil {
			continue
		}
		record[column] = value
	}

	return record
}

// missingColumn retorna a primeira coluna obrigatória ausente de todos os registros
func missingColumn(records []domain.RawRecord) string {
	if len(records) == 0 {
		return ""
	}

	present := make(map[string]bool, len(RequiredColumns))
	for _, record := range records {
		for column := range record {
			present[column] = true
		}
	}

	for _, column := range RequiredColumns {
		if !present[column] {
			return column
		}
	}

	return ""
}
