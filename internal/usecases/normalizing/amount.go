package normalizing

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol símbolo removido dos valores de venda
const DefaultCurrencySymbol = "R$"

var (
	errNegativeAmount        = errors.New("valor negativo")
	errNotANumber            = errors.New("valor não numérico")
	errUnsupportedNumberType = errors.New("tipo numérico não suportado")
	errAmountOutOfRange      = errors.New("valor fora do intervalo suportado")
)

// ParseAmount converte o valor de venda no formato brasileiro ("R$ 1.234,56") em inteiro truncado.
// Pontos são separadores de milhar e a vírgula é o separador decimal.
func ParseAmount(value any, currencySymbol string) (int64, error) {
	switch v := value.(type) {
	case string:
		return parseLocalizedAmount(v, currencySymbol)
	case []byte:
		return parseLocalizedAmount(string(v), currencySymbol)
	case int:
		return nonNegative(int64(v))
	case int32:
		return nonNegative(int64(v))
	case int64:
		return nonNegative(v)
	case float32:
		return truncateFloat(float64(v))
	case float64:
		return truncateFloat(v)
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return 0, errNotANumber
		}
		return truncateDecimal(d)
	case decimal.Decimal:
		return truncateDecimal(v)
	default:
		return 0, errUnsupportedNumberType
	}
}

func parseLocalizedAmount(s, currencySymbol string) (int64, error) {
	cleaned := strings.TrimSpace(s)
	if currencySymbol != "" {
		cleaned = strings.ReplaceAll(cleaned, currencySymbol, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	cleaned = strings.TrimSpace(cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, errNotANumber
	}

	return truncateDecimal(d)
}

func truncateDecimal(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, errNegativeAmount
	}
	integer := d.Truncate(0).BigInt()
	if !integer.IsInt64() {
		return 0, errAmountOutOfRange
	}
	return integer.Int64(), nil
}

func truncateFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotANumber
	}
	if f < 0 {
		return 0, errNegativeAmount
	}
	// float64(math.MaxInt64) arredonda para 2^63, que já não cabe em int64
	if f >= math.MaxInt64 {
		return 0, errAmountOutOfRange
	}
	return int64(math.Trunc(f)), nil
}

func nonNegative(v int64) (int64, error) {
	if v < 0 {
		return 0, errNegativeAmount
	}
	return v, nil
}

// parseID aceita ids inteiros vindos de JSON (float64), drivers (int64) ou texto
func parseID(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errNotANumber
		}
		if v >= math.MaxInt64 || v < math.MinInt64 {
			return 0, errAmountOutOfRange
		}
		return int64(v), nil
	case json.Number:
		return v.Int64()
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(v)), 10, 64)
	default:
		return 0, errUnsupportedNumberType
	}
}
