package normalizing

import (
	"errors"
	"fmt"
)

// Tipos de erros da normalização
var (
	// Esquema incompatível entre fonte e tabela canônica (sempre fatal)
	ErrMissingColumn = errors.New("coluna obrigatória ausente")

	// Qualidade de dados (fatal apenas com RecoveryPolicyAbort)
	ErrParse  = errors.New("data de venda inválida")
	ErrFormat = errors.New("formato de valor inválido")

	// Diagnóstico: cidade sem coordenadas na tabela
	ErrLookupMiss = errors.New("cidade sem coordenadas")

	ErrInvalidPolicy = errors.New("política de recuperação inválida")
)

// MissingColumnError indica que uma coluna obrigatória não existe em nenhum registro
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumn.Error(), e.Column)
}

func (e *MissingColumnError) Unwrap() error {
	return ErrMissingColumn
}

// ParseError data de venda que não pôde ser interpretada
type ParseError struct {
	Row   int // Posição do registro na entrada (a partir de 1)
	Value any
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: linha %d, valor %q: %s", ErrParse.Error(), e.Row, fmt.Sprint(e.Value), e.Err.Error())
	}
	return fmt.Sprintf("%s: linha %d, valor %q", ErrParse.Error(), e.Row, fmt.Sprint(e.Value))
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// FormatError valor numérico (valor de venda ou id) fora do formato esperado
type FormatError struct {
	Row    int
	Column string
	Value  any
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: linha %d, coluna %s, valor %q: %s", ErrFormat.Error(), e.Row, e.Column, fmt.Sprint(e.Value), e.Err.Error())
	}
	return fmt.Sprintf("%s: linha %d, coluna %s, valor %q", ErrFormat.Error(), e.Row, e.Column, fmt.Sprint(e.Value))
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// LookupMiss cidade sem entrada na tabela de coordenadas e quantos registros foram descartados por isso
type LookupMiss struct {
	City  string
	Count int
}

func (e *LookupMiss) Error() string {
	return fmt.Sprintf("%s: %s (%d registros)", ErrLookupMiss.Error(), e.City, e.Count)
}

func (e *LookupMiss) Unwrap() error {
	return ErrLookupMiss
}

// IsDataQualityError verifica se o erro é de qualidade de dados (linha a linha)
func IsDataQualityError(err error) bool {
	return errors.Is(err, ErrParse) || errors.Is(err, ErrFormat)
}
