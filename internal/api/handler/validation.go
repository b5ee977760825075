package handler

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// FilterQuery parâmetros de filtro aceitos na query string
type FilterQuery struct {
	States        []string `json:"state" validate:"dive,required,max=100"`
	CustomerTypes []string `json:"customer_type" validate:"dive,required,max=100"`
	Products      []string `json:"product" validate:"dive,required,max=200"`
	StartDate     string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// parseFilters lê os filtros da query string. Retorna os campos inválidos quando houver.
// Valores podem ser repetidos (?state=RS&state=GO) ou separados por vírgula (?state=RS,GO).
func parseFilters(r *http.Request) (domain.FilterSet, map[string]string) {
	query := r.URL.Query()

	fq := FilterQuery{
		States:        utils.SplitValues(query["state"]),
		CustomerTypes: utils.SplitValues(query["customer_type"]),
		Products:      utils.SplitValues(query["product"]),
		StartDate:     strings.TrimSpace(query.Get("start_date")),
		EndDate:       strings.TrimSpace(query.Get("end_date")),
	}

	if details := validateStruct(fq); details != nil {
		return domain.FilterSet{}, details
	}

	// Formato já validado
	startDate, _ := utils.ParseDate(fq.StartDate)
	endDate, _ := utils.ParseDate(fq.EndDate)

	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return domain.FilterSet{}, map[string]string{
			"start_date": "deve ser anterior ou igual a end_date",
		}
	}

	return domain.FilterSet{
		States:        fq.States,
		CustomerTypes: fq.CustomerTypes,
		Products:      fq.Products,
		StartDate:     startDate,
		EndDate:       endDate,
	}, nil
}

// validateStruct retorna os campos inválidos com a mensagem de cada um, ou nil
func validateStruct(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	details := make(map[string]string, len(errs))
	for _, fieldErr := range errs {
		details[fieldErr.Field()] = validationMessage(fieldErr)
	}
	return details
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "é obrigatório"
	case "max":
		return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
	case "datetime":
		return fmt.Sprintf("deve estar no formato %s", "YYYY-MM-DD")
	}
	return "é inválido"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("Erro ao enviar resposta")
	}
}
