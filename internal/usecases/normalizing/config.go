package normalizing

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

// NewFromConfig monta o Normalizer a partir das variáveis NORMALIZER_*
func NewFromConfig(cfg config.Normalizer) (*Normalizer, error) {
	policy, err := ParseRecoveryPolicy(cfg.RecoveryPolicy)
	if err != nil {
		return nil, err
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("NORMALIZER_TIMEZONE inválido: %w", err)
	}

	var cities *CityTable
	if cfg.CityTablePath != "" {
		cities, err = LoadCityTable(cfg.CityTablePath)
		if err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"policy":       policy,
		"excluded_ids": cfg.ExcludedIDs,
		"city_table":   cfg.CityTablePath,
		"timezone":     location.String(),
	}).Info("Normalizador configurado")

	return New(Options{
		Cities:         cities,
		Policy:         policy,
		ExcludedIDs:    cfg.ExcludedIDs,
		CurrencySymbol: cfg.CurrencySymbol,
		Location:       location,
	}), nil
}
