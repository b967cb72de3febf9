package mapping

import (
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	"github.com/dharmawipraja/accounting-api-sub000/internal/models"
)

// ToModelPeriodResult converts a domain PeriodResult to its db model.
func ToModelPeriodResult(d domain.PeriodResult) models.PeriodResult {
	return models.PeriodResult{
		PeriodID:       d.PeriodID,
		Year:           d.Year,
		Amount:         d.Amount,
		EquityDetailID: d.EquityDetailID,
		Closed:         d.Closed,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriodResult converts a db model PeriodResult to its domain shape.
func ToDomainPeriodResult(m models.PeriodResult) domain.PeriodResult {
	return domain.PeriodResult{
		PeriodID:       m.PeriodID,
		Year:           m.Year,
		Amount:         m.Amount,
		EquityDetailID: m.EquityDetailID,
		Closed:         m.Closed,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
