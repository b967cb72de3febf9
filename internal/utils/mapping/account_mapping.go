package mapping

import (
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	"github.com/dharmawipraja/accounting-api-sub000/internal/models"
)

// ToModelGeneralAccount converts a domain GeneralAccount to its db model.
func ToModelGeneralAccount(d domain.GeneralAccount) models.GeneralAccount {
	return models.GeneralAccount{
		AccountID:         d.AccountID,
		AccountNumber:     d.AccountNumber,
		Name:              d.Name,
		Category:          models.AccountCategory(d.Category),
		ReportGroup:       string(d.ReportGroup),
		NormalSide:        string(d.NormalSide),
		AmountCredit:      d.AmountCredit,
		AmountDebit:       d.AmountDebit,
		AccumulatedCredit: d.AccumulatedCredit,
		AccumulatedDebit:  d.AccumulatedDebit,
		AuditFields:       ToModelAuditFields(d.AuditFields),
		DeletedAt:         d.DeletedAt,
	}
}

// ToDomainGeneralAccount converts a db model GeneralAccount to its domain shape.
func ToDomainGeneralAccount(m models.GeneralAccount) domain.GeneralAccount {
	return domain.GeneralAccount{
		AccountBase: domain.AccountBase{
			AccountID:         m.AccountID,
			AccountNumber:     m.AccountNumber,
			Name:              m.Name,
			Category:          domain.AccountCategory(m.Category),
			ReportGroup:       domain.ReportGroup(m.ReportGroup),
			NormalSide:        domain.NormalSide(m.NormalSide),
			AmountCredit:      m.AmountCredit,
			AmountDebit:       m.AmountDebit,
			AccumulatedCredit: m.AccumulatedCredit,
			AccumulatedDebit:  m.AccumulatedDebit,
			AuditFields:       ToDomainAuditFields(m.AuditFields),
			DeletedAt:         m.DeletedAt,
		},
	}
}

// ToModelDetailAccount converts a domain DetailAccount to its db model.
func ToModelDetailAccount(d domain.DetailAccount) models.DetailAccount {
	return models.DetailAccount{
		AccountID:         d.AccountID,
		AccountNumber:     d.AccountNumber,
		Name:              d.Name,
		Category:          models.AccountCategory(d.Category),
		ReportGroup:       string(d.ReportGroup),
		NormalSide:        string(d.NormalSide),
		GeneralID:         d.GeneralID,
		AmountCredit:      d.AmountCredit,
		AmountDebit:       d.AmountDebit,
		AccumulatedCredit: d.AccumulatedCredit,
		AccumulatedDebit:  d.AccumulatedDebit,
		AuditFields:       ToModelAuditFields(d.AuditFields),
		DeletedAt:         d.DeletedAt,
	}
}

// ToDomainDetailAccount converts a db model DetailAccount to its domain shape.
func ToDomainDetailAccount(m models.DetailAccount) domain.DetailAccount {
	return domain.DetailAccount{
		AccountBase: domain.AccountBase{
			AccountID:         m.AccountID,
			AccountNumber:     m.AccountNumber,
			Name:              m.Name,
			Category:          domain.AccountCategory(m.Category),
			ReportGroup:       domain.ReportGroup(m.ReportGroup),
			NormalSide:        domain.NormalSide(m.NormalSide),
			AmountCredit:      m.AmountCredit,
			AmountDebit:       m.AmountDebit,
			AccumulatedCredit: m.AccumulatedCredit,
			AccumulatedDebit:  m.AccumulatedDebit,
			AuditFields:       ToDomainAuditFields(m.AuditFields),
			DeletedAt:         m.DeletedAt,
		},
		GeneralID: m.GeneralID,
	}
}
