package repository

import "naija-tax/domain"

type CalculationRepository interface {
	Save(input domain.TaxInput, result domain.TaxResult) error
}
