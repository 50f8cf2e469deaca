package contract

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeductionPolicy selects which tax/insurance formula applies to a
// contract's gross pay.
type DeductionPolicy string

const (
	PolicyFreelancer      DeductionPolicy = "freelancer"
	PolicyNoDeduction     DeductionPolicy = "no_deduction"
	PolicyTaxOnly         DeductionPolicy = "tax_only"
	PolicyTaxAndInsurance DeductionPolicy = "tax_and_insurance"
)

func (p DeductionPolicy) Valid() bool {
	switch p {
	case PolicyFreelancer, PolicyNoDeduction, PolicyTaxOnly, PolicyTaxAndInsurance:
		return true
	}
	return false
}

// Contract is the employment agreement wages are computed against. The
// payment day defines the pay-period cutover: the period for (year, month)
// runs from the previous month's payment day through the day before this
// month's payment day.
type Contract struct {
	ID               string
	EmployeeID       string
	WorkplaceName    string
	HourlyWage       decimal.Decimal
	PaymentDay       int // 1..31, clamped to the source month's last day
	DeductionPolicy  DeductionPolicy
	IsSmallWorkplace bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
