package salary

import (
	"github.com/shopspring/decimal"

	"github.com/wagely/payroll-backend-go/internal/domain/contract"
	"github.com/wagely/payroll-backend-go/internal/domain/salary"
)

// Statutory rates. Each item is floored to whole currency units exactly as
// stated; the rounding mode is compatibility-critical, not stylistic.
var (
	freelancerIncomeTaxRate = decimal.NewFromFloat(0.03)
	freelancerLocalTaxRate  = decimal.NewFromFloat(0.003)

	bracketLow  = decimal.NewFromInt(1_000_000)
	bracketHigh = decimal.NewFromInt(2_000_000)

	bracketLowRate  = decimal.NewFromFloat(0.03)
	bracketMidRate  = decimal.NewFromFloat(0.035)
	bracketHighRate = decimal.NewFromFloat(0.04)

	localTaxShare = decimal.NewFromFloat(0.1)

	pensionRate      = decimal.NewFromFloat(0.045)
	pensionFloorBase = decimal.NewFromInt(390_000)
	pensionBaseUnit  = decimal.NewFromInt(1_000)

	healthRate       = decimal.NewFromFloat(0.03545)
	longTermCareRate = decimal.NewFromFloat(0.1295)
	employmentRate   = decimal.NewFromFloat(0.009)
)

// CalculateDeduction itemizes tax and insurance for one gross amount under
// the contract's deduction policy. Pure: no state, no I/O.
func CalculateDeduction(gross decimal.Decimal, policy contract.DeductionPolicy) salary.Deduction {
	var d salary.Deduction

	switch policy {
	case contract.PolicyFreelancer:
		d.IncomeTax = gross.Mul(freelancerIncomeTaxRate).Floor()
		d.LocalIncomeTax = gross.Mul(freelancerLocalTaxRate).Floor()

	case contract.PolicyTaxOnly:
		d.IncomeTax = bracketIncomeTax(gross)
		d.LocalIncomeTax = d.IncomeTax.Mul(localTaxShare).Floor()

	case contract.PolicyTaxAndInsurance:
		d.IncomeTax = bracketIncomeTax(gross)
		d.LocalIncomeTax = d.IncomeTax.Mul(localTaxShare).Floor()

		// Pension base is floored to the nearest 1,000 before the rate.
		base := decimal.Max(gross, pensionFloorBase)
		base = base.Div(pensionBaseUnit).Floor().Mul(pensionBaseUnit)
		d.NationalPension = base.Mul(pensionRate).Floor()

		d.HealthInsurance = gross.Mul(healthRate).Floor()
		d.LongTermCare = d.HealthInsurance.Mul(longTermCareRate).Floor()
		d.EmploymentInsurance = gross.Mul(employmentRate).Floor()

	case contract.PolicyNoDeduction:
		// everything stays zero
	}

	d.TotalTax = d.IncomeTax.Add(d.LocalIncomeTax)
	d.TotalInsurance = d.NationalPension.Add(d.HealthInsurance).Add(d.LongTermCare).Add(d.EmploymentInsurance)
	d.TotalDeduction = d.TotalInsurance.Add(d.TotalTax)
	return d
}

// bracketIncomeTax approximates withholding with three gross brackets.
func bracketIncomeTax(gross decimal.Decimal) decimal.Decimal {
	switch {
	case gross.LessThan(bracketLow):
		return gross.Mul(bracketLowRate).Floor()
	case gross.LessThan(bracketHigh):
		return gross.Mul(bracketMidRate).Floor()
	default:
		return gross.Mul(bracketHighRate).Floor()
	}
}
