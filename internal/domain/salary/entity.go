package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodSalary is the computed wage for one pay period of one contract. The
// (year, month) pair identifies the period, not a calendar month: the period
// runs from the previous month's payment day through the day before this
// month's payment day.
type PeriodSalary struct {
	ID         string
	ContractID string
	Year       int
	Month      time.Month

	TotalWorkHours decimal.Decimal
	BasePay        decimal.Decimal
	OvertimePay    decimal.Decimal
	NightPay       decimal.Decimal
	HolidayPay     decimal.Decimal
	PaidLeavePay   decimal.Decimal
	TotalGrossPay  decimal.Decimal

	Deduction Deduction
	NetPay    decimal.Decimal

	PaymentDueDate time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Deduction itemizes what is withheld from gross pay.
type Deduction struct {
	IncomeTax           decimal.Decimal
	LocalIncomeTax      decimal.Decimal
	NationalPension     decimal.Decimal
	HealthInsurance     decimal.Decimal
	LongTermCare        decimal.Decimal
	EmploymentInsurance decimal.Decimal
	TotalTax            decimal.Decimal
	TotalInsurance      decimal.Decimal
	TotalDeduction      decimal.Decimal
}

// ApplyTotals replaces all derived pay fields at once. Partial overwrites
// would leave the salary internally inconsistent, so everything derived is
// set here or not at all.
func (s *PeriodSalary) ApplyTotals(totalHours, basePay, overtimePay, nightPay, holidayPay, paidLeavePay decimal.Decimal, d Deduction) {
	s.TotalWorkHours = totalHours
	s.BasePay = basePay
	s.OvertimePay = overtimePay
	s.NightPay = nightPay
	s.HolidayPay = holidayPay
	s.PaidLeavePay = paidLeavePay
	s.TotalGrossPay = basePay.Add(nightPay).Add(holidayPay).Add(paidLeavePay).Add(overtimePay)
	s.Deduction = d
	s.NetPay = s.TotalGrossPay.Sub(d.TotalDeduction)
}
