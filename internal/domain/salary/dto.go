package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalaryResponse struct {
	ID         string `json:"id"`
	ContractID string `json:"contract_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`

	TotalWorkHours decimal.Decimal `json:"total_work_hours"`
	BasePay        decimal.Decimal `json:"base_pay"`
	OvertimePay    decimal.Decimal `json:"overtime_pay"`
	NightPay       decimal.Decimal `json:"night_pay"`
	HolidayPay     decimal.Decimal `json:"holiday_pay"`
	PaidLeavePay   decimal.Decimal `json:"paid_leave_pay"`
	TotalGrossPay  decimal.Decimal `json:"total_gross_pay"`

	Deduction DeductionResponse `json:"deduction"`
	NetPay    decimal.Decimal   `json:"net_pay"`

	PaymentDueDate string `json:"payment_due_date"`
}

type DeductionResponse struct {
	IncomeTax           decimal.Decimal `json:"income_tax"`
	LocalIncomeTax      decimal.Decimal `json:"local_income_tax"`
	NationalPension     decimal.Decimal `json:"national_pension"`
	HealthInsurance     decimal.Decimal `json:"health_insurance"`
	LongTermCare        decimal.Decimal `json:"long_term_care"`
	EmploymentInsurance decimal.Decimal `json:"employment_insurance"`
	TotalTax            decimal.Decimal `json:"total_tax"`
	TotalInsurance      decimal.Decimal `json:"total_insurance"`
	TotalDeduction      decimal.Decimal `json:"total_deduction"`
}

func ToResponse(s PeriodSalary) SalaryResponse {
	return SalaryResponse{
		ID:             s.ID,
		ContractID:     s.ContractID,
		Year:           s.Year,
		Month:          int(s.Month),
		TotalWorkHours: s.TotalWorkHours,
		BasePay:        s.BasePay,
		OvertimePay:    s.OvertimePay,
		NightPay:       s.NightPay,
		HolidayPay:     s.HolidayPay,
		PaidLeavePay:   s.PaidLeavePay,
		TotalGrossPay:  s.TotalGrossPay,
		Deduction: DeductionResponse{
			IncomeTax:           s.Deduction.IncomeTax,
			LocalIncomeTax:      s.Deduction.LocalIncomeTax,
			NationalPension:     s.Deduction.NationalPension,
			HealthInsurance:     s.Deduction.HealthInsurance,
			LongTermCare:        s.Deduction.LongTermCare,
			EmploymentInsurance: s.Deduction.EmploymentInsurance,
			TotalTax:            s.Deduction.TotalTax,
			TotalInsurance:      s.Deduction.TotalInsurance,
			TotalDeduction:      s.Deduction.TotalDeduction,
		},
		NetPay:         s.NetPay,
		PaymentDueDate: s.PaymentDueDate.Format(time.DateOnly),
	}
}
