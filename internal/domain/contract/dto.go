package contract

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wagely/payroll-backend-go/internal/pkg/validator"
)

type CreateContractRequest struct {
	EmployeeID       string          `json:"employee_id"`
	WorkplaceName    string          `json:"workplace_name"`
	HourlyWage       decimal.Decimal `json:"hourly_wage"`
	PaymentDay       int             `json:"payment_day"`
	DeductionPolicy  DeductionPolicy `json:"deduction_policy"`
	IsSmallWorkplace bool            `json:"is_small_workplace"`
}

func (r *CreateContractRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if validator.IsEmpty(r.WorkplaceName) {
		errs = append(errs, validator.ValidationError{
			Field:   "workplace_name",
			Message: "workplace_name is required",
		})
	}
	if !r.HourlyWage.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_wage",
			Message: "hourly_wage must be positive",
		})
	}
	if r.PaymentDay < 1 || r.PaymentDay > 31 {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_day",
			Message: "payment_day must be between 1 and 31",
		})
	}
	if !r.DeductionPolicy.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "deduction_policy",
			Message: "deduction_policy must be one of freelancer, no_deduction, tax_only, tax_and_insurance",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateContractRequest) ToEntity() Contract {
	return Contract{
		EmployeeID:       r.EmployeeID,
		WorkplaceName:    r.WorkplaceName,
		HourlyWage:       r.HourlyWage,
		PaymentDay:       r.PaymentDay,
		DeductionPolicy:  r.DeductionPolicy,
		IsSmallWorkplace: r.IsSmallWorkplace,
	}
}

type ContractResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	WorkplaceName    string          `json:"workplace_name"`
	HourlyWage       decimal.Decimal `json:"hourly_wage"`
	PaymentDay       int             `json:"payment_day"`
	DeductionPolicy  DeductionPolicy `json:"deduction_policy"`
	IsSmallWorkplace bool            `json:"is_small_workplace"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func ToResponse(c Contract) ContractResponse {
	return ContractResponse{
		ID:               c.ID,
		EmployeeID:       c.EmployeeID,
		WorkplaceName:    c.WorkplaceName,
		HourlyWage:       c.HourlyWage,
		PaymentDay:       c.PaymentDay,
		DeductionPolicy:  c.DeductionPolicy,
		IsSmallWorkplace: c.IsSmallWorkplace,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
