package employee

type CreateEmployeeRequest struct {
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	PhoneNumber    string `json:"phone_number"`
	Department     string `json:"department"`
	Position       string `json:"position"`
	DateHired      string `json:"date_hired" binding:"required"`
	IsContract     bool   `json:"is_contract"`
	BankName       string `json:"bank_name"`
	AccountNumber  string `json:"account_number"`
	TaxID          string `json:"tax_id"`
	PensionID      string `json:"pension_id"`
	NHFID          string `json:"nhf_id"`
	BasicSalary    string `json:"basic_salary" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	PhoneNumber   string `json:"phone_number"`
	Department    string `json:"department"`
	Position      string `json:"position"`
	Status        string `json:"status" binding:"required"`
	IsContract    bool   `json:"is_contract"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	BasicSalary   string `json:"basic_salary" binding:"required"`

	// Required when basic_salary changes; recorded on the history entry.
	ChangeReason string `json:"change_reason"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	Department     string `json:"department,omitempty"`
	Position       string `json:"position,omitempty"`
	DateHired      string `json:"date_hired"`
	Status         string `json:"status"`
	IsContract     bool   `json:"is_contract"`
	BankName       string `json:"bank_name,omitempty"`
	AccountNumber  string `json:"account_number,omitempty"`
	BasicSalary    string `json:"basic_salary"`
}

type CompensationHistoryResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EffectiveDate string `json:"effective_date"`
	BasicSalary   string `json:"basic_salary"`
	ChangedBy     string `json:"changed_by"`
	ChangeReason  string `json:"change_reason,omitempty"`
}
