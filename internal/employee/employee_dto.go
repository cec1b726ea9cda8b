package employee

type CreateEmployeeRequest struct {
	Name        string `json:"name" binding:"required,min=1"`
	Email       string `json:"email" binding:"required,email"`
	Department  string `json:"department" binding:"required,min=1"`
	JoiningDate string `json:"joining_date" binding:"required"`
}

type EmployeeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	JoiningDate string `json:"joining_date"`
}

// EmployeeOption is the lightweight shape for pickers and dropdowns.
type EmployeeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
