package response

type Department struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	CreatedAt string `json:"created_at"`
}

type Position struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	MinSalary string `json:"min_salary"`
	MaxSalary string `json:"max_salary"`
	CreatedAt string `json:"created_at"`
}

type Employee struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	DepartmentID *string `json:"department_id,omitempty"`
	PositionID   *string `json:"position_id,omitempty"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}
