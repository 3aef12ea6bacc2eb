package dto

import "empapi/internal/model"

// CreateEmployeeRequest is the input for adding an employee. It carries no ID;
// the store assigns one.
type CreateEmployeeRequest struct {
	Name        string         `json:"name"`
	MailID      string         `json:"mailId"`
	JobTitle    model.JobTitle `json:"jobTitle" validate:"omitempty,jobtitle"`
	Mission     model.Mission  `json:"mission" validate:"omitempty,mission"`
	ProjectName string         `json:"projectName"`
	ReportsTo   string         `json:"reportsTo"`
}

// Employee builds the record to store, applying JobTitle and Mission defaults.
func (r CreateEmployeeRequest) Employee() model.Employee {
	return model.Employee{
		Name:        r.Name,
		MailID:      r.MailID,
		JobTitle:    r.JobTitle.OrDefault(),
		Mission:     r.Mission.OrDefault(),
		ProjectName: r.ProjectName,
		ReportsTo:   r.ReportsTo,
	}
}

// UpdateEmployeeRequest replaces every mutable field of an existing employee
// addressed by a separately supplied ID.
type UpdateEmployeeRequest struct {
	Name        string         `json:"name"`
	MailID      string         `json:"mailId"`
	JobTitle    model.JobTitle `json:"jobTitle" validate:"omitempty,jobtitle"`
	Mission     model.Mission  `json:"mission" validate:"omitempty,mission"`
	ProjectName string         `json:"projectName"`
	ReportsTo   string         `json:"reportsTo"`
}

// Employee builds the replacement record for id.
func (r UpdateEmployeeRequest) Employee(id int) model.Employee {
	return model.Employee{
		ID:          id,
		Name:        r.Name,
		MailID:      r.MailID,
		JobTitle:    r.JobTitle.OrDefault(),
		Mission:     r.Mission.OrDefault(),
		ProjectName: r.ProjectName,
		ReportsTo:   r.ReportsTo,
	}
}

// EmployeeView is the outbound representation of an employee.
type EmployeeView struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	MailID      string         `json:"mailId"`
	JobTitle    model.JobTitle `json:"jobTitle"`
	Mission     model.Mission  `json:"mission"`
	ProjectName string         `json:"projectName"`
	ReportsTo   string         `json:"reportsTo"`
}

func NewEmployeeView(e model.Employee) EmployeeView {
	return EmployeeView{
		ID:          e.ID,
		Name:        e.Name,
		MailID:      e.MailID,
		JobTitle:    e.JobTitle,
		Mission:     e.Mission,
		ProjectName: e.ProjectName,
		ReportsTo:   e.ReportsTo,
	}
}

// NewEmployeeViews maps records to views. The result is never nil.
func NewEmployeeViews(es []model.Employee) []EmployeeView {
	out := make([]EmployeeView, 0, len(es))
	for _, e := range es {
		out = append(out, NewEmployeeView(e))
	}
	return out
}
