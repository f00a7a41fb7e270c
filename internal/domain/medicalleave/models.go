package medicalleave

import "time"

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type MedicalLeave struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	CategoryID string    `json:"categoryId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Days       int       `json:"days"`
	Reason     string    `json:"reason"`
	CID        string    `json:"cid"`
	Doctor     string    `json:"doctor"`
	Hospital   string    `json:"hospital"`
	Notes      string    `json:"notes"`
	Status     string    `json:"status"`
	Files      []File    `json:"files,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type File struct {
	ID          string    `json:"id"`
	LeaveID     string    `json:"leaveId,omitempty"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

type NewMedicalLeave struct {
	EmployeeID string
	CategoryID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	CID        string
	Doctor     string
	Hospital   string
	Notes      string
	Status     string
}
