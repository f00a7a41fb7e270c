package training

import "time"

type Training struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"category"`
	Source       string        `json:"source"`
	Instructor   string        `json:"instructor"`
	Institution  string        `json:"institution"`
	StartDate    *time.Time    `json:"startDate,omitempty"`
	EndDate      *time.Time    `json:"endDate,omitempty"`
	Hours        float64       `json:"hours"`
	Status       string        `json:"status"`
	Participants []Participant `json:"participants,omitempty"`
	Materials    []Material    `json:"materials,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type Participant struct {
	ID           string    `json:"id"`
	TrainingID   string    `json:"trainingId,omitempty"`
	EmployeeID   string    `json:"employeeId"`
	EmployeeName string    `json:"employeeName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Material struct {
	ID          string    `json:"id"`
	TrainingID  string    `json:"trainingId,omitempty"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

type NewTraining struct {
	Name        string
	Category    string
	Source      string
	Instructor  string
	Institution string
	StartDate   *time.Time
	EndDate     *time.Time
	Hours       float64
	Status      string
}
