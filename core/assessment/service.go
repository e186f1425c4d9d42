// Package assessment keeps the teacher-managed assessment catalog. The
// collection is process-local and unpersisted: it starts from the sample set
// and resets on restart.
package assessment

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
)

var ErrNotFound = errors.New("assessment not found")

// Statuses
const (
	StatusDraft     = "Draft"
	StatusPublished = "Published"
)

type Assessment struct {
	ID         int    `json:"id"`
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	DueDate    string `json:"dueDate"`
	TotalMarks int    `json:"totalMarks"`
	Status     string `json:"status"`
}

// NewAssessment contains information needed to create or update an Assessment.
type NewAssessment struct {
	Title      string `json:"title" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	DueDate    string `json:"dueDate" validate:"required"`
	TotalMarks int    `json:"totalMarks" validate:"gt=0"`
	Status     string `json:"status" validate:"required,oneof=Draft Published"`
}

func (na *NewAssessment) Validate(validate *validator.Validate) error {
	na.Title = core.CleanString(na.Title)
	na.Subject = core.CleanString(na.Subject)
	return validate.Struct(na)
}

type Service struct {
	mu     sync.RWMutex
	table  map[int]*Assessment
	nextID int
}

func NewService() *Service {
	svc := &Service{table: make(map[int]*Assessment)}
	for _, a := range sampleAssessments {
		a := a
		svc.table[a.ID] = &a
		if a.ID > svc.nextID {
			svc.nextID = a.ID
		}
	}
	return svc
}

// sampleAssessments seeds the catalog, mirroring the platform's demo data.
var sampleAssessments = []Assessment{
	{ID: 1, Title: "Midterm Exam", Subject: "Mathematics", DueDate: "2023-10-15", TotalMarks: 100, Status: StatusPublished},
	{ID: 2, Title: "Final Project", Subject: "Computer Science", DueDate: "2023-11-20", TotalMarks: 150, Status: StatusDraft},
	{ID: 3, Title: "Quiz 3", Subject: "Physics", DueDate: "2023-10-05", TotalMarks: 50, Status: StatusPublished},
	{ID: 4, Title: "Term Paper", Subject: "English Literature", DueDate: "2023-10-30", TotalMarks: 100, Status: StatusPublished},
	{ID: 5, Title: "Lab Assessment", Subject: "Chemistry", DueDate: "2023-11-10", TotalMarks: 75, Status: StatusDraft},
}

// QueryAll returns all assessments ordered by id.
func (svc *Service) QueryAll() []Assessment {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	all := make([]Assessment, 0, len(svc.table))
	for id := 1; id <= svc.nextID; id++ {
		if a, ok := svc.table[id]; ok {
			all = append(all, *a)
		}
	}
	return all
}

func (svc *Service) GetByID(id int) (Assessment, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	if a, ok := svc.table[id]; ok {
		return *a, nil
	}
	return Assessment{}, ErrNotFound
}

func (svc *Service) Create(na NewAssessment) Assessment {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.nextID++
	a := Assessment{
		ID:         svc.nextID,
		Title:      na.Title,
		Subject:    na.Subject,
		DueDate:    na.DueDate,
		TotalMarks: na.TotalMarks,
		Status:     na.Status,
	}
	svc.table[a.ID] = &a
	return a
}

func (svc *Service) Update(id int, na NewAssessment) (Assessment, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	a, ok := svc.table[id]
	if !ok {
		return Assessment{}, ErrNotFound
	}
	a.Title = na.Title
	a.Subject = na.Subject
	a.DueDate = na.DueDate
	a.TotalMarks = na.TotalMarks
	a.Status = na.Status
	return *a, nil
}

func (svc *Service) Delete(id int) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, ok := svc.table[id]; !ok {
		return ErrNotFound
	}
	delete(svc.table, id)
	return nil
}
