// Package feedback keeps the student feedback queue reviewed by teachers.
// Like the assessment catalog, it is process-local sample data and resets on
// restart.
package feedback

import (
	"sync"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("feedback not found")

// Statuses
const (
	StatusPending   = "pending"
	StatusResponded = "responded"
)

type Feedback struct {
	ID             int    `json:"id"`
	StudentName    string `json:"studentName"`
	AssessmentName string `json:"assessmentName"`
	Date           string `json:"date"`
	Content        string `json:"content"`
	Status         string `json:"status"`
	Response       string `json:"response"`
}

type Service struct {
	mu    sync.RWMutex
	table map[int]*Feedback
	maxID int
}

func NewService() *Service {
	svc := &Service{table: make(map[int]*Feedback)}
	for _, f := range sampleFeedback {
		f := f
		svc.table[f.ID] = &f
		if f.ID > svc.maxID {
			svc.maxID = f.ID
		}
	}
	return svc
}

var sampleFeedback = []Feedback{
	{
		ID: 1, StudentName: "John Smith", AssessmentName: "Math Quiz 1", Date: "2023-05-10",
		Content: "The questions were too difficult and not related to what we learned in class.",
		Status:  StatusPending,
	},
	{
		ID: 2, StudentName: "Emma Johnson", AssessmentName: "Science Test", Date: "2023-05-12",
		Content: "I think there was an error in question 5. The formula provided doesn't match what we learned.",
		Status:  StatusResponded,
		Response: "Thank you for pointing this out. You're right, there was a typo in the formula. " +
			"We'll adjust the grading accordingly.",
	},
	{
		ID: 3, StudentName: "Michael Brown", AssessmentName: "History Essay", Date: "2023-05-15",
		Content: "I would appreciate more detailed feedback on my essay structure.",
		Status:  StatusPending,
	},
	{
		ID: 4, StudentName: "Sophia Garcia", AssessmentName: "English Literature Quiz", Date: "2023-05-18",
		Content: "The time allocated for the quiz was insufficient to answer all questions thoroughly.",
		Status:  StatusPending,
	},
}

// QueryAll returns all feedback entries ordered by id.
func (svc *Service) QueryAll() []Feedback {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	all := make([]Feedback, 0, len(svc.table))
	for id := 1; id <= svc.maxID; id++ {
		if f, ok := svc.table[id]; ok {
			all = append(all, *f)
		}
	}
	return all
}

func (svc *Service) GetByID(id int) (Feedback, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	if f, ok := svc.table[id]; ok {
		return *f, nil
	}
	return Feedback{}, ErrNotFound
}

// Respond records a teacher response and marks the entry responded.
func (svc *Service) Respond(id int, response string) (Feedback, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	f, ok := svc.table[id]
	if !ok {
		return Feedback{}, ErrNotFound
	}
	f.Response = response
	f.Status = StatusResponded
	return *f, nil
}
