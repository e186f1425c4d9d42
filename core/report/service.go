// Package report derives teacher-facing read models (student roster, class
// performance) from the account store. Nothing here is persisted; every call
// recomputes from the current collections.
package report

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/account"
)

type (
	// RosterRow is a student as shown on the teacher's roster screen. Grade
	// level, enrollment date and status are derived from the same email seed
	// that drives profile seeding, so they are stable per student.
	RosterRow struct {
		ID             string `json:"id"`
		Name           string `json:"name"`
		Email          string `json:"email"`
		Grade          string `json:"grade"`
		EnrollmentDate string `json:"enrollmentDate"`
		Status         string `json:"status"`
	}

	SubjectAverage struct {
		Subject string  `json:"subject"`
		Average float64 `json:"average"`
	}

	ClassReport struct {
		StudentCount      int              `json:"studentCount"`
		SubjectAverages   []SubjectAverage `json:"subjectAverages"`
		GradeDistribution map[string]int   `json:"gradeDistribution"`
		Sampled           bool             `json:"sampled"` // true when built from the demo series
	}

	Service struct {
		accSvc account.ServiceInterface
		now    func() time.Time // stubbed in tests
	}
)

func NewService(accSvc account.ServiceInterface) *Service {
	return &Service{accSvc: accSvc, now: time.Now}
}

var gradeLevels = []string{"9th", "10th", "11th", "12th"}

// Roster returns one row per registered student, in registration order.
func (svc *Service) Roster() ([]RosterRow, error) {
	students, err := svc.accSvc.QueryByRole(account.RoleStudent)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	rows := make([]RosterRow, 0, len(students))
	year := svc.now().Year()
	for _, s := range students {
		seed := account.EmailSeed(s.Email)
		status := "Active"
		if seed%5 == 0 {
			status = "Inactive"
		}
		rows = append(rows, RosterRow{
			ID:             s.ID,
			Name:           s.Name,
			Email:          s.Email,
			Grade:          gradeLevels[seed%len(gradeLevels)],
			EnrollmentDate: fmt.Sprintf("%d-%02d-%02d", year, seed%12+1, seed%28+1),
			Status:         status,
		})
	}
	return rows, nil
}

// sample series shown before any student has registered
var (
	sampleSubjects = []string{"Mathematics", "Science", "English", "History", "Computer Science"}
	sampleAverages = []float64{78, 82, 75, 68, 90}
)

// Class aggregates all student profiles into per-subject averages and a grade
// distribution. Profiles are fetched through the store's get-or-create
// operation, so students who never logged in are seeded on the fly. When no
// student is registered the demo sample series is returned with Sampled set.
func (svc *Service) Class() (ClassReport, error) {
	students, err := svc.accSvc.QueryByRole(account.RoleStudent)
	if err != nil {
		return ClassReport{}, errors.Wrap(err, "querying students")
	}

	if len(students) == 0 {
		rep := ClassReport{
			SubjectAverages:   make([]SubjectAverage, 0, len(sampleSubjects)),
			GradeDistribution: map[string]int{"A": 30, "B": 45, "C": 25, "D": 15, "F": 5},
			Sampled:           true,
		}
		for i, s := range sampleSubjects {
			rep.SubjectAverages = append(rep.SubjectAverages, SubjectAverage{Subject: s, Average: sampleAverages[i]})
		}
		return rep, nil
	}

	totals := make(map[string]float64)
	counts := make(map[string]int)
	var subjects []string
	dist := make(map[string]int)

	for _, s := range students {
		p, err := svc.accSvc.GetStudentProfile(s.ID)
		if err != nil {
			return ClassReport{}, errors.Wrapf(err, "loading profile for %s", s.ID)
		}
		if p == nil {
			continue
		}
		for _, sub := range p.Subjects {
			if counts[sub.Name] == 0 {
				subjects = append(subjects, sub.Name)
			}
			totals[sub.Name] += float64(sub.Progress)
			counts[sub.Name]++
			dist[sub.Grade]++
		}
	}

	rep := ClassReport{
		StudentCount:      len(students),
		SubjectAverages:   make([]SubjectAverage, 0, len(subjects)),
		GradeDistribution: dist,
	}
	for _, sub := range subjects {
		rep.SubjectAverages = append(rep.SubjectAverages, SubjectAverage{
			Subject: sub,
			Average: totals[sub] / float64(counts[sub]),
		})
	}
	return rep, nil
}
