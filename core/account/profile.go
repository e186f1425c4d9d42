package account

import "math"

// StudentProfile holds the derived per-student progress record. Field names
// mirror the stored document keys.
type (
	SubjectProgress struct {
		Name     string `json:"name"`
		Progress int    `json:"progress"`
		Grade    string `json:"grade"`
	}

	FeedbackEntry struct {
		ID      int    `json:"id"`
		Subject string `json:"subject"`
		Teacher string `json:"teacher"`
		Message string `json:"message"`
		Date    string `json:"date"`
	}

	UpcomingAssessment struct {
		ID         int    `json:"id"`
		Title      string `json:"title"`
		Subject    string `json:"subject"`
		DueDate    string `json:"dueDate"`
		Importance string `json:"importance"`
	}

	StudentProfile struct {
		OverallProgress      int                  `json:"overallProgress"`
		CompletedAssessments int                  `json:"completedAssessments"`
		PendingAssessments   int                  `json:"pendingAssessments"`
		Subjects             []SubjectProgress    `json:"subjects"`
		RecentFeedback       []FeedbackEntry      `json:"recentFeedback"`
		UpcomingAssessments  []UpcomingAssessment `json:"upcomingAssessments"`
	}
)

var (
	profileSubjects = []string{"Mathematics", "Science", "English", "Computer Science"}

	// used when no teacher accounts are registered yet
	fallbackTeachers = []string{"Dr. Johnson", "Prof. Smith", "Ms. Davis", "Dr. Wilson"}
)

// EmailSeed derives the numeric profile seed from an email: the sum of its
// character codes.
func EmailSeed(email string) int {
	var seed int
	for _, c := range email {
		seed += int(c)
	}
	return seed
}

// seededInt derives a reproducible integer in [min, max] from a seed via a
// sine-based hash. The constants are arbitrary, not cryptographic; they are
// kept as-is so that seeded profiles stay bit-identical with the documents
// written by earlier versions of the platform.
func seededInt(min, max, seed int) int {
	x := math.Sin(float64(seed)) * 10000
	frac := x - math.Floor(x)
	return min + int(math.Floor(frac*float64(max-min+1)))
}

func letterGrade(progress int) string {
	switch {
	case progress >= 90:
		return "A"
	case progress >= 80:
		return "A-"
	case progress >= 70:
		return "B+"
	default:
		return "B-"
	}
}

// SeedProfile deterministically builds the initial StudentProfile for the
// given email. It is a pure function of (email, teachers): recomputing with
// the same inputs always yields the same profile. teachers is the display-name
// pool of registered teacher accounts, picked round-robin for the fixed
// feedback and upcoming-assessment templates.
func SeedProfile(email string, teachers []string) StudentProfile {
	seed := EmailSeed(email)

	pickTeacher := func(i int) string {
		if len(teachers) == 0 {
			return fallbackTeachers[i%len(fallbackTeachers)]
		}
		return teachers[i%len(teachers)]
	}

	subjects := make([]SubjectProgress, 0, len(profileSubjects))
	var total int
	for i, name := range profileSubjects {
		progress := seededInt(60, 95, seed+i)
		total += progress
		subjects = append(subjects, SubjectProgress{
			Name:     name,
			Progress: progress,
			Grade:    letterGrade(progress),
		})
	}

	return StudentProfile{
		OverallProgress:      total / len(subjects),
		CompletedAssessments: seededInt(10, 30, seed+42),
		PendingAssessments:   seededInt(0, 5, seed+43),
		Subjects:             subjects,
		RecentFeedback: []FeedbackEntry{
			{ID: 1, Subject: "Mathematics", Teacher: pickTeacher(0), Message: "Keep practicing problem sets.", Date: "2023-10-12"},
			{ID: 2, Subject: "Science", Teacher: pickTeacher(1), Message: "Good understanding shown in lab work.", Date: "2023-10-08"},
		},
		UpcomingAssessments: []UpcomingAssessment{
			{ID: 1, Title: "Final Exam", Subject: "Mathematics", DueDate: "2023-11-15", Importance: "high"},
			{ID: 2, Title: "Lab Report", Subject: "Science", DueDate: "2023-10-25", Importance: "medium"},
		},
	}
}
