package assessment

import (
	"errors"
	"testing"
)

func TestService_sampleCatalog(t *testing.T) {
	svc := NewService()

	all := svc.QueryAll()
	if len(all) != 5 {
		t.Fatalf("QueryAll() len = %d, want 5", len(all))
	}
	for i, a := range all {
		if a.ID != i+1 {
			t.Errorf("QueryAll()[%d].ID = %d, want %d", i, a.ID, i+1)
		}
	}
	if all[0].Title != "Midterm Exam" {
		t.Errorf("QueryAll()[0].Title = %q", all[0].Title)
	}
}

func TestService_Create(t *testing.T) {
	svc := NewService()

	a := svc.Create(NewAssessment{Title: "Pop Quiz", Subject: "Science", DueDate: "2023-12-01", TotalMarks: 20, Status: StatusDraft})
	if a.ID != 6 {
		t.Errorf("Create() ID = %d, want 6", a.ID)
	}

	got, err := svc.GetByID(a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got != a {
		t.Errorf("GetByID() = %+v, want %+v", got, a)
	}
}

func TestService_Update(t *testing.T) {
	svc := NewService()

	na := NewAssessment{Title: "Midterm Exam v2", Subject: "Mathematics", DueDate: "2023-10-16", TotalMarks: 120, Status: StatusDraft}
	a, err := svc.Update(1, na)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if a.Title != na.Title || a.TotalMarks != 120 || a.Status != StatusDraft {
		t.Errorf("Update() = %+v", a)
	}

	if _, err = svc.Update(99, na); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(99) error = %v, want ErrNotFound", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc := NewService()

	if err := svc.Delete(3); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.GetByID(3); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(3) after delete error = %v, want ErrNotFound", err)
	}
	if got := len(svc.QueryAll()); got != 4 {
		t.Errorf("QueryAll() len after delete = %d, want 4", got)
	}
	if err := svc.Delete(3); !errors.Is(err, ErrNotFound) {
		t.Errorf("repeat Delete() error = %v, want ErrNotFound", err)
	}

	// ids are never reused after a delete
	a := svc.Create(NewAssessment{Title: "Replacement", Subject: "Physics", DueDate: "2023-12-01", TotalMarks: 50, Status: StatusPublished})
	if a.ID != 6 {
		t.Errorf("Create() after delete ID = %d, want 6", a.ID)
	}
}
