package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/darasahq/darasa/core/account"
	"github.com/darasahq/darasa/core/assessment"
)

func Test_assessmentApi_query(t *testing.T) {
	srv := setup(t)
	student := srv.registerAccount(t, "Test Student", "s@example.com", account.RoleStudent)

	// missing token
	req, rec := newRequest(http.MethodGet, "/v1/assessments")
	srv.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)

	// any authenticated account can read the catalog
	req, rec = newAuthRequest(http.MethodGet, "/v1/assessments", srv.getToken(t, student))
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, body = %s", rec.Code, rec.Body.String())
	}
	var all []assessment.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("unmarshalling response failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("catalog len = %d, want the 5 samples", len(all))
	}
}

func Test_assessmentApi_create(t *testing.T) {
	srv := setup(t)
	student := srv.registerAccount(t, "Test Student", "s@example.com", account.RoleStudent)
	teacher := srv.registerAccount(t, "Test Teacher", "t@example.com", account.RoleTeacher)

	na := assessment.NewAssessment{Title: "Pop Quiz", Subject: "Science", DueDate: "2023-12-01", TotalMarks: 20, Status: assessment.StatusDraft}

	tests := []httpTest{
		{
			name:     "students cannot create",
			token:    srv.getToken(t, student),
			body:     marchallObj(t, na),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "permission denied"}),
		},
		{
			name:     "validation",
			token:    srv.getToken(t, teacher),
			body:     marchallObj(t, assessment.NewAssessment{Title: "Pop Quiz", Status: "Archived"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "teacher creates",
			token:    srv.getToken(t, teacher),
			body:     marchallObj(t, na),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/assessments", tt.token, tt.body)
			srv.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if rec.Code != http.StatusCreated {
				return
			}
			var a assessment.Assessment
			if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
				t.Fatalf("unmarshalling response failed: %v", err)
			}
			if a.ID != 6 {
				t.Errorf("new assessment ID = %d, want 6", a.ID)
			}
			if a.Title != na.Title {
				t.Errorf("Title = %q, want %q", a.Title, na.Title)
			}
		})
	}
}

func Test_assessmentApi_retrieve(t *testing.T) {
	srv := setup(t)
	student := srv.registerAccount(t, "Test Student", "s@example.com", account.RoleStudent)
	token := srv.getToken(t, student)

	req, rec := newAuthRequest(http.MethodGet, "/v1/assessments/1", token)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, body = %s", rec.Code, rec.Body.String())
	}
	var a assessment.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("unmarshalling response failed: %v", err)
	}
	if a.Title != "Midterm Exam" {
		t.Errorf("Title = %q", a.Title)
	}

	for _, path := range []string{"/v1/assessments/99", "/v1/assessments/abc"} {
		req, rec = newAuthRequest(http.MethodGet, path, token)
		srv.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
	}
}

func Test_assessmentApi_update(t *testing.T) {
	srv := setup(t)
	student := srv.registerAccount(t, "Test Student", "s@example.com", account.RoleStudent)
	teacher := srv.registerAccount(t, "Test Teacher", "t@example.com", account.RoleTeacher)

	na := assessment.NewAssessment{Title: "Midterm Exam v2", Subject: "Mathematics", DueDate: "2023-10-16", TotalMarks: 120, Status: assessment.StatusPublished}

	req, rec := newAuthRequest(http.MethodPut, "/v1/assessments/1", srv.getToken(t, student), marchallObj(t, na))
	srv.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}, rec)

	req, rec = newAuthRequest(http.MethodPut, "/v1/assessments/1", srv.getToken(t, teacher), marchallObj(t, na))
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, body = %s", rec.Code, rec.Body.String())
	}
	var a assessment.Assessment
	if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
		t.Fatalf("unmarshalling response failed: %v", err)
	}
	if a.Title != na.Title || a.TotalMarks != 120 {
		t.Errorf("update not applied: %+v", a)
	}
}

func Test_assessmentApi_destroy(t *testing.T) {
	srv := setup(t)
	teacher := srv.registerAccount(t, "Test Teacher", "t@example.com", account.RoleTeacher)
	token := srv.getToken(t, teacher)

	req, rec := newAuthRequest(http.MethodDelete, "/v1/assessments/3", token)
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v, body = %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodGet, "/v1/assessments/3", token)
	srv.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
}
