package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/account"
	"github.com/darasahq/darasa/core/assessment"
	"github.com/darasahq/darasa/core/feedback"
	"github.com/darasahq/darasa/core/report"
	emailsvc "github.com/darasahq/darasa/services/email"
	"github.com/darasahq/darasa/storage/kvstore"
	"github.com/darasahq/darasa/storage/state"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testServer struct {
	Server
	auth    *Authenticator
	acctSvc account.ServiceInterface
	mailSvc core.EmailService
}

func setup(t *testing.T) *testServer {
	t.Helper()

	conf := &core.Config{
		TestMode:        true,
		Env:             "TEST",
		AppName:         "Darasa",
		SecretKey:       "t3st-s3cr3t-k3y",
		FrontendBaseURL: "http://localhost:3000",
		Server:          core.ServerConfig{JWTExpirationDelta: time.Hour},
	}

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	acctSvc := account.NewService(state.NewAccountStore(kvstore.NewMemory()), mailSvc, conf)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	account.InitValidators(validate, translator)

	srv := NewServer(":0", ServerDeps{
		Conf:           conf,
		Logger:         testLogger{t},
		AccountSvc:     acctSvc,
		AssessmentSvc:  assessment.NewService(),
		FeedbackSvc:    feedback.NewService(),
		ReportSvc:      report.NewService(acctSvc),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	s := srv.(*server)
	return &testServer{Server: srv, auth: s.auth, acctSvc: acctSvc, mailSvc: mailSvc}
}

// testLogger forwards server errors to the test log.
type testLogger struct{ t *testing.T }

func (l testLogger) Enable(_ bool)                         {}
func (l testLogger) Debug(msg string, args ...interface{}) { l.t.Logf("DEBUG %s %v", msg, args) }
func (l testLogger) Info(msg string, args ...interface{})  { l.t.Logf("INFO %s %v", msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})  { l.t.Logf("WARN %s %v", msg, args) }
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Logf("ERROR %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatalf("FATAL %s %v", msg, args) }

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func (ts *testServer) registerAccount(t *testing.T, name, email, role string) account.Account {
	t.Helper()
	acct, err := ts.acctSvc.Register(account.NewAccount{Name: name, Email: email, Password: "LordOfThens", Role: role})
	if err != nil {
		t.Fatalf("registerAccount(%s) failed: %v", email, err)
	}
	return acct
}

func (ts *testServer) getToken(t *testing.T, acct account.Account) string {
	t.Helper()
	token, err := ts.auth.GenerateToken(ts.auth.GetAccountClaims(acct))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	l1, ok1 := j1.([]interface{})
	l2, ok2 := j2.([]interface{})
	if ok1 && ok2 {
		return assert.ElementsMatch(t, l1, l2), nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
