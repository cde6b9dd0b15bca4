// Package webregtest runs an in-process stand-in for the registration
// portal's service adapter, for tests that need a real HTTP surface
// without a real session.
package webregtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tritonlabs/webreg/raw"
)

const sessionCookie = "jlinksessionidx"

// verifyFail is the body the real portal answers with when the request's
// term was never associated with the session.
const verifyFail = `[{"VERIFY":"FAIL"}]`

// Portal is a fake portal backend. Populate the exported fixture fields,
// then point a client at Server.URL. Every secure endpoint requires a
// session cookie issued by NewSession, and the term-scoped endpoints
// additionally require the term to have been associated first, exactly
// like the real portal.
type Portal struct {
	Server *httptest.Server

	// Fixtures served by the read endpoints.
	Terms         []raw.TermListItem
	SearchResults []raw.CourseResult
	CourseRows    []raw.Meeting
	ScheduleRows  []raw.ScheduledMeeting
	Prereqs       []raw.Prerequisite
	Subjects      []raw.SubjectElement
	Departments   []raw.DepartmentElement
	Events        []raw.Event
	ScheduleNames []string
	AccountName   string

	// Reject maps an endpoint path to a REASON; a mutating endpoint with
	// an entry here answers with that failure instead of succeeding,
	// leaving the other endpoints untouched.
	Reject map[string]string

	log *logrus.Entry

	mu       sync.RWMutex
	sessions map[string]map[string]bool
	// LastForm records the form values of the most recent POST, keyed by
	// endpoint path, so tests can check what actually went over the wire.
	LastForm map[string]map[string]string
}

// NewPortal starts the fake portal. Callers own the returned Portal and
// must Close it.
func NewPortal(log *logrus.Entry) *Portal {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	p := &Portal{
		log:           log,
		sessions:      map[string]map[string]bool{},
		LastForm:      map[string]map[string]string{},
		Reject:        map[string]string{},
		ScheduleNames: []string{"My Schedule"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /webreg2/svc/wradapter/secure/ping-server", p.withSession(p.handlePing))
	mux.HandleFunc("GET /webreg2/svc/wradapter/get-current-name", p.withSession(p.handleAccountName))
	mux.HandleFunc("GET /webreg2/svc/wradapter/get-term", p.withSession(p.handleTerms))
	mux.HandleFunc("GET /webreg2/svc/wradapter/get-status-start", p.withSession(p.handleAssociate))
	mux.HandleFunc("GET /webreg2/svc/wradapter/check-eligibility", p.withSession(p.handleAssociate))

	mux.HandleFunc("GET /webreg2/svc/wradapter/secure/search-by-all", p.withTerm(p.serveJSON(&p.SearchResults)))
	mux.HandleFunc("GET /webreg2/svc/wradapter/secure/search-by-sectionid", p.withTerm(p.serveJSON(&p.CourseRows)))
	mux.HandleFunc("GET /webreg2/svc/wradapter/secure/search-load-group-data", p.withTerm(p.serveJSON(&p.CourseRows)))
	mux.HandleFunc("GET /webreg2/svc/wradapter/secure/get-prerequisites", p.withTerm(p.serveJSON(&p.Prereqs)))
	mux.HandleFunc("GET /webreg2/svc/wradapter/secure/search-load-subject", p.withTerm(p.serveJSON(&p.Subjects)))
	mux.HandleFunc("GET /webreg2/svc/wradapter/secure/search-load-department", p.withTerm(p.serveJSON(&p.Departments)))
	mux.HandleFunc("GET /webreg2/svc/wradapter/secure/get-class", p.withTerm(p.serveJSON(&p.ScheduleRows)))
	mux.HandleFunc("GET /webreg2/svc/wradapter/secure/sched-get-schednames", p.withTerm(p.serveJSON(&p.ScheduleNames)))
	mux.HandleFunc("GET /webreg2/svc/wradapter/secure/event-get", p.withTerm(p.serveJSON(&p.Events)))

	for _, path := range []string{
		"/webreg2/svc/wradapter/secure/plan-add",
		"/webreg2/svc/wradapter/secure/edit-plan",
		"/webreg2/svc/wradapter/secure/plan-remove",
		"/webreg2/svc/wradapter/secure/plan-remove-all",
		"/webreg2/svc/wradapter/secure/plan-rename",
		"/webreg2/svc/wradapter/secure/sched-remove",
		"/webreg2/svc/wradapter/secure/add-enroll",
		"/webreg2/svc/wradapter/secure/edit-enroll",
		"/webreg2/svc/wradapter/secure/drop-enroll",
		"/webreg2/svc/wradapter/secure/add-wait",
		"/webreg2/svc/wradapter/secure/edit-wait",
		"/webreg2/svc/wradapter/secure/drop-wait",
		"/webreg2/svc/wradapter/secure/change-enroll",
		"/webreg2/svc/wradapter/secure/event-add",
		"/webreg2/svc/wradapter/secure/event-edit",
		"/webreg2/svc/wradapter/secure/event-remove",
	} {
		mux.HandleFunc("POST "+path, p.withSession(p.handleMutation))
	}

	mux.HandleFunc("POST /webreg2/svc/wradapter/secure/send-email", p.withSession(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"YES"`))
	}))

	p.Server = httptest.NewServer(mux)
	return p
}

func (p *Portal) Close() {
	p.Server.Close()
}

// NewSession issues a session and returns the cookie header value a
// client should carry.
func (p *Portal) NewSession() string {
	id := uuid.New().String()
	p.mu.Lock()
	p.sessions[id] = map[string]bool{}
	p.mu.Unlock()
	return sessionCookie + "=" + id
}

// Associated reports whether the session behind the cookie value has
// associated the given term.
func (p *Portal) Associated(cookies, term string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	terms, ok := p.sessions[sessionID(cookies)]
	return ok && terms[term]
}

func sessionID(cookieHeader string) string {
	header := http.Header{"Cookie": {cookieHeader}}
	req := http.Request{Header: header}
	cookie, err := req.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (p *Portal) session(r *http.Request) (map[string]bool, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	terms, ok := p.sessions[cookie.Value]
	return terms, ok
}

func (p *Portal) withSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := p.session(r); !ok {
			p.log.WithField("path", r.URL.Path).Error("request without a known session cookie")
			http.Error(w, "not logged in", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// withTerm additionally requires ?termcode to be associated, answering
// with the portal's verification failure body otherwise.
func (p *Portal) withTerm(next http.HandlerFunc) http.HandlerFunc {
	return p.withSession(func(w http.ResponseWriter, r *http.Request) {
		terms, _ := p.session(r)
		term := r.URL.Query().Get("termcode")
		if !terms[term] {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(verifyFail))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (p *Portal) handlePing(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{"SESSION_OK": true})
}

func (p *Portal) handleAccountName(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(p.AccountName))
}

func (p *Portal) handleTerms(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(p.Terms)
}

// handleAssociate marks the termcode as associated with the session. The
// real portal needs both the status and eligibility calls; the fake
// accepts either.
func (p *Portal) handleAssociate(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("termcode")
	if term == "" || r.URL.Query().Get("seqid") == "" {
		p.log.WithField("query", r.URL.RawQuery).Error("association without termcode or seqid")
		http.Error(w, "termcode and seqid are required", http.StatusBadRequest)
		return
	}
	cookie, _ := r.Cookie(sessionCookie)
	p.mu.Lock()
	p.sessions[cookie.Value][term] = true
	p.mu.Unlock()
	w.Write([]byte("{}"))
}

// serveJSON answers with whatever the fixture pointer holds at request
// time, so tests can swap fixtures between calls.
func (p *Portal) serveJSON(fixture any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(fixture)
	}
}

func (p *Portal) handleMutation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "could not parse form", http.StatusBadRequest)
		return
	}
	form := map[string]string{}
	for key := range r.PostForm {
		form[key] = r.PostForm.Get(key)
	}
	p.mu.Lock()
	p.LastForm[r.URL.Path] = form
	reject := p.Reject[r.URL.Path]
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if reject != "" {
		json.NewEncoder(w).Encode(map[string]string{"OPS": "FAIL", "REASON": reject})
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"OPS": "SUCCESS"})
}
