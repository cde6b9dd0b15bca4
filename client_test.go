package webreg_test

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tritonlabs/webreg"
	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
	"github.com/tritonlabs/webreg/webregtest"
)

func newTestClient(t *testing.T) (*webreg.Client, *webregtest.Portal) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	portal := webregtest.NewPortal(logrus.NewEntry(log))
	t.Cleanup(portal.Close)

	client, err := webreg.NewBuilder().
		WithBaseURL(portal.Server.URL).
		WithCookies(portal.NewSession()).
		WithDefaultTerm("FA23").
		WithLogger(logrus.NewEntry(log)).
		Build()
	require.NoError(t, err)
	return client, portal
}

func TestBuilderRequiresCookies(t *testing.T) {
	_, err := webreg.NewBuilder().Build()
	var inputErr *types.InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "cookies", inputErr.Field)
}

func TestPingAndAccountName(t *testing.T) {
	client, portal := newTestClient(t)
	portal.AccountName = "Triton, Sammy"
	ctx := context.Background()

	assert.True(t, client.Ping(ctx))
	assert.True(t, client.IsValid(ctx))

	name, err := client.AccountName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Triton, Sammy", name)
}

func TestPingUnknownSession(t *testing.T) {
	client, _ := newTestClient(t)
	client.SetCookies("jlinksessionidx=stale")
	assert.False(t, client.Ping(context.Background()))
}

func TestTermsAndAssociation(t *testing.T) {
	client, portal := newTestClient(t)
	portal.Terms = []raw.TermListItem{
		{SeqID: 5320, TermCode: "FA23"},
		{SeqID: 5330, TermCode: "WI24"},
	}
	portal.SearchResults = []raw.CourseResult{
		{SubjCode: "CSE ", CourseCode: " 101", CourseTitle: "Design & Analysis of Algorithm"},
	}
	ctx := context.Background()

	terms, err := client.Terms(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Term{
		{SeqID: 5320, TermCode: "FA23"},
		{SeqID: 5330, TermCode: "WI24"},
	}, terms)

	// Term endpoints refuse to answer before the term is associated.
	_, err = client.DefaultRequest().SearchCourses(ctx, webreg.NewSearchFilter())
	var portalErr *types.PortalError
	require.ErrorAs(t, err, &portalErr)
	assert.Contains(t, portalErr.Reason, "associate the term")

	require.NoError(t, client.AssociateTerm(ctx, "fa23"))
	assert.True(t, portal.Associated(client.Cookies(), "FA23"))

	results, err := client.DefaultRequest().SearchCourses(ctx, webreg.NewSearchFilter())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "CSE", results[0].SubjectCode)
	assert.Equal(t, "101", results[0].CourseCode)

	// Unknown term tokens are rejected before any request goes out.
	var inputErr *types.InputError
	assert.ErrorAs(t, client.AssociateTerm(ctx, "XX99"), &inputErr)
}

func TestRegisterAllTerms(t *testing.T) {
	client, portal := newTestClient(t)
	portal.Terms = []raw.TermListItem{
		{SeqID: 5320, TermCode: "FA23"},
		{SeqID: 5330, TermCode: "WI24"},
	}
	require.NoError(t, client.RegisterAllTerms(context.Background()))
	assert.True(t, portal.Associated(client.Cookies(), "FA23"))
	assert.True(t, portal.Associated(client.Cookies(), "WI24"))
}

func TestCourseInfoOverHTTP(t *testing.T) {
	client, portal := newTestClient(t)
	portal.CourseRows = []raw.Meeting{
		{
			SectionID: "079900", SectCode: "A00", DisplayType: "AC",
			MeetingType: "LE", DayCode: "135",
			StartHour: 10, EndHour: 10, EndMin: 50,
			Instructors: "Jones, Miles ;A100", PrintFlag: "Y",
		},
		{
			SectionID: "079911", SectCode: "A01", DisplayType: "AC",
			MeetingType: "DI", DayCode: "1",
			StartHour: 16, EndHour: 16, EndMin: 50,
			Instructors:    "Jones, Miles ;A100",
			AvailableSeats: 5, EnrolledCount: 25, SectionCapacity: 30,
			PrintFlag: "Y",
		},
	}
	ctx := context.Background()
	require.NoError(t, client.AssociateTerm(ctx, "FA23"))

	sections, err := client.DefaultRequest().CourseInfo(ctx, "CSE", "101")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "CSE 101", sections[0].SubjCourseID)
	assert.Equal(t, "A01", sections[0].SectionCode)
	assert.Len(t, sections[0].Meetings, 2)
}

func TestScheduleOverHTTP(t *testing.T) {
	client, portal := newTestClient(t)
	enrolled := int64(30)
	capacity := int64(30)
	portal.ScheduleRows = []raw.ScheduledMeeting{
		{
			SectionID: 79911, SectCode: "A00",
			SubjectCode: "CSE", CourseCode: "101",
			CourseTitle: "Design & Analysis of Algorithm",
			GradeOption: "L", CreditHours: 4, EnrollStatus: "EN",
			MeetingType: "LE", DayCode: "135",
			StartHour: 10, EndHour: 10, EndMin: 50,
			Instructors:   "Jones, Miles ;A100",
			EnrolledCount: &enrolled, SectionCapacity: &capacity,
		},
	}
	ctx := context.Background()
	require.NoError(t, client.AssociateTerm(ctx, "FA23"))

	schedule, err := client.DefaultRequest().Schedule(ctx, "")
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	assert.Equal(t, "79911", schedule[0].SectionID)
	assert.Equal(t, types.Enrolled(), schedule[0].EnrolledStatus)

	names, err := client.DefaultRequest().ScheduleNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"My Schedule"}, names)
}

func TestAddToPlan(t *testing.T) {
	client, portal := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.AssociateTerm(ctx, "FA23"))

	ok, err := client.DefaultRequest().AddToPlan(ctx, webreg.PlanAdd{
		SubjectCode: "CSE",
		CourseCode:  "8B",
		SectionID:   "079911",
		SectionCode: "A01",
		UnitCount:   4,
	}, true)
	require.NoError(t, err)
	assert.True(t, ok)

	form := portal.LastForm["/webreg2/svc/wradapter/secure/plan-add"]
	require.NotNil(t, form)
	assert.Equal(t, "CSE", form["subjcode"])
	assert.Equal(t, "  8B", form["crsecode"])
	assert.Equal(t, "079911", form["sectnum"])
	assert.Equal(t, "A01", form["sectcode"])
	assert.Equal(t, "4", form["unit"])
	assert.Equal(t, "L", form["grade"])
	assert.Equal(t, "FA23", form["termcode"])
	assert.Equal(t, webreg.DefaultScheduleName, form["schedname"])

	// Validate ran through the edit endpoint first.
	assert.NotNil(t, portal.LastForm["/webreg2/svc/wradapter/secure/edit-plan"])
}

func TestAddSection(t *testing.T) {
	client, portal := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.AssociateTerm(ctx, "FA23"))

	ok, err := client.DefaultRequest().AddSection(ctx, webreg.AddEnroll, webreg.EnrollAdd{
		SectionID:     "079911",
		GradingOption: webreg.GradeOptionPass,
	}, false)
	require.NoError(t, err)
	assert.True(t, ok)

	form := portal.LastForm["/webreg2/svc/wradapter/secure/add-enroll"]
	require.NotNil(t, form)
	assert.Equal(t, "079911", form["section"])
	assert.Equal(t, "P", form["grade"])
	assert.Equal(t, "", form["unit"])

	// A successful enrollment also clears the section from every plan.
	removeAll := portal.LastForm["/webreg2/svc/wradapter/secure/plan-remove-all"]
	require.NotNil(t, removeAll)
	assert.Equal(t, "079911", removeAll["sectnum"])
}

func TestAddSectionRejected(t *testing.T) {
	client, portal := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.AssociateTerm(ctx, "FA23"))
	portal.Reject["/webreg2/svc/wradapter/secure/add-wait"] = "You cannot enroll in this course."

	_, err := client.DefaultRequest().AddSection(ctx, webreg.AddWaitlist, webreg.EnrollAdd{
		SectionID: "079911",
	}, false)
	var portalErr *types.PortalError
	require.ErrorAs(t, err, &portalErr)
	assert.Equal(t, "You cannot enroll in this course.", portalErr.Reason)
	assert.NotNil(t, portal.LastForm["/webreg2/svc/wradapter/secure/add-wait"])
}

func TestAddSectionStopsOnFailedValidate(t *testing.T) {
	client, portal := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.AssociateTerm(ctx, "FA23"))
	portal.Reject["/webreg2/svc/wradapter/secure/edit-enroll"] = "Section is restricted."

	_, err := client.DefaultRequest().AddSection(ctx, webreg.AddEnroll, webreg.EnrollAdd{
		SectionID: "079911",
	}, true)
	var portalErr *types.PortalError
	require.ErrorAs(t, err, &portalErr)
	assert.Equal(t, "Section is restricted.", portalErr.Reason)

	// The rejected validation stops the sequence before the commit.
	assert.NotNil(t, portal.LastForm["/webreg2/svc/wradapter/secure/edit-enroll"])
	assert.Nil(t, portal.LastForm["/webreg2/svc/wradapter/secure/add-enroll"])
	assert.Nil(t, portal.LastForm["/webreg2/svc/wradapter/secure/plan-remove-all"])
}

func TestAddToPlanValidateRejectionStillPlans(t *testing.T) {
	client, portal := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.AssociateTerm(ctx, "FA23"))
	portal.Reject["/webreg2/svc/wradapter/secure/edit-plan"] = "Major restricted."

	// Plan validation can reject courses the portal still lets you plan,
	// so a rejection there must not abort the plan itself.
	ok, err := client.DefaultRequest().AddToPlan(ctx, webreg.PlanAdd{
		SubjectCode: "CSE",
		CourseCode:  "101",
		SectionID:   "079911",
		SectionCode: "A01",
		UnitCount:   4,
	}, true)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NotNil(t, portal.LastForm["/webreg2/svc/wradapter/secure/edit-plan"])
	form := portal.LastForm["/webreg2/svc/wradapter/secure/plan-add"]
	require.NotNil(t, form)
	assert.Equal(t, "079911", form["sectnum"])
}

func TestEventsOverHTTP(t *testing.T) {
	client, portal := newTestClient(t)
	portal.Events = []raw.Event{
		{
			Description: "Gym", Location: "RIMAC",
			StartTime: "0700", EndTime: "0830",
			Days: "1010100", TimeStamp: "2023-04-01 10:00:00.000000",
		},
	}
	ctx := context.Background()
	require.NoError(t, client.AssociateTerm(ctx, "FA23"))
	req := client.DefaultRequest()

	events, err := req.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Gym", events[0].Name)

	ok, err := req.AddEvent(ctx, webreg.EventAdd{
		Name:      "Office Hours",
		StartHour: 14, EndHour: 15,
		Days: []webreg.DayOfWeek{webreg.Tuesday, webreg.Thursday},
	})
	require.NoError(t, err)
	assert.True(t, ok)
	form := portal.LastForm["/webreg2/svc/wradapter/secure/event-add"]
	require.NotNil(t, form)
	assert.Equal(t, "Office Hours", form["aename"])
	assert.Equal(t, "1400", form["aestarttime"])
	assert.Equal(t, "1500", form["aeendtime"])
	assert.Equal(t, "0101000", form["aedays"])

	// Invalid events never reach the portal.
	var inputErr *types.InputError
	_, err = req.AddEvent(ctx, webreg.EventAdd{Name: "x", StartHour: 3, EndHour: 4, Days: []webreg.DayOfWeek{webreg.Monday}})
	assert.ErrorAs(t, err, &inputErr)

	_, err = req.EditEvent(ctx, webreg.EventAdd{
		Name: "Office Hours", StartHour: 14, EndHour: 15,
		Days: []webreg.DayOfWeek{webreg.Tuesday},
	}, "")
	assert.ErrorAs(t, err, &inputErr)

	ok, err = req.RemoveEvent(ctx, "2023-04-01 10:00:00.000000")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSendEmailToSelf(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	require.NoError(t, client.DefaultRequest().SendEmailToSelf(ctx, "enrolled in CSE 101"))
}

func TestScheduleGuards(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	req := client.DefaultRequest()

	var inputErr *types.InputError
	_, err := req.RenameSchedule(ctx, webreg.DefaultScheduleName, "New")
	assert.ErrorAs(t, err, &inputErr)
	_, err = req.RemoveSchedule(ctx, webreg.DefaultScheduleName)
	assert.ErrorAs(t, err, &inputErr)
}
