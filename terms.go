package webreg

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/tritonlabs/webreg/parse"
	"github.com/tritonlabs/webreg/raw"
	"github.com/tritonlabs/webreg/types"
)

// Ping checks whether the session behind the cookies is still alive.
// The portal's frontend calls this endpoint periodically; sessions that
// stop pinging are eventually logged out.
func (c *Client) Ping(ctx context.Context) bool {
	resp, err := c.ForTerm("").get(ctx, urlPing, url.Values{"_": {epochMillis()}})
	if err != nil || resp.status < 200 || resp.status > 299 {
		return false
	}
	var status struct {
		SessionOK bool `json:"SESSION_OK"`
	}
	if err := json.Unmarshal([]byte(resp.body), &status); err != nil {
		return false
	}
	return status.SessionOK
}

// IsValid reports whether the client's cookies belong to a live
// session.
func (c *Client) IsValid(ctx context.Context) bool {
	return c.Ping(ctx)
}

// AccountName returns the name of the account owner.
func (c *Client) AccountName(ctx context.Context) (string, error) {
	if !c.IsValid(ctx) {
		return "", types.ErrSessionNotValid
	}
	resp, err := c.ForTerm("").get(ctx, urlAccountName, nil)
	if err != nil {
		return "", err
	}
	return extractText(resp)
}

// Terms lists every term currently available on the portal.
func (c *Client) Terms(ctx context.Context) ([]types.Term, error) {
	query := url.Values{"_": {epochMillis()}}
	resp, respErr := c.ForTerm("").get(ctx, urlTermList, query)
	rows, err := getJSON[[]raw.TermListItem]("term list", resp, respErr)
	if err != nil {
		return nil, err
	}
	terms := make([]types.Term, 0, len(rows))
	for _, row := range rows {
		terms = append(terms, types.Term{SeqID: row.SeqID, TermCode: strings.TrimSpace(row.TermCode)})
	}
	return terms, nil
}

// AssociateTerm associates a term with the session. Fresh cookies are
// not tied to any term; until a term is associated, every endpoint for
// that term answers with a verification failure.
func (c *Client) AssociateTerm(ctx context.Context, term string) error {
	return c.ForTerm(term).AssociateTerm(ctx)
}

// RegisterAllTerms associates every available term with the session.
func (c *Client) RegisterAllTerms(ctx context.Context) error {
	terms, err := c.Terms(ctx)
	if err != nil {
		return err
	}
	for _, term := range terms {
		if err := c.AssociateTerm(ctx, term.TermCode); err != nil {
			return err
		}
	}
	return nil
}

// AssociateTerm associates this request's term with the session used by
// this request, honoring any cookie override on the handle.
//
// The portal's frontend makes the same two calls when a term is opened;
// both must succeed for the association to stick.
func (r *Request) AssociateTerm(ctx context.Context) error {
	term := strings.ToUpper(r.term)
	seqID := parse.TermSeqID(term)
	if seqID == 0 {
		return &types.InputError{Field: "term", Reason: "term is not valid"}
	}
	seqIDStr := strconv.FormatInt(seqID, 10)

	statusResp, statusErr := r.get(ctx, urlStatusStart, url.Values{
		"termcode": {term},
		"seqid":    {seqIDStr},
		"_":        {epochMillis()},
	})
	if _, err := getJSON[json.RawMessage]("status start", statusResp, statusErr); err != nil {
		return err
	}
	eligResp, eligErr := r.get(ctx, urlEligibility, url.Values{
		"termcode": {term},
		"seqid":    {seqIDStr},
		"logged":   {"true"},
		"_":        {epochMillis()},
	})
	if _, err := getJSON[json.RawMessage]("eligibility", eligResp, eligErr); err != nil {
		return err
	}
	return nil
}

// SendEmailToSelf sends an email with the given content to the email
// address on file for the account.
func (r *Request) SendEmailToSelf(ctx context.Context, content string) error {
	resp, err := r.postForm(ctx, urlSendEmail, url.Values{
		"actionevent": {content},
		"termcode":    {r.term},
	})
	if err != nil {
		return err
	}
	body, err := extractText(resp)
	if err != nil {
		return err
	}
	if !strings.Contains(body, `"YES"`) {
		return &types.PortalError{Reason: "email could not be sent"}
	}
	return nil
}
