package webreg

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tritonlabs/webreg/types"
)

// extractText surfaces the three failure modes shared by every read
// endpoint: a non-success status code, a verification failure (the term
// was never associated with the session), and transport errors. On
// success it returns the raw body, which is JSON on every endpoint but
// the account name one.
func extractText(resp *portalResponse) (string, error) {
	if resp.status < 200 || resp.status > 299 {
		return "", &types.StatusError{Code: resp.status, Body: resp.body}
	}
	if strings.Contains(resp.body, verifyFailErr) {
		return "", &types.PortalError{
			Reason: "verification failed, associate the term with this session first",
		}
	}
	return resp.body, nil
}

// decode unmarshals a read endpoint's body.
func decode[T any](op, body string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return out, &types.ParseError{Op: op, Err: err}
	}
	return out, nil
}

// getJSON is extractText followed by decode.
func getJSON[T any](op string, resp *portalResponse, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	body, err := extractText(resp)
	if err != nil {
		return zero, err
	}
	return decode[T](op, body)
}

// processPost interprets the envelope every mutating endpoint answers
// with: `{"OPS": "SUCCESS"}` on success, otherwise a REASON string that
// often embeds HTML markup meant for the portal's own frontend.
func processPost(resp *portalResponse) (bool, error) {
	if resp.status < 200 || resp.status > 299 {
		return false, &types.StatusError{Code: resp.status, Body: resp.body}
	}
	var envelope struct {
		Ops    string `json:"OPS"`
		Reason string `json:"REASON"`
	}
	if err := json.Unmarshal([]byte(resp.body), &envelope); err != nil {
		return false, &types.ParseError{Op: "post response", Err: err}
	}
	if envelope.Ops == "SUCCESS" {
		return true, nil
	}
	return false, &types.PortalError{Reason: stripMarkup(envelope.Reason)}
}

// stripMarkup drops the HTML tags the portal sprinkles into its REASON
// strings, leaving the human-readable message.
func stripMarkup(reason string) string {
	reason = strings.TrimSpace(reason)
	if !strings.Contains(reason, "<") {
		return reason
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(reason))
	if err != nil {
		return reason
	}
	return strings.TrimSpace(doc.Text())
}
