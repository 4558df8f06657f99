package circular

import (
	"errors"
	"regexp"
	"strings"
)

// ErrHeaderFormat is returned when the header paragraph does not match the
// fixed GCN Circular layout. Header parse failure is fatal for a run: the
// document is not usable without its metadata.
var ErrHeaderFormat = errors.New("circular: header does not match expected GCN Circular format")

// Header holds the parsed metadata of a circular's header paragraph.
type Header struct {
	CircularID string
	Subject    string
	CreatedOn  string
	Submitter  string
	Email      string
}

// Fields renders the header as an accumulated-result fragment.
func (h Header) Fields() map[string]any {
	return map[string]any{
		"circularId": h.CircularID,
		"subject":    h.Subject,
		"createdOn":  h.CreatedOn,
		"submitter":  h.Submitter,
		"email":      h.Email,
	}
}

// The header layout is TITLE, NUMBER, SUBJECT, DATE, FROM, each on its own
// logical line, in that order. Field values stay within their line; the
// whitespace runs between fields may span newlines.
var (
	headerRe = regexp.MustCompile(
		`TITLE:\s*(.*?)\s*NUMBER:\s*(.*?)\s*SUBJECT:\s*(.*?)\s*DATE:\s*(.*?)\s*FROM:\s*(.*?)(?:\s*\n|$)`)
	fromEmailRe = regexp.MustCompile(`^\s*(.*?)\s*<([^>]+)>\s*$`)
)

// ParseHeader parses a HeaderInformation paragraph. The FROM field may end
// in an angle-bracket email ("Name <e@x>"); when absent, Submitter is the
// whole field and Email is empty.
func ParseHeader(paragraph string) (Header, error) {
	m := headerRe.FindStringSubmatch(paragraph)
	if m == nil {
		return Header{}, ErrHeaderFormat
	}

	// Group 1 is TITLE (the constant "GCN CIRCULAR" banner), group 2 the
	// circular number.
	h := Header{
		CircularID: strings.TrimSpace(m[2]),
		Subject:    strings.TrimSpace(m[3]),
		CreatedOn:  strings.TrimSpace(m[4]),
	}

	from := m[5]
	if em := fromEmailRe.FindStringSubmatch(from); em != nil {
		h.Submitter = strings.TrimSpace(em[1])
		h.Email = strings.TrimSpace(em[2])
	} else {
		h.Submitter = strings.TrimSpace(from)
	}
	return h, nil
}
