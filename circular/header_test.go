package circular

import (
	"errors"
	"testing"
)

func TestParseHeaderWithEmail(t *testing.T) {
	header := `
        TITLE:   GCN CIRCULAR
        NUMBER:  12345
        SUBJECT: GRB110915A  MITSuME Okayama J-band upper-limit
        DATE:    11/09/16 04:24:57 GMT
        FROM:    Daisuke Kuroda at OAO/NAOJ  <dikuroda@oao.nao.ac.jp>
    `

	h, err := ParseHeader(header)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}

	if h.CircularID != "12345" {
		t.Errorf("CircularID = %q, want %q", h.CircularID, "12345")
	}
	if h.Subject != "GRB110915A  MITSuME Okayama J-band upper-limit" {
		t.Errorf("Subject = %q", h.Subject)
	}
	if h.CreatedOn != "11/09/16 04:24:57 GMT" {
		t.Errorf("CreatedOn = %q", h.CreatedOn)
	}
	if h.Submitter != "Daisuke Kuroda at OAO/NAOJ" {
		t.Errorf("Submitter = %q", h.Submitter)
	}
	if h.Email != "dikuroda@oao.nao.ac.jp" {
		t.Errorf("Email = %q", h.Email)
	}
}

func TestParseHeaderWithoutEmail(t *testing.T) {
	header := "TITLE: GCN CIRCULAR\nNUMBER: 12345\nSUBJECT: X\nDATE: D\nFROM: Name Only"

	h, err := ParseHeader(header)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Submitter != "Name Only" {
		t.Errorf("Submitter = %q, want %q", h.Submitter, "Name Only")
	}
	if h.Email != "" {
		t.Errorf("Email = %q, want empty", h.Email)
	}
}

func TestParseHeaderMalformed(t *testing.T) {
	tests := []string{
		"",
		"just some prose with no fields",
		"NUMBER: 1\nTITLE: GCN CIRCULAR\nSUBJECT: S\nDATE: D\nFROM: F", // wrong order
		"TITLE: GCN CIRCULAR\nNUMBER: 1\nSUBJECT: S",                   // truncated
	}
	for _, in := range tests {
		if _, err := ParseHeader(in); !errors.Is(err, ErrHeaderFormat) {
			t.Errorf("ParseHeader(%q) err = %v, want ErrHeaderFormat", in, err)
		}
	}
}

func TestHeaderFields(t *testing.T) {
	h := Header{CircularID: "7", Subject: "s", CreatedOn: "d", Submitter: "n", Email: "e"}
	f := h.Fields()
	if f["circularId"] != "7" || f["subject"] != "s" || f["createdOn"] != "d" ||
		f["submitter"] != "n" || f["email"] != "e" {
		t.Errorf("Fields() = %v", f)
	}
}
