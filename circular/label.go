// Package circular holds the domain model for NASA GCN Circulars: the
// segment and label types, the pure segmentation and grouping functions,
// and the deterministic header parser.
package circular

import "unicode"

// Label is a topic tag assigned to one segment of a circular. The paragraph
// vocabulary is closed; labels outside it are still carried through the
// pipeline and handled by verbatim retention downstream.
type Label string

const (
	LabelHeader     Label = "HeaderInformation"
	LabelAuthors    Label = "AuthorList"
	LabelScience    Label = "ScientificContent"
	LabelLinks      Label = "ExternalLinks"
	LabelContact    Label = "ContactInformation"
	LabelThanks     Label = "Acknowledgements"
	LabelCitation   Label = "CitationInstructions"
	LabelCorrection Label = "Correction"
)

// AllLabels lists the paragraph label vocabulary in prompt order.
var AllLabels = []Label{
	LabelHeader,
	LabelAuthors,
	LabelScience,
	LabelLinks,
	LabelContact,
	LabelThanks,
	LabelCitation,
	LabelCorrection,
}

// LabelDescriptions describes each allowed label for the classifier prompt.
var LabelDescriptions = map[Label]string{
	LabelHeader:     "Contains circular metadata.",
	LabelAuthors:    "Lists author names, possibly followed by affiliations or a 'on behalf of...' statement.",
	LabelScience:    "Describes observations, analysis, results, or interpretations of an astronomical event.",
	LabelLinks:      "Contains hyperlinks or URLs pointing to external astronomical resources.",
	LabelContact:    "Provides contact details such as email addresses or phone numbers.",
	LabelThanks:     "Expresses gratitude for assistance or contributions (explicit or implied).",
	LabelCitation:   "Indicates that the message is citable.",
	LabelCorrection: "Notes about corrections or updates to previously issued information (often starts with '[GCN OP NOTE]' or 'This circular was adjusted...').",
}

// Known reports whether l belongs to the closed paragraph vocabulary.
func (l Label) Known() bool {
	_, ok := LabelDescriptions[l]
	return ok
}

// FieldKey derives the accumulated-result key for a label: the label name
// with its first rune lower-cased ("ExternalLinks" -> "externalLinks").
func (l Label) FieldKey() string {
	if l == "" {
		return ""
	}
	r := []rune(string(l))
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
