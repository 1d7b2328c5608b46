package appledocs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Document is the subset of the documentation JSON API payload that is rendered.
type Document struct {
	Metadata               Metadata         `json:"metadata"`
	Abstract               []Inline         `json:"abstract"`
	PrimaryContentSections []ContentSection `json:"primaryContentSections"`
	TopicSections          []TopicSection   `json:"topicSections"`
	SeeAlsoSections        []TopicSection   `json:"seeAlsoSections"`
	RelationshipsSections  []TopicSection   `json:"relationshipsSections"`
	References             References       `json:"references"`
}

// Metadata describes the documented symbol or article.
type Metadata struct {
	Title       string     `json:"title"`
	Role        string     `json:"role"`
	RoleHeading string     `json:"roleHeading"`
	Platforms   []Platform `json:"platforms"`
}

// Platform is an availability entry.
type Platform struct {
	Name         string `json:"name"`
	IntroducedAt string `json:"introducedAt"`
	DeprecatedAt string `json:"deprecatedAt"`
	Beta         bool   `json:"beta"`
	Deprecated   bool   `json:"deprecated"`
}

// Inline is a run of inline content.
type Inline struct {
	Type          string   `json:"type"`
	Text          string   `json:"text"`
	Code          string   `json:"code"`
	InlineContent []Inline `json:"inlineContent"`
}

// ContentSection is an element of primaryContentSections.
type ContentSection struct {
	Kind         string         `json:"kind"`
	Declarations []Declaration  `json:"declarations"`
	Parameters   []Parameter    `json:"parameters"`
	Content      []ContentBlock `json:"content"`
}

// Declaration is a tokenized symbol declaration.
type Declaration struct {
	Tokens    []Inline `json:"tokens"`
	Languages []string `json:"languages"`
}

// Parameter documents one parameter of a symbol.
type Parameter struct {
	Name    string         `json:"name"`
	Content []ContentBlock `json:"content"`
}

// ContentBlock is a block of rich content.
type ContentBlock struct {
	Type          string     `json:"type"`
	Level         int        `json:"level"`
	Text          string     `json:"text"`
	InlineContent []Inline   `json:"inlineContent"`
	Items         []ListItem `json:"items"`
}

// ListItem is an entry of an unordered list.
type ListItem struct {
	Content []ContentBlock `json:"content"`
}

// TopicSection groups references under a title.
type TopicSection struct {
	Title       string   `json:"title"`
	Identifiers []string `json:"identifiers"`
}

// Reference is an entry of the document's reference table.
type Reference struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Role     string   `json:"role"`
	Kind     string   `json:"kind"`
	Abstract []Inline `json:"abstract"`
}

// References is the reference table, keyed by identifier, in payload order.
type References struct {
	Keys []string
	ByID map[string]Reference
}

// Get returns the reference with the given identifier.
func (r References) Get(id string) (Reference, bool) {
	ref, ok := r.ByID[id]
	return ref, ok
}

// Len returns the number of references.
func (r References) Len() int {
	return len(r.Keys)
}

// UnmarshalJSON decodes the reference object while keeping key order, which
// decides the reference followed for documents without primary content.
func (r *References) UnmarshalJSON(data []byte) error {
	obj := gjson.ParseBytes(data)
	if obj.Type == gjson.Null {
		return nil
	}
	if !obj.IsObject() {
		return fmt.Errorf("references: expected object, got %s", obj.Type)
	}

	r.Keys = nil
	r.ByID = make(map[string]Reference)
	var err error
	obj.ForEach(func(key, value gjson.Result) bool {
		var ref Reference
		if err = json.Unmarshal([]byte(value.Raw), &ref); err != nil {
			err = fmt.Errorf("references[%s]: %w", key.String(), err)
			return false
		}
		id := key.String()
		if _, dup := r.ByID[id]; !dup {
			r.Keys = append(r.Keys, id)
		}
		r.ByID[id] = ref
		return true
	})
	return err
}

// inlineText joins the text of inline runs, descending into nested content.
func inlineText(runs []Inline) string {
	var b strings.Builder
	for _, in := range runs {
		switch {
		case in.Text != "":
			b.WriteString(in.Text)
		case in.Code != "":
			b.WriteString("`" + in.Code + "`")
		default:
			b.WriteString(inlineText(in.InlineContent))
		}
	}
	return b.String()
}

// blockText returns the plain text of content blocks joined by spaces.
func blockText(blocks []ContentBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, bl := range blocks {
		if bl.Text != "" {
			parts = append(parts, bl.Text)
			continue
		}
		if t := inlineText(bl.InlineContent); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// abstractText returns the plain text of an abstract.
func abstractText(runs []Inline) string {
	return strings.TrimSpace(inlineText(runs))
}
