package diffx

import (
	"encoding/base64"

	json "github.com/goccy/go-json"
)

// jsonSection is the wire shape of a Section for inspection tooling:
// exactly one of Children, Text, or Data is populated, mirroring the
// content variants. Raw payloads render as base64.
type jsonSection struct {
	Encoding string                  `json:"encoding"`
	Options  map[string]string       `json:"options,omitempty"`
	Children map[string]*jsonSection `json:"children,omitempty"`
	Text     *string                 `json:"text,omitempty"`
	Data     *string                 `json:"data,omitempty"`
}

func toJSONSection(s *Section) *jsonSection {
	out := &jsonSection{Encoding: s.Encoding.String(), Options: s.Options}
	switch content := s.Content.(type) {
	case ChildSections:
		out.Children = make(map[string]*jsonSection, len(content))
		for title, child := range content {
			out.Children[title] = toJSONSection(child)
		}
	case EncodedData:
		text := string(content)
		out.Text = &text
	case RawData:
		data := base64.StdEncoding.EncodeToString(content)
		out.Data = &data
	}
	return out
}

// MarshalJSON renders the section for inspection and logging. It is a
// one-way bridge; there is no JSON unmarshaller.
func (s *Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONSection(s))
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Title string   `json:"title"`
		Root  *Section `json:"root"`
	}{Title: d.Title, Root: d.Root})
}
