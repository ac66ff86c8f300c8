package diffx

import (
	"encoding/base64"
	"testing"

	json "github.com/goccy/go-json"
)

func TestMarshalJSON_Document(t *testing.T) {
	doc := mustParse(t, sampleInput())
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got struct {
		Title string `json:"title"`
		Root  struct {
			Encoding string `json:"encoding"`
			Children map[string]struct {
				Encoding string            `json:"encoding"`
				Options  map[string]string `json:"options"`
				Text     *string           `json:"text"`
				Data     *string           `json:"data"`
			} `json:"children"`
		} `json:"root"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Title != "document" || got.Root.Encoding != "binary" {
		t.Fatalf("document = %+v", got)
	}

	meta, ok := got.Root.Children["meta"]
	if !ok {
		t.Fatalf("children = %v", got.Root.Children)
	}
	if meta.Data == nil {
		t.Fatal("binary payload must render as data")
	}
	raw, err := base64.StdEncoding.DecodeString(*meta.Data)
	if err != nil || string(raw) != "version" {
		t.Fatalf("meta data = %v (%v)", meta.Data, err)
	}
	if meta.Text != nil {
		t.Fatal("binary payload must not render as text")
	}

	files := got.Root.Children["files"]
	if files.Encoding != "utf-8" || files.Options["encoding"] != "utf-8" {
		t.Fatalf("files = %+v", files)
	}
}

func TestMarshalJSON_TextSection(t *testing.T) {
	doc := mustParse(t, []byte("#x: content-length=5,encoding=utf-8\nhello\n"))
	b, err := json.Marshal(doc.Root)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Text *string `json:"text"`
		Data *string `json:"data"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if got.Text == nil || *got.Text != "hello" {
		t.Fatalf("text = %v", got.Text)
	}
	if got.Data != nil {
		t.Fatal("text payload must not render as data")
	}
}
