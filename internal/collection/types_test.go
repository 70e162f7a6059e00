package collection

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

func TestNewCollectionDefaults(t *testing.T) {
	col := New("My APIs")
	if col.Info.ID == "" {
		t.Fatalf("expected generated id")
	}
	if col.Info.Name != "My APIs" {
		t.Fatalf("unexpected name: %s", col.Info.Name)
	}
	if col.Info.Schema != SchemaV210 {
		t.Fatalf("unexpected schema: %s", col.Info.Schema)
	}
	if col.Items == nil || len(col.Items) != 0 {
		t.Fatalf("expected empty item list")
	}

	other := New("My APIs")
	if other.Info.ID == col.Info.ID {
		t.Fatalf("expected unique ids per collection")
	}
}

func TestNewRequestDefaults(t *testing.T) {
	it := NewRequest("Ping")
	if !it.IsRequest() || it.IsFolder() {
		t.Fatalf("expected a leaf request item")
	}
	req := it.Request
	if req.Method != http.MethodGet {
		t.Fatalf("expected GET default, got %s", req.Method)
	}
	if len(req.Headers) != 0 {
		t.Fatalf("expected empty header set")
	}
	if req.URL.String() != "" {
		t.Fatalf("expected empty url")
	}
	if req.Auth == nil || req.Auth.Type != AuthNoAuth {
		t.Fatalf("expected noauth default")
	}
}

func TestNewFolderDefaults(t *testing.T) {
	it := NewFolder("Users")
	if !it.IsFolder() || it.IsRequest() {
		t.Fatalf("expected a folder item")
	}
	if len(it.Items) != 0 {
		t.Fatalf("expected empty subitems")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	col := Sample()
	col.Items = append(col.Items, func() *Item {
		it := NewRequest("Secured")
		it.Request.Auth = BearerAuth("abc")
		it.Request.Headers = []Header{
			{Key: "Accept", Value: "application/json"},
			{Key: "X-Debug", Value: "1", Disabled: true},
		}
		return it
	}())

	data, err := Marshal(col)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), "{\n  ") {
		t.Fatalf("expected pretty-printed output")
	}

	parsed, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(col, parsed) {
		t.Fatalf("round trip mismatch:\nwant %#v\ngot  %#v", col, parsed)
	}
}

func TestEmptyFolderKeepsItemKey(t *testing.T) {
	col := New("c")
	col.Items = append(col.Items, NewFolder("Empty"))

	data, err := Marshal(col)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), "\"item\": []") {
		t.Fatalf("expected empty folder to serialize its item key, got:\n%s", data)
	}

	parsed, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !parsed.Items[0].IsFolder() {
		t.Fatalf("expected empty folder to deserialize as folder")
	}
}

func TestURLAcceptsStringAndObject(t *testing.T) {
	var req Request
	input := `{"method":"GET","header":[],"url":"https://example.com/a"}`
	if err := json.Unmarshal([]byte(input), &req); err != nil {
		t.Fatalf("unmarshal string url: %v", err)
	}
	if req.URL.String() != "https://example.com/a" || req.URL.IsObject() {
		t.Fatalf("unexpected url: %#v", req.URL)
	}

	input = `{"method":"GET","header":[],"url":{"raw":"https://example.com/b","host":["example","com"]}}`
	if err := json.Unmarshal([]byte(input), &req); err != nil {
		t.Fatalf("unmarshal object url: %v", err)
	}
	if req.URL.String() != "https://example.com/b" || !req.URL.IsObject() {
		t.Fatalf("unexpected url: %#v", req.URL)
	}

	out, err := json.Marshal(req.URL)
	if err != nil {
		t.Fatalf("marshal url: %v", err)
	}
	if !strings.Contains(string(out), `"raw":"https://example.com/b"`) {
		t.Fatalf("object url should stay an object: %s", out)
	}
}

func TestBearerAuthWireFormat(t *testing.T) {
	data, err := json.Marshal(BearerAuth("abc"))
	if err != nil {
		t.Fatalf("marshal auth: %v", err)
	}
	want := `"bearer":[{"key":"token","value":"abc","type":"string"}]`
	if !strings.Contains(string(data), want) {
		t.Fatalf("expected one-element token list, got: %s", data)
	}

	var parsed Auth
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal auth: %v", err)
	}
	if parsed.Type != AuthBearer || parsed.Bearer != "abc" {
		t.Fatalf("unexpected auth: %#v", parsed)
	}
}

func TestValidateRejectsHybridNodes(t *testing.T) {
	col := New("c")
	bad := NewRequest("both")
	bad.Items = []*Item{}
	col.Items = append(col.Items, bad)

	if err := col.Validate(); err == nil {
		t.Fatalf("expected validation error for folder+request node")
	}

	col = New("c")
	col.Items = append(col.Items, &Item{Name: "neither"})
	if err := col.Validate(); err == nil {
		t.Fatalf("expected validation error for bare node")
	}
}

func TestUnmarshalRejectsMalformedInput(t *testing.T) {
	if _, err := Unmarshal([]byte("{not json")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"My APIs":        "My_APIs",
		"a/b\\c:d":       "a_b_c_d",
		"safe-name_1":    "safe-name_1",
		"smörgås": "sm_rg_s",
	}
	for in, want := range cases {
		if got := SanitizeName(in); got != want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
