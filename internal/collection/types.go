package collection

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/haim4shekel213/apiforge/internal/errdef"
)

// SchemaV210 is the collection schema written by New and expected on import.
const SchemaV210 = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

var Methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
}

type Info struct {
	ID          string `json:"_postman_id"`
	Name        string `json:"name"`
	Schema      string `json:"schema"`
	ExporterID  string `json:"_exporter_id,omitempty"`
	Description string `json:"description,omitempty"`
}

type Collection struct {
	Info  Info    `json:"info"`
	Items []*Item `json:"item"`
}

// Item is a node in the collection tree. A folder carries a non-nil Items
// slice, a leaf carries a Request; a node may not carry both.
type Item struct {
	Name      string
	Items     []*Item
	Request   *Request
	Responses []json.RawMessage
}

type itemWire struct {
	Name      string            `json:"name"`
	Items     []*Item           `json:"item,omitempty"`
	Request   *Request          `json:"request,omitempty"`
	Responses []json.RawMessage `json:"response,omitempty"`
}

// MarshalJSON keeps the "item" key for empty folders. The default omitempty
// would drop it and the node would deserialize as neither folder nor leaf.
func (it *Item) MarshalJSON() ([]byte, error) {
	if it.Items != nil {
		type folderWire struct {
			Name  string  `json:"name"`
			Items []*Item `json:"item"`
		}
		return json.Marshal(folderWire{Name: it.Name, Items: it.Items})
	}
	return json.Marshal(itemWire{
		Name:      it.Name,
		Request:   it.Request,
		Responses: it.Responses,
	})
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var wire itemWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	it.Name = wire.Name
	it.Items = wire.Items
	it.Request = wire.Request
	it.Responses = wire.Responses
	return nil
}

func (it *Item) IsFolder() bool {
	return it != nil && it.Items != nil
}

func (it *Item) IsRequest() bool {
	return it != nil && it.Request != nil
}

type Header struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Type     string `json:"type,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

const (
	BodyModeRaw        = "raw"
	BodyModeFormData   = "formdata"
	BodyModeURLEncoded = "urlencoded"
	BodyModeFile       = "file"
	BodyModeGraphQL    = "graphql"
)

// Body declares every mode the wire format knows. Only raw is executed;
// the executor treats the rest as "no body".
type Body struct {
	Mode       string       `json:"mode,omitempty"`
	Raw        string       `json:"raw,omitempty"`
	FormData   []FormParam  `json:"formdata,omitempty"`
	URLEncoded []FormParam  `json:"urlencoded,omitempty"`
	File       *FileRef     `json:"file,omitempty"`
	GraphQL    *GraphQLBody `json:"graphql,omitempty"`
}

type FormParam struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Type     string `json:"type,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

type FileRef struct {
	Src string `json:"src"`
}

type GraphQLBody struct {
	Query     string `json:"query"`
	Variables string `json:"variables,omitempty"`
}

type Request struct {
	Method  string   `json:"method"`
	Headers []Header `json:"header"`
	Body    *Body    `json:"body,omitempty"`
	URL     URL      `json:"url"`
	Auth    *Auth    `json:"auth,omitempty"`
}

// New returns an empty collection with a fresh id and the fixed schema tag.
func New(name string) *Collection {
	return &Collection{
		Info: Info{
			ID:     uuid.NewString(),
			Name:   name,
			Schema: SchemaV210,
		},
		Items: []*Item{},
	}
}

func NewRequest(name string) *Item {
	return &Item{
		Name: name,
		Request: &Request{
			Method:  http.MethodGet,
			Headers: []Header{},
			Auth:    &Auth{Type: AuthNoAuth},
		},
	}
}

func NewFolder(name string) *Item {
	return &Item{Name: name, Items: []*Item{}}
}

// Validate rejects nodes that are both folder and leaf, or neither.
func (c *Collection) Validate() error {
	for _, it := range c.Items {
		if err := validateItem(it); err != nil {
			return err
		}
	}
	return nil
}

func validateItem(it *Item) error {
	if it.IsFolder() && it.IsRequest() {
		return errdef.New(errdef.CodeParse, "item %q is both folder and request", it.Name)
	}
	if !it.IsFolder() && !it.IsRequest() {
		return errdef.New(errdef.CodeParse, "item %q carries neither subitems nor a request", it.Name)
	}
	for _, child := range it.Items {
		if err := validateItem(child); err != nil {
			return err
		}
	}
	return nil
}

// Marshal produces the pretty-printed wire form used for files and export.
func Marshal(c *Collection) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "encode collection")
	}
	return data, nil
}

func Unmarshal(data []byte) (*Collection, error) {
	var c Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "parse collection")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
