package collection

import "encoding/json"

// URL accepts both wire forms: a bare string or an object with a raw field
// plus optional broken-down parts. The form it was parsed from is remembered
// so serialization stays stable.
type URL struct {
	Raw      string
	Protocol string
	Host     []string
	Path     []string

	object bool
}

type urlWire struct {
	Raw      string   `json:"raw"`
	Protocol string   `json:"protocol,omitempty"`
	Host     []string `json:"host,omitempty"`
	Path     []string `json:"path,omitempty"`
}

func URLFromString(raw string) URL {
	return URL{Raw: raw}
}

func (u URL) String() string {
	return u.Raw
}

func (u URL) IsObject() bool {
	return u.object
}

func (u URL) MarshalJSON() ([]byte, error) {
	if !u.object {
		return json.Marshal(u.Raw)
	}
	return json.Marshal(urlWire{
		Raw:      u.Raw,
		Protocol: u.Protocol,
		Host:     u.Host,
		Path:     u.Path,
	})
}

func (u *URL) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*u = URL{Raw: raw}
		return nil
	}
	var wire urlWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*u = URL{
		Raw:      wire.Raw,
		Protocol: wire.Protocol,
		Host:     wire.Host,
		Path:     wire.Path,
		object:   true,
	}
	return nil
}
