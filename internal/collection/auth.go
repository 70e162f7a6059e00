package collection

import "encoding/json"

const (
	AuthNoAuth = "noauth"
	AuthBearer = "bearer"
	AuthBasic  = "basic"
	AuthAPIKey = "apikey"
	AuthOAuth2 = "oauth2"
)

// Auth carries the request authentication config. The bearer token is a
// scalar internally; the wire format stores it as a one-element key/value
// list keyed "token", which Marshal/Unmarshal translate both ways. Other
// auth kinds keep their raw parameter list untouched.
type Auth struct {
	Type   string
	Bearer string
	Params []AuthParam
}

type AuthParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

func BearerAuth(token string) *Auth {
	return &Auth{Type: AuthBearer, Bearer: token}
}

func (a *Auth) MarshalJSON() ([]byte, error) {
	wire := map[string]any{"type": a.Type}
	switch a.Type {
	case AuthBearer:
		if a.Bearer != "" {
			wire[AuthBearer] = []AuthParam{{Key: "token", Value: a.Bearer, Type: "string"}}
		}
	case AuthNoAuth, "":
	default:
		if len(a.Params) > 0 {
			wire[a.Type] = a.Params
		}
	}
	return json.Marshal(wire)
}

func (a *Auth) UnmarshalJSON(data []byte) error {
	var wire struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*a = Auth{Type: wire.Type}
	raw, ok := fields[wire.Type]
	if !ok {
		return nil
	}
	var params []AuthParam
	if err := json.Unmarshal(raw, &params); err != nil {
		return err
	}
	if wire.Type == AuthBearer {
		for _, p := range params {
			if p.Key == "token" {
				a.Bearer = p.Value
				break
			}
		}
		return nil
	}
	a.Params = params
	return nil
}
