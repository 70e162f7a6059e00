package collection

import "net/http"

// Sample is the collection seeded when no persisted state can be recovered,
// e.g. on first launch or when a remembered workspace directory is gone.
func Sample() *Collection {
	col := New("Sample APIs")

	users := NewFolder("Users")
	list := NewRequest("List users")
	list.Request.URL = URLFromString("https://jsonplaceholder.typicode.com/users")
	create := NewRequest("Create user")
	create.Request.Method = http.MethodPost
	create.Request.URL = URLFromString("https://jsonplaceholder.typicode.com/users")
	create.Request.Headers = []Header{{Key: "Content-Type", Value: "application/json"}}
	create.Request.Body = &Body{
		Mode: BodyModeRaw,
		Raw:  "{\n  \"name\": \"Jane Doe\"\n}",
	}
	users.Items = append(users.Items, list, create)

	ping := NewRequest("Ping")
	ping.Request.URL = URLFromString("https://jsonplaceholder.typicode.com/todos/1")

	col.Items = append(col.Items, users, ping)
	return col
}
