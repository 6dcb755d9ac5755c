package appwrite

import "encoding/json"

// Queries are sent to the store's list endpoint as JSON-encoded method
// descriptors, one per queries[] parameter.

type query struct {
	Method    string        `json:"method"`
	Attribute string        `json:"attribute,omitempty"`
	Values    []interface{} `json:"values,omitempty"`
}

func encodeQuery(q query) string {
	data, _ := json.Marshal(q)
	return string(data)
}

// QueryEqual filters documents where attribute equals value
func QueryEqual(attribute string, value interface{}) string {
	return encodeQuery(query{Method: "equal", Attribute: attribute, Values: []interface{}{value}})
}

// QueryLimit caps the number of returned documents
func QueryLimit(limit int) string {
	return encodeQuery(query{Method: "limit", Values: []interface{}{limit}})
}

// QueryOrderDesc orders results by attribute, descending
func QueryOrderDesc(attribute string) string {
	return encodeQuery(query{Method: "orderDesc", Attribute: attribute})
}

// Permission strings grant per-document access to a role.

// PermissionRead grants read access to role
func PermissionRead(role string) string {
	return `read("` + role + `")`
}

// PermissionUpdate grants update access to role
func PermissionUpdate(role string) string {
	return `update("` + role + `")`
}

// PermissionDelete grants delete access to role
func PermissionDelete(role string) string {
	return `delete("` + role + `")`
}

// RoleUser is the role string for a single user id
func RoleUser(userID string) string {
	return "user:" + userID
}
