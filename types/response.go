package types

// ApiResponse is the JSON envelope every endpoint answers with. Warning
// carries non-fatal side-effect failures (part upsert, mail) that must not
// abort the primary operation.
type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Warning string      `json:"warning,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
