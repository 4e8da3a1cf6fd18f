package clientcli

// Todo is a single item as returned by the server.
type Todo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ListResult holds the items returned by a list call.
type ListResult struct {
	Items []Todo `json:"items"`
}

// WriteResult is the outcome of a create or update call.
type WriteResult struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// DeleteOptions configures a delete operation.
type DeleteOptions struct {
	IDs []string
}

// DeleteResult represents the result of deleting a single item.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
	Err     error  `json:"-"` // nil on success
}

type todoRequest struct {
	Title string `json:"title"`
}

type serverError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
