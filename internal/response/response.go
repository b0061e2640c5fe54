package response

// ErrorBody is the wire shape every failure carries: a human-readable
// error string and, when a lower-level message exists, a details string.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func Err(msg string) ErrorBody {
	return ErrorBody{Error: msg}
}

func ErrWithDetails(msg, details string) ErrorBody {
	return ErrorBody{Error: msg, Details: details}
}

func Unauthorized() ErrorBody {
	return ErrorBody{Error: "Unauthorized"}
}

func DatabaseError(details string) ErrorBody {
	return ErrorBody{Error: "Database error", Details: details}
}

func InternalError() ErrorBody {
	return ErrorBody{Error: "Internal server error"}
}
