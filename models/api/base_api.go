package apimodels

type Response struct {
	Status  string      `json:"status"`            // fail | success | warning
	Message string      `json:"message,omitempty"` // error or notice text
	Data    interface{} `json:"data,omitempty"`
}

func NewError(message string) Response {
	return Response{
		Status:  "fail",
		Message: message,
	}
}

// NewWarning is a successful response that carries a notice and changed nothing.
func NewWarning(message string) Response {
	return Response{
		Status:  "warning",
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

func NewMessage(message string, data interface{}) Response {
	return Response{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}
