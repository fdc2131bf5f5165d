package response

// Envelope 所有接口统一的响应包裹；失败时 object 为 null、errors 非空
type Envelope struct {
	Success    bool     `json:"success"`
	Message    string   `json:"message"`
	Object     any      `json:"object"`
	PageNumber *int     `json:"pageNumber,omitempty"`
	PageSize   *int     `json:"pageSize,omitempty"`
	TotalSize  *int64   `json:"totalSize,omitempty"`
	Errors     []string `json:"errors"`
}

func OK(message string, object any) Envelope {
	return Envelope{Success: true, Message: message, Object: object}
}

func Paged(message string, object any, page, pageSize int, total int64) Envelope {
	return Envelope{
		Success:    true,
		Message:    message,
		Object:     object,
		PageNumber: &page,
		PageSize:   &pageSize,
		TotalSize:  &total,
	}
}

func Fail(message string, errs ...string) Envelope {
	if len(errs) == 0 {
		errs = []string{message}
	}
	return Envelope{Success: false, Message: message, Errors: errs}
}
