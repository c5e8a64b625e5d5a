package requestresponse

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"401"`
	Text string `json:"text" example:"refresh token is expired or used"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// APIResponse : стандартная обертка успешного ответа
type APIResponse struct {
	StatusCode int         `json:"status_code" example:"200"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message" example:"User logged in successfully"`
	Success    bool        `json:"success" example:"true"`
}

func NewAPIResponse(statusCode int, data interface{}, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}
