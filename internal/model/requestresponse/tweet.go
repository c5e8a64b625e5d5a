package requestresponse

// ContentRequest : тело запроса для твитов и комментариев
type ContentRequest struct {
	Content string `json:"content" validate:"required,max=1000" example:"first!"`
}
