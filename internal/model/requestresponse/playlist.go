package requestresponse

type PlaylistRequest struct {
	Name        string `json:"name" validate:"required,max=100" example:"Favourites"`
	Description string `json:"description" validate:"max=1000" example:"videos worth rewatching"`
}

type UpdatePlaylistRequest struct {
	Name        string `json:"name" validate:"omitempty,max=100" example:"Favourites"`
	Description string `json:"description" validate:"omitempty,max=1000" example:"videos worth rewatching"`
}
