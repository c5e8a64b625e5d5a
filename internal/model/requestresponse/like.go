package requestresponse

import "videotube-server/internal/model"

type LikedVideosData struct {
	Videos []model.VideoDetails `json:"videos"`
	Count  int                  `json:"count"`
}
