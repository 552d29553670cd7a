package queue

import (
	"github.com/telvana/streampanel/internal/service"
)

type Queue struct {
	cdn *service.CDNService
}

func NewQueue(cdn *service.CDNService) *Queue {
	return &Queue{
		cdn: cdn,
	}
}

const TaskTypeDeleteAsset = "cdn:delete"

// DeleteAssetPayload identifies a CDN object either by its opaque key or by
// the original file name it was uploaded under.
type DeleteAssetPayload struct {
	Key      string `json:"key,omitempty"`
	FileName string `json:"file_name,omitempty"`
}
