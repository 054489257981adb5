package models

// Video is a topic video tagged with one coaching service.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Duration    string `json:"duration"` // mm:ss
	ServiceID   string `json:"serviceId"`
	URL         string `json:"url"`
}
