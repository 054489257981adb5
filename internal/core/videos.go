package core

import "coaching-backend/internal/models"

// VideoSection is the list of videos for one coaching service.
type VideoSection struct {
	ServiceID string         `json:"serviceId"`
	Title     string         `json:"title"`
	Videos    []models.Video `json:"videos"`
}

// GroupVideos groups videos by service in catalog order. Services without
// videos are left out, and so are videos tagged with a service outside the
// catalog.
func GroupVideos(videos []models.Video) []VideoSection {
	byService := make(map[string][]models.Video)
	for _, v := range videos {
		byService[v.ServiceID] = append(byService[v.ServiceID], v)
	}

	sections := []VideoSection{}
	for _, svc := range models.CoachingServices() {
		if list, ok := byService[svc.ID]; ok {
			sections = append(sections, VideoSection{ServiceID: svc.ID, Title: svc.Name, Videos: list})
		}
	}
	return sections
}
