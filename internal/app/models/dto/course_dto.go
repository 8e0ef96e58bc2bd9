package dto

import "github.com/ganeshlonare/lms-client/internal/app/models"

// CoursePayload is the wire shape of one course in the listing response
type CoursePayload struct {
	ID               string `json:"_id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	CreatedBy        string `json:"createdBy"`
	NumberOfLectures int    `json:"numberOfLectures"`
	Thumbnail        struct {
		SecureURL string `json:"secure_url"`
	} `json:"thumbnail"`
}

// ToSummary converts the wire payload into the client course model
func (p *CoursePayload) ToSummary() models.CourseSummary {
	return models.CourseSummary{
		ID:               p.ID,
		Title:            p.Title,
		Description:      p.Description,
		CreatedBy:        p.CreatedBy,
		NumberOfLectures: p.NumberOfLectures,
		ThumbnailURL:     p.Thumbnail.SecureURL,
		Category:         p.Category,
	}
}

// CourseListResponse represents the course listing body
type CourseListResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Courses []CoursePayload `json:"courses"`
}
