package models

// CourseSummary is a read-only, server-sourced description of one
// course, cached client-side for listing and search display.
type CourseSummary struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	CreatedBy        string `json:"createdBy"`
	NumberOfLectures int    `json:"numberOfLectures"`
	ThumbnailURL     string `json:"thumbnailUrl,omitempty"`
	Category         string `json:"category,omitempty"`
}
