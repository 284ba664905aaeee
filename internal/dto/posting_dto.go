package dto

type CreatePostingRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	Salary          float64  `json:"salary"`
	ExperienceLevel int      `json:"experience_level"`
	Location        string   `json:"location"`
	Positions       int      `json:"positions"`
}

// UpdatePostingRequest re-runs moderation on the edited content.
type UpdatePostingRequest = CreatePostingRequest
