package domain

// Post represents an article written by a user.
// UserID is a soft reference: it is not checked against existing users.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// PostPatch represents a partial update of a post
type PostPatch struct {
	UserID *int    `json:"userId,omitempty"`
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
}

// Apply overwrites the fields present in the patch and keeps the rest
func (p *Post) Apply(patch PostPatch) {
	if patch.UserID != nil {
		p.UserID = *patch.UserID
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Body != nil {
		p.Body = *patch.Body
	}
}

// IsEmpty reports whether the patch carries no fields
func (p PostPatch) IsEmpty() bool {
	return p.UserID == nil && p.Title == nil && p.Body == nil
}

// PostStats summarizes authorship across all posts
type PostStats struct {
	TotalPosts          int         `json:"totalPosts"`
	PostsByUser         map[int]int `json:"postsByUser"`
	AveragePostsPerUser float64     `json:"averagePostsPerUser"`
}

// Availability is the answer to a username or email uniqueness check
type Availability struct {
	Field     string `json:"field"`
	Value     string `json:"value"`
	Available bool   `json:"available"`
}
