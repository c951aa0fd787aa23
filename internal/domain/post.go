package domain

// Post is a plain-text body of content. A Post is immutable.
type Post struct {
	id      ID
	content string
}

// NewPost creates a fresh Post with a newly generated ID.
func NewPost(content string) *Post {
	return &Post{
		id:      NewID(),
		content: content,
	}
}

// RehydratePost rebuilds a Post from a stored row without validation.
func RehydratePost(id ID, content string) *Post {
	return &Post{
		id:      id,
		content: content,
	}
}

// ID returns the post's identifier.
func (p *Post) ID() ID {
	return p.id
}

// Content returns the post body.
func (p *Post) Content() string {
	return p.content
}
