// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a user-authored post with its nested likes and comments.
// The whole record, including both collections, is stored as one document.
type Post struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Text     string    `json:"text"`
	Name     string    `json:"name,omitempty"`
	Avatar   string    `json:"avatar,omitempty"`
	User     string    `json:"user"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
	Date     time.Time `json:"date"`
}

// Like marks a single user's approval of a post.
type Like struct {
	User string `json:"user"`
}

// Comment is a sub-record of a post. ID is assigned by the store on save.
type Comment struct {
	ID     string    `json:"id"`
	Text   string    `json:"text"`
	Name   string    `json:"name,omitempty"`
	Avatar string    `json:"avatar,omitempty"`
	User   string    `json:"user"`
	Date   time.Time `json:"date"`
}

// LikeIndex returns the position of the first like by userID, or -1.
func (p *Post) LikeIndex(userID string) int {
	for i, l := range p.Likes {
		if l.User == userID {
			return i
		}
	}
	return -1
}

// CommentIndex returns the position of the first comment with the given id, or -1.
func (p *Post) CommentIndex(commentID string) int {
	for i, c := range p.Comments {
		if c.ID == commentID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so stores and callers never share slices.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Likes != nil {
		cp.Likes = make([]Like, len(p.Likes))
		copy(cp.Likes, p.Likes)
	}
	if p.Comments != nil {
		cp.Comments = make([]Comment, len(p.Comments))
		copy(cp.Comments, p.Comments)
	}
	return &cp
}
