package models

import "time"

// Profile is a user's public profile. This service only reads it.
type Profile struct {
	ID             string    `json:"id"`
	User           string    `json:"user"`
	Handle         string    `json:"handle"`
	Company        string    `json:"company,omitempty"`
	Website        string    `json:"website,omitempty"`
	Location       string    `json:"location,omitempty"`
	Status         string    `json:"status"`
	Skills         []string  `json:"skills"`
	Bio            string    `json:"bio,omitempty"`
	GithubUsername string    `json:"githubusername,omitempty"`
	Social         Social    `json:"social"`
	Date           time.Time `json:"date"`
}

// Social holds a profile's optional external links.
type Social struct {
	Youtube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}
