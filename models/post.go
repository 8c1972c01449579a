package models

import "time"

// Board selects one of the two community post lists.
type Board string

const (
	BoardStudents Board = "students"
	BoardMentors  Board = "mentors"
)

// Post is a community listing. Mentor posts fill University/Major/Services,
// student posts fill Target/Needs.
type Post struct {
	ID         int                `json:"id"`
	UserID     int                `json:"userId"`
	Name       string             `json:"name"`
	Avatar     string             `json:"avatar"`
	Verified   VerificationStatus `json:"verified"`
	University string             `json:"university,omitempty"`
	Major      string             `json:"major,omitempty"`
	Background string             `json:"background"`
	Services   string             `json:"services,omitempty"`
	Target     string             `json:"target,omitempty"`
	Needs      string             `json:"needs,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}
