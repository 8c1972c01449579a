// models/user.go
package models

import "encoding/json"

// Role discriminates the User variants.
type Role string

const (
	RoleStudent Role = "student"
	RoleMentor  Role = "mentor"
)

// VerificationStatus records which identity checks a user has passed.
type VerificationStatus struct {
	Name   bool `json:"name"`
	School bool `json:"school"`
}

// Complete reports whether both name and school are verified.
func (v VerificationStatus) Complete() bool {
	return v.Name && v.School
}

// BaseUser holds the fields every user variant shares.
type BaseUser struct {
	ID       int                `json:"id"`
	Name     string             `json:"name"`
	Avatar   string             `json:"avatar"`
	Verified VerificationStatus `json:"verified"`
}

// User is either a *Mentor or a *Student. Consumers switch on the concrete type.
type User interface {
	Base() BaseUser
	Role() Role
	isUser()
}

// MentorProfile is the long-form public profile of a mentor.
type MentorProfile struct {
	University string `json:"university"`
	Major      string `json:"major"`
	Degree     string `json:"degree"`
	Background string `json:"background"`
	Services   string `json:"services"`
}

type Mentor struct {
	BaseUser
	University  string        `json:"university"`
	Major       string        `json:"major"`
	Category    string        `json:"category"`
	Region      string        `json:"region"`
	Price       int           `json:"price"`
	Experience  string        `json:"experience"`
	Degree      string        `json:"degree"`
	Rating      float64       `json:"rating"`
	ReviewCount int           `json:"reviewCount"`
	Profile     MentorProfile `json:"profile"`
}

func (m *Mentor) Base() BaseUser { return m.BaseUser }
func (m *Mentor) Role() Role     { return RoleMentor }
func (m *Mentor) isUser()        {}

// MarshalJSON adds the role discriminator.
func (m *Mentor) MarshalJSON() ([]byte, error) {
	type alias Mentor
	return json.Marshal(struct {
		Role Role `json:"role"`
		*alias
	}{RoleMentor, (*alias)(m)})
}

// StudentProfile describes a student's academic background and goals.
type StudentProfile struct {
	University string `json:"university"`
	Major      string `json:"major"`
	Degree     string `json:"degree"`
	Background string `json:"background"`
	Needs      string `json:"needs"`
}

type Student struct {
	BaseUser
	Profile        StudentProfile  `json:"profile"`
	PaymentMethods []PaymentMethod `json:"paymentMethods"`
}

func (s *Student) Base() BaseUser { return s.BaseUser }
func (s *Student) Role() Role     { return RoleStudent }
func (s *Student) isUser()        {}

// MarshalJSON adds the role discriminator and keeps an empty method list as [].
func (s *Student) MarshalJSON() ([]byte, error) {
	type alias Student
	cp := *s
	if cp.PaymentMethods == nil {
		cp.PaymentMethods = []PaymentMethod{}
	}
	return json.Marshal(struct {
		Role Role `json:"role"`
		*alias
	}{RoleStudent, (*alias)(&cp)})
}

// Clone returns a copy whose payment method slice can be appended to independently.
func (s *Student) Clone() *Student {
	cp := *s
	cp.PaymentMethods = append([]PaymentMethod(nil), s.PaymentMethods...)
	return &cp
}

// Review is a rating left for a mentor.
type Review struct {
	ID           int    `json:"id"`
	ReviewerName string `json:"reviewerName"`
	Date         string `json:"date"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}
