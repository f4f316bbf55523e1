package models

import "time"

// Timestamps are set by the application so the schema works identically on
// postgres and the sqlite database used in tests.

type User struct {
	ID       string    `json:"id" gorm:"primaryKey;type:text"`
	Username string    `json:"username" gorm:"type:text;uniqueIndex;not null"`
	CDate    time.Time `json:"cdate" gorm:"not null"`
}

type Post struct {
	ID              string    `json:"id" gorm:"primaryKey;type:text"`
	Author          string    `json:"author" gorm:"type:text;index;not null"`
	Content         string    `json:"content" gorm:"type:text;not null"`
	BackgroundColor string    `json:"backgroundColor" gorm:"type:text"`
	CDate           time.Time `json:"cdate" gorm:"index;not null"`
	MDate           time.Time `json:"mdate" gorm:"not null"`
}

type Comment struct {
	ID      string    `json:"id" gorm:"primaryKey;type:text"`
	Author  string    `json:"author" gorm:"type:text;index;not null"`
	Item    string    `json:"item" gorm:"type:text;index;not null"`
	Content string    `json:"content" gorm:"type:text;not null"`
	CDate   time.Time `json:"cdate" gorm:"index;not null"`
	MDate   time.Time `json:"mdate" gorm:"not null"`
}

type Datum struct {
	ID    string    `json:"id" gorm:"primaryKey;type:text"`
	User  string    `json:"user" gorm:"type:text;index;not null"`
	Date  time.Time `json:"date" gorm:"index;not null"`
	Score int       `json:"score" gorm:"not null"`
	CDate time.Time `json:"cdate" gorm:"not null"`
}

type Competition struct {
	ID      string    `json:"id" gorm:"primaryKey;type:text"`
	Name    string    `json:"name" gorm:"type:text;uniqueIndex;not null"`
	Owner   string    `json:"owner" gorm:"type:text;index;not null"`
	EndDate time.Time `json:"endDate" gorm:"index;not null"`
	CDate   time.Time `json:"cdate" gorm:"not null"`
	MDate   time.Time `json:"mdate" gorm:"not null"`
}

// CompetitionDatum enters one tracked data point into one competition.
type CompetitionDatum struct {
	CompetitionID string    `json:"competitionID" gorm:"type:text;primaryKey"`
	DatumID       string    `json:"datumID" gorm:"type:text;primaryKey"`
	CDate         time.Time `json:"cdate" gorm:"not null"`
}

type Membership struct {
	ID    string    `json:"id" gorm:"primaryKey;type:text"`
	User  string    `json:"user" gorm:"type:text;uniqueIndex:idx_memberships_user_group;not null"`
	Group string    `json:"group" gorm:"type:text;uniqueIndex:idx_memberships_user_group;index;not null"`
	CDate time.Time `json:"cdate" gorm:"not null"`
}
