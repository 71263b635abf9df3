package model

// Role is the account role carried in tokens and checked by the access gate.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleModerator  Role = "moderator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleModerator:
		return true
	}
	return false
}

// PaperStatus is the lifecycle state of a question paper.
type PaperStatus string

const (
	PaperStatusDraft     PaperStatus = "draft"
	PaperStatusSubmitted PaperStatus = "submitted"
	PaperStatusApproved  PaperStatus = "approved"
	PaperStatusRejected  PaperStatus = "rejected"
)

func (s PaperStatus) Valid() bool {
	switch s {
	case PaperStatusDraft, PaperStatusSubmitted, PaperStatusApproved, PaperStatusRejected:
		return true
	}
	return false
}

// ModerationStatus is the verdict held by a single moderation record.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationPending, ModerationApproved, ModerationRejected:
		return true
	}
	return false
}

// UserStatus gates login and token use.
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)
