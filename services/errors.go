package services

import "errors"

var (
	// ErrUnknownParticipant is returned when an actor or target id does not
	// resolve to a profile.
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrSelfAction is returned for a swipe or vote aimed at oneself.
	ErrSelfAction = errors.New("action targets self")
	// ErrPreconditionNotMet is returned when a conclusion choice arrives
	// before both participants agreed to end the debate.
	ErrPreconditionNotMet = errors.New("debate precondition not met")
	// ErrNotParticipant is returned when a conclusion action comes from a
	// user who is not part of the debate.
	ErrNotParticipant = errors.New("user is not a debate participant")
	// ErrDuplicateVote is returned when the voter already voted on the debate.
	ErrDuplicateVote = errors.New("voter already voted")
	// ErrVotingClosed is returned when a vote arrives outside an open window.
	ErrVotingClosed = errors.New("voting window closed")
	// ErrInvalidChoice is returned for a vote choice outside the two participants.
	ErrInvalidChoice = errors.New("invalid vote choice")
	// ErrInvalidDuration is returned for a voting window length outside the
	// allowed set.
	ErrInvalidDuration = errors.New("invalid voting duration")
)
