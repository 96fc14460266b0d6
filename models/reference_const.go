package models

type ReferenceKind string

const (
	ReferenceGlobal ReferenceKind = "GLOBAL"
	ReferenceLocal  ReferenceKind = "LOCAL"
	ReferenceVIP    ReferenceKind = "VIP"
)

func (k ReferenceKind) IsValid() bool {
	switch k {
	case ReferenceGlobal, ReferenceLocal, ReferenceVIP:
		return true
	}
	return false
}

type ReferenceStatus string

const (
	ReferenceOpen       ReferenceStatus = "OPEN"
	ReferenceInProgress ReferenceStatus = "IN_PROGRESS"
	ReferenceClosed     ReferenceStatus = "CLOSED"
	ReferenceArchived   ReferenceStatus = "ARCHIVED"
)

// IsAllowChange guards the reference status flow: open -> in progress -> closed,
// archiving is reserved for the retention worker.
func (s ReferenceStatus) IsAllowChange(next ReferenceStatus) bool {
	switch s {
	case ReferenceOpen:
		return next == ReferenceInProgress || next == ReferenceClosed
	case ReferenceInProgress:
		return next == ReferenceOpen || next == ReferenceClosed
	case ReferenceClosed:
		return next == ReferenceArchived
	}
	return false
}

type ReferencePriority string

const (
	PriorityLow    ReferencePriority = "LOW"
	PriorityNormal ReferencePriority = "NORMAL"
	PriorityHigh   ReferencePriority = "HIGH"
	PriorityUrgent ReferencePriority = "URGENT"
)

func (p ReferencePriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
