package models

type ContactStatus string

const (
	ContactStatusPending    ContactStatus = "PENDING"
	ContactStatusInProgress ContactStatus = "IN_PROGRESS"
	ContactStatusResponded  ContactStatus = "RESPONDED"
	ContactStatusClosed     ContactStatus = "CLOSED"
)

// ContactStatuses - допустимые значения в порядке жизненного цикла
var ContactStatuses = []ContactStatus{
	ContactStatusPending,
	ContactStatusInProgress,
	ContactStatusResponded,
	ContactStatusClosed,
}

// Valid - переходы между статусами не ограничены, проверяется только принадлежность
func (s ContactStatus) Valid() bool {
	for _, v := range ContactStatuses {
		if s == v {
			return true
		}
	}
	return false
}
