package models

type ShortlistStatus string

const (
	ShortlistStatusShortlisted ShortlistStatus = "SHORTLISTED"
	ShortlistStatusContacted   ShortlistStatus = "CONTACTED"
	ShortlistStatusResponded   ShortlistStatus = "RESPONDED"
	ShortlistStatusDeclined    ShortlistStatus = "DECLINED"
	ShortlistStatusWithdrawn   ShortlistStatus = "WITHDRAWN"
)

var shortlistStatusHumanName = map[ShortlistStatus]string{
	ShortlistStatusShortlisted: "Shortlisted",
	ShortlistStatusContacted:   "Contacted",
	ShortlistStatusResponded:   "Responded",
	ShortlistStatusDeclined:    "Declined",
	ShortlistStatusWithdrawn:   "Withdrawn",
}

func (s ShortlistStatus) ToHuman() string {
	if human, exist := shortlistStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s ShortlistStatus) IsKnown() bool {
	_, exist := shortlistStatusHumanName[s]
	return exist
}
