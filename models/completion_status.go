package models

type CompletionStatus string

const (
	CompletionStatusPending  CompletionStatus = "pending"
	CompletionStatusApproved CompletionStatus = "approved"
	CompletionStatusRejected CompletionStatus = "rejected"
	CompletionStatusPaid     CompletionStatus = "paid"
)

var completionStatusHumanName = map[CompletionStatus]string{
	CompletionStatusPending:  "Pending",
	CompletionStatusApproved: "Approved",
	CompletionStatusRejected: "Rejected",
	CompletionStatusPaid:     "Paid",
}

func (s CompletionStatus) ToHuman() string {
	if human, exist := completionStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

func (s CompletionStatus) IsValid() bool {
	_, ok := completionStatusHumanName[s]
	return ok
}

// IsReviewDecision reports whether an admin may set s from the approval queue.
// Paid is reachable only through mark-paid.
func (s CompletionStatus) IsReviewDecision() bool {
	return s == CompletionStatusApproved || s == CompletionStatusRejected
}
