package candidature

import "time"

// FollowUpDelayDays is the number of calendar days between the application
// date and the suggested follow-up.
const FollowUpDelayDays = 7

// ComputeFollowUp returns the suggested follow-up date for an application:
// the application date plus seven calendar days while the application is
// still live (Pending or Interview), nil once it has been rejected.
//
// The function is pure; callers recompute it on every status or date edit
// instead of persisting the result independently.
func ComputeFollowUp(applicationDate time.Time, status Status) *time.Time {
	if status == StatusRejected {
		return nil
	}
	followUp := applicationDate.AddDate(0, 0, FollowUpDelayDays)
	return &followUp
}
