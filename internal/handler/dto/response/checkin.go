package response

import "floorcheck/internal/usecase/commands"

// CheckStatusResponse keeps the legacy wire contract the NFC readers and
// dashboard already speak: checkedIn plus a delay in minutes, -1 meaning
// the table is held by someone else.
type CheckStatusResponse struct {
	CheckedIn bool `json:"checkedIn"`
	Delay     int  `json:"delay"`
}

func FromCheckResult(r *commands.CheckResult) CheckStatusResponse {
	return CheckStatusResponse{
		CheckedIn: r.CheckedIn,
		Delay:     r.DelayMinutes,
	}
}
