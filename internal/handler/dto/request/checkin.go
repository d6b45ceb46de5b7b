package request

// CheckStatusRequest is the check-in/check-out body. Floor plus a numeric
// Table is the canonical form; NFC tags written before the format change
// send only the legacy composite Table string ("1-01") with Floor empty.
type CheckStatusRequest struct {
	Auth  string `json:"auth"`
	UID   string `json:"uid"`
	Floor string `json:"floor"`
	Table string `json:"table" binding:"required"`
}
