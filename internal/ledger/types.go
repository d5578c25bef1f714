package ledger

// Usage is a user's accounting record for one calendar day. A user with no
// record reads back as the zero value; absence is the default state, not an
// error.
type Usage struct {
	Count  int     `json:"count"`
	LastTS float64 `json:"last_ts"`
}

// Decision is the outcome of the admission sequence for one request.
type Decision int

const (
	// request may proceed to the generation call
	Admitted Decision = iota

	// too soon after the user's previous request
	CooldownRejected

	// user's daily limit reached
	DailyQuotaExceeded

	// process-wide monthly cap reached
	MonthlyQuotaExceeded
)

// reports whether the decision is a quota rejection of either kind
func (d Decision) QuotaExceeded() bool {
	return d == DailyQuotaExceeded || d == MonthlyQuotaExceeded
}

func (d Decision) String() string {
	switch d {
	case Admitted:
		return "admitted"
	case CooldownRejected:
		return "cooldown_rejected"
	case DailyQuotaExceeded:
		return "daily_quota_exceeded"
	case MonthlyQuotaExceeded:
		return "monthly_quota_exceeded"
	default:
		return "unknown"
	}
}
