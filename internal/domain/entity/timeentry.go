package entity

// TimeEntry is one clock-in/out record from the labor API.
type TimeEntry struct {
	GUID              string       `json:"guid"`
	EmployeeReference ExternalRef  `json:"employeeReference"`
	JobReference      *ExternalRef `json:"jobReference,omitempty"`
	BusinessDate      int          `json:"businessDate,omitempty"`
	InDate            string       `json:"inDate,omitempty"`
	OutDate           string       `json:"outDate,omitempty"`
	RegularHours      float64      `json:"regularHours,omitempty"`
	OvertimeHours     float64      `json:"overtimeHours,omitempty"`
	Breaks            []Break      `json:"breaks,omitempty"`
	DeclaredCashTips  *float64     `json:"declaredCashTips,omitempty"`
}

// JobGUID returns the time entry's own job reference, or "" when it lacks
// one; callers fall back to the employee's primary position.
func (t *TimeEntry) JobGUID() string {
	if t.JobReference == nil {
		return ""
	}
	return t.JobReference.GUID
}

// Break is a paid or unpaid break interval within a time entry.
type Break struct {
	GUID    string `json:"guid,omitempty"`
	Paid    bool   `json:"paid,omitempty"`
	InDate  string `json:"inDate,omitempty"`
	OutDate string `json:"outDate,omitempty"`
}
