package entity

import (
	"fmt"
	"strings"
)

// Employee is a staff member as reported by the labor API.
type Employee struct {
	GUID               string        `json:"guid"`
	FirstName          string        `json:"firstName,omitempty"`
	LastName           string        `json:"lastName,omitempty"`
	ChosenName         string        `json:"chosenName,omitempty"`
	ExternalEmployeeID string        `json:"externalEmployeeId,omitempty"`
	Deleted            bool          `json:"deleted,omitempty"`
	JobReferences      []ExternalRef `json:"jobReferences,omitempty"`
}

// DisplayName prefers the chosen name over first/last, falling back to a
// GUID-derived placeholder when the record carries no name at all.
func (e *Employee) DisplayName() string {
	if e.ChosenName != "" {
		return e.ChosenName
	}
	name := strings.TrimSpace(e.FirstName + " " + e.LastName)
	if name != "" {
		return name
	}
	return fmt.Sprintf("Employee %s", guidSuffix(e.GUID))
}

// PrimaryJobGUID returns the employee's first listed job reference, or ""
// when the employee holds no positions.
func (e *Employee) PrimaryJobGUID() string {
	if len(e.JobReferences) == 0 {
		return ""
	}
	return e.JobReferences[0].GUID
}

// Job is a position held at a restaurant, identified per location.
type Job struct {
	GUID  string `json:"guid"`
	Title string `json:"title,omitempty"`
}

// guidSuffix returns the last 8 characters of a GUID, used for placeholder
// names when the directory has no entry for an employee.
func guidSuffix(guid string) string {
	if len(guid) <= 8 {
		return guid
	}
	return guid[len(guid)-8:]
}
