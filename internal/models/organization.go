package models

import (
	"github.com/voguesoftware/projectdash/validation"
)

type OrgStatus string

const (
	OrgActive   OrgStatus = "Active"
	OrgInactive OrgStatus = "Inactive"
	OrgLead     OrgStatus = "Lead"
)

// Organization carries its own embedded project list. These embedded
// projects are a separate sub-model from the top-level Project entity:
// the status enums and field sets differ, and nothing keeps the two in
// sync. Keep them as distinct types.
type Organization struct {
	ID             string       `json:"_id"`
	Name           string       `json:"name"`
	Address        string       `json:"address"`
	Status         OrgStatus    `json:"status"`
	ContactDetails []Contact    `json:"contactDetails"`
	Documents      []Document   `json:"documents"`
	Projects       []OrgProject `json:"projects"`
}

type Contact struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Document struct {
	FileName     string `json:"fileName"`
	DocumentType string `json:"documentType"`
	URL          string `json:"url"`
}

type OrgProjectStatus string

const (
	OrgProjectInitiated  OrgProjectStatus = "Initiated"
	OrgProjectInProgress OrgProjectStatus = "In Progress"
	OrgProjectCompleted  OrgProjectStatus = "Completed"
	OrgProjectOnHold     OrgProjectStatus = "On Hold"
)

type OrgProject struct {
	ID            string           `json:"_id"`
	Name          string           `json:"name"`
	Status        OrgProjectStatus `json:"status"`
	Done          []string         `json:"done"`
	Todo          []string         `json:"todo"`
	ContactPerson string           `json:"contactPerson"`
	Documents     []Document       `json:"documents"`
}

// Validate enforces the contact-list invariant: at least one contact, and
// every contact carries a non-empty role and name. Violations block the
// create/update submission before any network call.
func (o Organization) Validate() validation.Violations {
	v := validation.Violations{}
	validation.Required("name", o.Name, v)
	if len(o.ContactDetails) == 0 {
		v["contactDetails"] = "required"
		return v
	}
	for i, c := range o.ContactDetails {
		validation.RequiredAt("contactDetails", i, "role", c.Role, v)
		validation.RequiredAt("contactDetails", i, "name", c.Name, v)
	}
	return v
}
