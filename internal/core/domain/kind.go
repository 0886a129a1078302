package domain

import "strings"

// Kind identifies one of the account collections. Every kind shares the same
// service contract; only its label, storage name and extra fields differ.
type Kind string

const (
	KindUser       Kind = "user"
	KindAdmin      Kind = "admin"
	KindCommercial Kind = "commercial"
	KindDecider    Kind = "decider"
	KindMaintainer Kind = "maintainer"
	KindHelper     Kind = "helper"
	KindAssistance Kind = "assistance"
	KindSuperAdmin Kind = "superadmin"
)

// Kinds lists every account kind in registration order.
var Kinds = []Kind{
	KindUser,
	KindAdmin,
	KindCommercial,
	KindDecider,
	KindMaintainer,
	KindHelper,
	KindAssistance,
	KindSuperAdmin,
}

var kindLabels = map[Kind]string{
	KindUser:       "User",
	KindAdmin:      "Admin",
	KindCommercial: "Commercial",
	KindDecider:    "Decider",
	KindMaintainer: "Maintainer",
	KindHelper:     "Helper",
	KindAssistance: "Assistance",
	KindSuperAdmin: "SuperAdmin",
}

var kindCollections = map[Kind]string{
	KindUser:       "users",
	KindAdmin:      "admins",
	KindCommercial: "commercials",
	KindDecider:    "deciders",
	KindMaintainer: "maintainers",
	KindHelper:     "helpers",
	KindAssistance: "assistances",
	KindSuperAdmin: "super_admins",
}

// Label is the human name used in error messages.
func (k Kind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// Collection is the table / collection name backing the kind.
func (k Kind) Collection() string {
	if c, ok := kindCollections[k]; ok {
		return c
	}
	return string(k) + "s"
}

// Path is the URL segment the kind is served under.
func (k Kind) Path() string {
	return strings.ReplaceAll(k.Collection(), "_", "-")
}

// RequiresRole reports whether accounts of this kind carry a role label.
func (k Kind) RequiresRole() bool {
	return k == KindCommercial || k == KindDecider
}

// RequiresPrivilege reports whether accounts of this kind carry a privilege
// level and the id of the admin who created them.
func (k Kind) RequiresPrivilege() bool {
	return k == KindAdmin
}

func (k Kind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}
