package models

// CheckItem is one boolean habit task on a mate's daily checklist.
type CheckItem struct {
	ID      string `bson:"id" json:"id"`
	Label   string `bson:"label" json:"label"`
	Checked bool   `bson:"checked" json:"checked"`
}

// CallRecord is one row of the daily mate-call table: who calls whom
// today and whether the check-in happened. There are always CallSlots
// rows per day; Slot is the 1-based row number.
type CallRecord struct {
	Slot          int    `bson:"slot" json:"slot"`
	CallerName    string `bson:"callerName" json:"callerName"`
	PartnerName   string `bson:"partnerName" json:"partnerName"`
	ProgressCheck bool   `bson:"progressCheck" json:"progressCheck"`
}

// HabitRecord is one mate's habit checklist for a single day.
type HabitRecord struct {
	MateID       MateID      `bson:"mateId" json:"mateId"`
	MateName     string      `bson:"mateName" json:"mateName"`
	CustomChecks []CheckItem `bson:"customChecks" json:"customChecks"`
	Note         string      `bson:"note" json:"note"`
}

// LegacyRecord is the pre-split unified daily record: call assignment and
// habit checklist in one row. Only read during v0 migration.
type LegacyRecord struct {
	MateID          string      `bson:"mateId" json:"mateId"`
	MateName        string      `bson:"mateName" json:"mateName"`
	MateCallPartner string      `bson:"mateCallPartner" json:"mateCallPartner"`
	ProgressCheck   bool        `bson:"progressCheck" json:"progressCheck"`
	CustomChecks    []CheckItem `bson:"customChecks" json:"customChecks"`
	Note            string      `bson:"note" json:"note"`
}
