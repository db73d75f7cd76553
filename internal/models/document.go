package models

import "fmt"

// SchemaVersionCurrent is stamped on every document this program saves.
// Documents without a version tag are treated as v0 (legacy unified
// history) and upgraded at load time.
const SchemaVersionCurrent = 1

// Document is the whole persisted state: settings, roster, fine log and
// both date-keyed histories. It is saved and loaded as one unit; there is
// no partial merge.
type Document struct {
	SchemaVersion int `bson:"schemaVersion,omitempty" json:"schemaVersion,omitempty"`

	UserCount       int      `bson:"userCount" json:"userCount"`
	CheckItemCount  int      `bson:"checkItemCount" json:"checkItemCount"`
	CheckLabels     []string `bson:"checkLabels" json:"checkLabels"`
	CheckWeeklyGoal []int    `bson:"checkWeeklyCount" json:"checkWeeklyCount"`
	MainWeeklyGoal  int      `bson:"mainWeeklyGoal" json:"mainWeeklyGoal"`

	SettingsLocked bool   `bson:"isSettingsLocked" json:"isSettingsLocked"`
	UserInfoLocked bool   `bson:"isUserInfoLocked" json:"isUserInfoLocked"`
	AdminPassword  string `bson:"adminPassword,omitempty" json:"adminPassword,omitempty"`

	Mates       []Mate       `bson:"mates" json:"mates"`
	FineRecords []FineRecord `bson:"fineRecords" json:"fineRecords"`

	MateHistory  map[string][]CallRecord  `bson:"mateHistory" json:"mateHistory"`
	HabitHistory map[string][]HabitRecord `bson:"habitHistory" json:"habitHistory"`

	// DailyHistory is the legacy v0 unified history. Kept only so old
	// documents decode; Upgrade moves its contents into the split maps.
	DailyHistory map[string][]LegacyRecord `bson:"dailyHistory,omitempty" json:"dailyHistory,omitempty"`

	BankInfo   string `bson:"bankInfo" json:"bankInfo"`
	FineNotice string `bson:"fineNotice" json:"fineNotice"`
}

// DefaultLabels returns the compiled-in habit labels: a few suggested
// habits first, then numbered placeholders.
func DefaultLabels() []string {
	named := []string{"Wake-up check", "Reading check", "Workout check", "Journal check"}
	labels := make([]string, MaxCheckItems)
	for i := range labels {
		if i < len(named) {
			labels[i] = named[i]
		} else {
			labels[i] = fmt.Sprintf("Habit %d", i+1)
		}
	}
	return labels
}

// DefaultDocument returns the compiled-in reset target: a full roster of
// placeholder mates, default labels and goals, and an empty fine log.
func DefaultDocument() *Document {
	mates := make([]Mate, MaxMates)
	for i := range mates {
		mates[i] = Mate{ID: MateID(i)}
	}
	goals := make([]int, MaxCheckItems)
	for i := range goals {
		goals[i] = 5
	}
	return &Document{
		SchemaVersion:   SchemaVersionCurrent,
		UserCount:       7,
		CheckItemCount:  3,
		CheckLabels:     DefaultLabels(),
		CheckWeeklyGoal: goals,
		MainWeeklyGoal:  5,
		Mates:           mates,
		FineRecords:     []FineRecord{},
		MateHistory:     map[string][]CallRecord{},
		HabitHistory:    map[string][]HabitRecord{},
	}
}
