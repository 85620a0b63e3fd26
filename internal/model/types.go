package model

// TaskSymbol is the bullet state of a task row.
type TaskSymbol string

const (
	SymbolBullet    TaskSymbol = "bullet"
	SymbolComplete  TaskSymbol = "complete"
	SymbolMigrated  TaskSymbol = "migrated"
	SymbolScheduled TaskSymbol = "scheduled"
	SymbolNote      TaskSymbol = "note"
	SymbolEvent     TaskSymbol = "event"
)

func (s TaskSymbol) Valid() bool {
	switch s {
	case SymbolBullet, SymbolComplete, SymbolMigrated, SymbolScheduled, SymbolNote, SymbolEvent:
		return true
	}
	return false
}

// EntryType distinguishes the journal page a task list belongs to.
type EntryType string

const (
	EntryDaily      EntryType = "daily"
	EntryWeekly     EntryType = "weekly"
	EntryMonthly    EntryType = "monthly"
	EntryCollection EntryType = "collection"
)

func (t EntryType) Valid() bool {
	switch t {
	case EntryDaily, EntryWeekly, EntryMonthly, EntryCollection:
		return true
	}
	return false
}

// RecurrencePattern is how often a recurring template produces instances.
type RecurrencePattern string

const (
	PatternDaily   RecurrencePattern = "daily"
	PatternWeekly  RecurrencePattern = "weekly"
	PatternMonthly RecurrencePattern = "monthly"
	PatternYearly  RecurrencePattern = "yearly"
)

func (p RecurrencePattern) Valid() bool {
	switch p {
	case PatternDaily, PatternWeekly, PatternMonthly, PatternYearly:
		return true
	}
	return false
}

// MoodType is the value of a logged mood.
type MoodType string

const (
	MoodAmazing  MoodType = "amazing"
	MoodGood     MoodType = "good"
	MoodOkay     MoodType = "okay"
	MoodBad      MoodType = "bad"
	MoodTerrible MoodType = "terrible"
)

func (m MoodType) Valid() bool {
	switch m {
	case MoodAmazing, MoodGood, MoodOkay, MoodBad, MoodTerrible:
		return true
	}
	return false
}
