package domain

// TimePeriod is a coarse bucket of the day used for contextual filtering.
type TimePeriod string

const (
	TimePeriodMorning   TimePeriod = "morning"
	TimePeriodAfternoon TimePeriod = "afternoon"
	TimePeriodEvening   TimePeriod = "evening"
	TimePeriodNight     TimePeriod = "night"

	// TimePeriodAll is the sentinel that disables time filtering.
	TimePeriodAll TimePeriod = "all"
)

func (p TimePeriod) String() string { return string(p) }

func (p TimePeriod) IsValid() bool {
	switch p {
	case TimePeriodMorning, TimePeriodAfternoon, TimePeriodEvening, TimePeriodNight:
		return true
	}
	return false
}

// ResolveTimePeriod maps an hour of day (0-23) to a TimePeriod.
// Boundaries: [5,12) morning, [12,18) afternoon, [18,22) evening,
// everything else night.
func ResolveTimePeriod(hour int) TimePeriod {
	switch {
	case hour >= 5 && hour < 12:
		return TimePeriodMorning
	case hour >= 12 && hour < 18:
		return TimePeriodAfternoon
	case hour >= 18 && hour < 22:
		return TimePeriodEvening
	default:
		return TimePeriodNight
	}
}

// Season tags a message with a season, or "all" for year-round.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
	SeasonAll    Season = "all"
)

func (s Season) String() string { return string(s) }

func (s Season) IsValid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter, SeasonAll:
		return true
	}
	return false
}

// Reaction is a user reaction to a message.
type Reaction string

const (
	ReactionLike Reaction = "like"
	ReactionLove Reaction = "love"
	ReactionFire Reaction = "fire"
)

func (r Reaction) String() string { return string(r) }

func (r Reaction) IsValid() bool {
	switch r {
	case ReactionLike, ReactionLove, ReactionFire:
		return true
	}
	return false
}

// Mood is the self-reported mood attached to a journal entry.
type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodBad      Mood = "bad"
	MoodTerrible Mood = "terrible"
)

func (m Mood) String() string { return string(m) }

func (m Mood) IsValid() bool {
	switch m {
	case MoodGreat, MoodGood, MoodOkay, MoodBad, MoodTerrible:
		return true
	}
	return false
}

// GoalCategory classifies a personal goal.
type GoalCategory string

const (
	GoalCategoryHealth       GoalCategory = "health"
	GoalCategoryStudy        GoalCategory = "study"
	GoalCategoryWork         GoalCategory = "work"
	GoalCategoryRelationship GoalCategory = "relationship"
	GoalCategoryHobby        GoalCategory = "hobby"
	GoalCategoryOther        GoalCategory = "other"
)

func (c GoalCategory) String() string { return string(c) }

func (c GoalCategory) IsValid() bool {
	switch c {
	case GoalCategoryHealth, GoalCategoryStudy, GoalCategoryWork,
		GoalCategoryRelationship, GoalCategoryHobby, GoalCategoryOther:
		return true
	}
	return false
}

// GoalType is the cadence of a goal.
type GoalType string

const (
	GoalTypeWeekly  GoalType = "weekly"
	GoalTypeMonthly GoalType = "monthly"
)

func (t GoalType) String() string { return string(t) }

func (t GoalType) IsValid() bool {
	switch t {
	case GoalTypeWeekly, GoalTypeMonthly:
		return true
	}
	return false
}
