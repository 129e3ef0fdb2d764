package progress

// defaultAchievements returns the seeded achievement set, all locked. The
// set is fixed at first initialization; only unlock state mutates afterwards.
// Order matters: evaluation and the "newly unlocked" result follow it.
func defaultAchievements() []Achievement {
	return []Achievement{
		{
			ID:          "first-habit",
			Name:        "Starting Fresh",
			Description: "Create your first habit",
			Icon:        "🌱",
			Requirement: Requirement{Type: RequirementHabits, Value: 1},
		},
		{
			ID:          "habit-collector",
			Name:        "Habit Collector",
			Description: "Create 5 different habits",
			Icon:        "📚",
			Requirement: Requirement{Type: RequirementHabits, Value: 5},
		},
		{
			ID:          "first-completion",
			Name:        "First Step",
			Description: "Complete a habit for the first time",
			Icon:        "👣",
			Requirement: Requirement{Type: RequirementCompletions, Value: 1},
		},
		{
			ID:          "streak-3",
			Name:        "Consistency",
			Description: "Achieve a 3-day streak on any habit",
			Icon:        "🔥",
			Requirement: Requirement{Type: RequirementStreak, Value: 3},
		},
		{
			ID:          "streak-7",
			Name:        "Week Warrior",
			Description: "Achieve a 7-day streak on any habit",
			Icon:        "🏆",
			Requirement: Requirement{Type: RequirementStreak, Value: 7},
		},
		{
			ID:          "streak-30",
			Name:        "Monthly Master",
			Description: "Achieve a 30-day streak on any habit",
			Icon:        "👑",
			Requirement: Requirement{Type: RequirementStreak, Value: 30},
		},
		{
			ID:          "completions-10",
			Name:        "Dedicated",
			Description: "Complete habits 10 times in total",
			Icon:        "⭐",
			Requirement: Requirement{Type: RequirementCompletions, Value: 10},
		},
		{
			ID:          "completions-50",
			Name:        "Habit Pro",
			Description: "Complete habits 50 times in total",
			Icon:        "🌟",
			Requirement: Requirement{Type: RequirementCompletions, Value: 50},
		},
		{
			ID:          "completions-100",
			Name:        "Habit Master",
			Description: "Complete habits 100 times in total",
			Icon:        "💫",
			Requirement: Requirement{Type: RequirementCompletions, Value: 100},
		},
	}
}
