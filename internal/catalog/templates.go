package catalog

func builtinTemplates() []Template {
	return []Template{
		// Developer
		{
			ID:          "dev-daily-commit",
			Title:       "Ship a Daily Commit",
			Description: "Push at least one meaningful commit to any project.",
			Category:    CategoryTech,
			XPReward:    30,
			Frequency:   FrequencyDaily,
			Difficulty:  DifficultyBasic,
			Tier:        1,
			Roles:       []string{RoleDeveloper},
		},
		{
			ID:          "dev-leetcode",
			Title:       "Solve an Algorithm Problem",
			Description: "Work through one algorithm or data-structure exercise.",
			Category:    CategoryTech,
			XPReward:    40,
			Frequency:   FrequencyDaily,
			Difficulty:  DifficultyBasic,
			Tier:        1,
			Roles:       []string{RoleDeveloper, RoleStudent},
		},
		{
			ID:          "dev-side-project",
			Title:       "Side Project Sprint",
			Description: "Plan, build and demo one feature of a side project.",
			Category:    CategoryTech,
			XPReward:    120,
			Frequency:   FrequencyWeekly,
			Difficulty:  DifficultyIntermediate,
			Tier:        2,
			Roles:       []string{RoleDeveloper},
			Unlock:      &UnlockRequirement{Level: 3, Streak: 3},
			Subtasks: []SubtaskTemplate{
				{ID: "plan", Title: "Plan the feature", Description: "Write a short design note.", EstimatedPomodoros: 1},
				{ID: "build", Title: "Build it", Description: "Implement and test the feature.", EstimatedPomodoros: 4},
				{ID: "demo", Title: "Demo it", Description: "Record or write up what you shipped.", EstimatedPomodoros: 1},
			},
		},
		{
			ID:          "dev-open-source",
			Title:       "Open Source Contribution",
			Description: "Open a pull request against a project you do not own.",
			Category:    CategoryTech,
			XPReward:    250,
			Frequency:   FrequencyMilestone,
			Difficulty:  DifficultyElite,
			Tier:        3,
			Roles:       []string{RoleDeveloper},
			Unlock:      &UnlockRequirement{Level: 8, Streak: 7},
			Subtasks: []SubtaskTemplate{
				{ID: "find", Title: "Find an issue", Description: "Pick a good-first-issue or a bug you hit.", EstimatedPomodoros: 1},
				{ID: "fix", Title: "Fix it", Description: "Implement the change following the project guidelines.", EstimatedPomodoros: 4},
				{ID: "pr", Title: "Open the PR", Description: "Describe the change and respond to review.", EstimatedPomodoros: 1},
			},
		},

		// Student
		{
			ID:          "study-deep-session",
			Title:       "Deep Study Session",
			Description: "Two focused pomodoros on your hardest subject.",
			Category:    CategoryAcademics,
			XPReward:    35,
			Frequency:   FrequencyDaily,
			Difficulty:  DifficultyBasic,
			Tier:        1,
			Roles:       []string{RoleStudent},
		},
		{
			ID:          "study-flashcards",
			Title:       "Flashcard Review",
			Description: "Clear today's spaced-repetition queue.",
			Category:    CategoryAcademics,
			XPReward:    20,
			Frequency:   FrequencyDaily,
			Difficulty:  DifficultyBasic,
			Tier:        1,
			Roles:       []string{RoleStudent},
		},
		{
			ID:          "study-weekly-review",
			Title:       "Weekly Knowledge Review",
			Description: "Summarize what you learned this week in your own words.",
			Category:    CategoryAcademics,
			XPReward:    80,
			Frequency:   FrequencyWeekly,
			Difficulty:  DifficultyIntermediate,
			Tier:        2,
			Roles:       []string{RoleStudent},
			Unlock:      &UnlockRequirement{Level: 2, Streak: 0},
		},
		{
			ID:          "study-research-paper",
			Title:       "Read a Research Paper",
			Description: "Read one paper end to end and write a one-page summary.",
			Category:    CategoryAcademics,
			XPReward:    150,
			Frequency:   FrequencyMilestone,
			Difficulty:  DifficultyElite,
			Tier:        3,
			Roles:       []string{RoleStudent, RoleDeveloper},
			Unlock:      &UnlockRequirement{Level: 5, Streak: 5},
			Subtasks: []SubtaskTemplate{
				{ID: "skim", Title: "Skim abstract and figures", Description: "Decide what to focus on.", EstimatedPomodoros: 1},
				{ID: "read", Title: "Read carefully", Description: "Take margin notes.", EstimatedPomodoros: 2},
				{ID: "summary", Title: "Write the summary", Description: "One page, your own words.", EstimatedPomodoros: 1},
			},
		},

		// Entrepreneur
		{
			ID:          "biz-customer-call",
			Title:       "Talk to a Customer",
			Description: "Have one conversation with a customer or prospect.",
			Category:    CategoryBusiness,
			XPReward:    45,
			Frequency:   FrequencyDaily,
			Difficulty:  DifficultyBasic,
			Tier:        1,
			Roles:       []string{RoleEntrepreneur},
		},
		{
			ID:          "biz-metrics",
			Title:       "Review Key Metrics",
			Description: "Check revenue, signups and churn; note one action.",
			Category:    CategoryBusiness,
			XPReward:    60,
			Frequency:   FrequencyWeekly,
			Difficulty:  DifficultyBasic,
			Tier:        1,
			Roles:       []string{RoleEntrepreneur},
		},
		{
			ID:          "biz-pitch-deck",
			Title:       "Polish the Pitch Deck",
			Description: "Rework the narrative and numbers of your pitch.",
			Category:    CategoryBusiness,
			XPReward:    200,
			Frequency:   FrequencyMilestone,
			Difficulty:  DifficultyIntermediate,
			Tier:        2,
			Roles:       []string{RoleEntrepreneur},
			Unlock:      &UnlockRequirement{Level: 4, Streak: 0},
			Subtasks: []SubtaskTemplate{
				{ID: "story", Title: "Rewrite the story", Description: "Problem, solution, why now.", EstimatedPomodoros: 2},
				{ID: "numbers", Title: "Update the numbers", Description: "Traction and financial model.", EstimatedPomodoros: 2},
				{ID: "rehearse", Title: "Rehearse", Description: "Pitch it out loud twice.", EstimatedPomodoros: 1},
			},
		},

		// Creator
		{
			ID:          "content-write",
			Title:       "Write 500 Words",
			Description: "Draft 500 words for a post, script or newsletter.",
			Category:    CategoryContent,
			XPReward:    35,
			Frequency:   FrequencyDaily,
			Difficulty:  DifficultyBasic,
			Tier:        1,
			Roles:       []string{RoleCreator},
		},
		{
			ID:          "content-publish",
			Title:       "Publish a Piece",
			Description: "Publish one finished piece of content.",
			Category:    CategoryContent,
			XPReward:    90,
			Frequency:   FrequencyWeekly,
			Difficulty:  DifficultyIntermediate,
			Tier:        2,
			Roles:       []string{RoleCreator, RoleEntrepreneur},
			Subtasks: []SubtaskTemplate{
				{ID: "edit", Title: "Edit the draft", Description: "Tighten and fact-check.", EstimatedPomodoros: 2},
				{ID: "assets", Title: "Prepare assets", Description: "Thumbnail, images or captions.", EstimatedPomodoros: 1},
				{ID: "ship", Title: "Ship it", Description: "Publish and share in one channel.", EstimatedPomodoros: 1},
			},
		},
		{
			ID:          "content-series",
			Title:       "Launch a Content Series",
			Description: "Plan and release the first three episodes of a series.",
			Category:    CategoryContent,
			XPReward:    300,
			Frequency:   FrequencyMilestone,
			Difficulty:  DifficultyElite,
			Tier:        3,
			Roles:       []string{RoleCreator},
			Unlock:      &UnlockRequirement{Level: 10, Streak: 7},
		},

		// Athlete
		{
			ID:           "fit-strength",
			Title:        "Strength Training",
			Description:  "Complete a full strength workout.",
			Category:     CategoryFitness,
			XPReward:     40,
			Frequency:    FrequencyDaily,
			Difficulty:   DifficultyBasic,
			Tier:         1,
			Roles:        []string{RoleAthlete},
			FitnessTypes: []string{FitnessGym, FitnessCalisthenics},
		},
		{
			ID:           "fit-run",
			Title:        "Morning Run",
			Description:  "Run at least 3 km at an easy pace.",
			Category:     CategoryFitness,
			XPReward:     40,
			Frequency:    FrequencyDaily,
			Difficulty:   DifficultyBasic,
			Tier:         1,
			Roles:        []string{RoleAthlete},
			FitnessTypes: []string{FitnessRunning},
		},
		{
			ID:           "fit-yoga",
			Title:        "Yoga Flow",
			Description:  "Twenty minutes of mobility and breath work.",
			Category:     CategoryFitness,
			XPReward:     30,
			Frequency:    FrequencyDaily,
			Difficulty:   DifficultyBasic,
			Tier:         1,
			Roles:        []string{RoleAthlete, RoleMindful},
			FitnessTypes: []string{FitnessYoga},
		},
		{
			ID:           "fit-long-ride",
			Title:        "Long Ride",
			Description:  "A ride of 40 km or more.",
			Category:     CategoryFitness,
			XPReward:     100,
			Frequency:    FrequencyWeekly,
			Difficulty:   DifficultyIntermediate,
			Tier:         2,
			Roles:        []string{RoleAthlete},
			FitnessTypes: []string{FitnessCycling},
			Unlock:       &UnlockRequirement{Level: 3, Streak: 0},
		},
		{
			ID:          "fit-steps",
			Title:       "10k Steps",
			Description: "Walk ten thousand steps today.",
			Category:    CategoryFitness,
			XPReward:    25,
			Frequency:   FrequencyDaily,
			Difficulty:  DifficultyBasic,
			Tier:        1,
			Roles:       []string{RoleAthlete, RoleMindful, RoleStudent, RoleDeveloper, RoleEntrepreneur, RoleCreator},
		},
		{
			ID:           "fit-race",
			Title:        "Race Day",
			Description:  "Enter and finish an organized race.",
			Category:     CategoryFitness,
			XPReward:     300,
			Frequency:    FrequencyMilestone,
			Difficulty:   DifficultyElite,
			Tier:         3,
			Roles:        []string{RoleAthlete},
			FitnessTypes: []string{FitnessRunning, FitnessCycling},
			Unlock:       &UnlockRequirement{Level: 6, Streak: 7},
		},

		// Mindful
		{
			ID:          "mind-meditate",
			Title:       "Meditate",
			Description: "Ten minutes of seated meditation.",
			Category:    CategoryPersonal,
			XPReward:    20,
			Frequency:   FrequencyDaily,
			Difficulty:  DifficultyBasic,
			Tier:        1,
			Roles:       []string{RoleMindful},
		},
		{
			ID:          "mind-journal",
			Title:       "Evening Journal",
			Description: "Write three things that went well today.",
			Category:    CategoryPersonal,
			XPReward:    20,
			Frequency:   FrequencyDaily,
			Difficulty:  DifficultyBasic,
			Tier:        1,
			Roles:       []string{RoleMindful, RoleStudent, RoleCreator},
		},
		{
			ID:          "mind-digital-detox",
			Title:       "Digital Detox Day",
			Description: "Spend a full day without social media.",
			Category:    CategoryPersonal,
			XPReward:    80,
			Frequency:   FrequencyWeekly,
			Difficulty:  DifficultyIntermediate,
			Tier:        2,
			Roles:       []string{RoleMindful},
			Unlock:      &UnlockRequirement{Level: 2, Streak: 3},
		},
	}
}
