package catalog

// DefaultSeed returns the built-in starter catalog: one morning and one
// evening question per category. Morning questions open the day at
// difficulty 1; evening questions ask for a deeper look back at
// difficulty 2. Used by SeedIfEmpty when the catalog table is empty.
func DefaultSeed() []Question {
	return []Question{
		// Morning.
		{Category: CategorySelfImage, Mode: ModeMorning, Difficulty: 1,
			Text: "What do you want to focus on today?",
			Tips: []string{"Pick a time window", "Name a concrete first step"}},
		{Category: CategoryEmotion, Mode: ModeMorning, Difficulty: 1,
			Text: "What mood are you carrying into the day, and what does it need?",
			Tips: []string{"Name the emotion", "Derive the need behind it"}},
		{Category: CategoryHabit, Mode: ModeMorning, Difficulty: 1,
			Text: "Which small habit will you definitely do today (2 minutes or less)?",
			Tips: []string{"Set the context", "Choose a start signal"}},
		{Category: CategoryRelationship, Mode: ModeMorning, Difficulty: 1,
			Text: "Who do you want to consciously appreciate today, and how exactly?",
			Tips: []string{"Name the person", "Pick the form of appreciation"}},
		{Category: CategoryMindset, Mode: ModeMorning, Difficulty: 1,
			Text: "Which assumption will you test today instead of simply believing it?",
			Tips: []string{"State the assumption", "Design a mini experiment"}},
		{Category: CategoryVision, Mode: ModeMorning, Difficulty: 1,
			Text: "What is the smallest step that brings you closer to your vision today?",
			Tips: []string{"Vision in one sentence", "Step of 15 minutes or less"}},
		{Category: CategoryFuture, Mode: ModeMorning, Difficulty: 1,
			Text: "What result do you want to have reached by 6 pm?",
			Tips: []string{"Concrete", "Measurable", "Realistic"}},
		{Category: CategoryBody, Mode: ModeMorning, Difficulty: 1,
			Text: "What gives you energy this morning, and how will you protect 10 minutes for it?",
			Tips: []string{"Plan it concretely", "Keep the step small"}},

		// Evening.
		{Category: CategorySelfImage, Mode: ModeEvening, Difficulty: 2,
			Text: "What were you proud of in yourself today, concretely?",
			Tips: []string{"Give an example", "Name the feeling"}},
		{Category: CategoryEmotion, Mode: ModeEvening, Difficulty: 2,
			Text: "When did you listen to yourself today instead of just functioning?",
			Tips: []string{"Spot the moment", "Notice the body signal"}},
		{Category: CategoryHabit, Mode: ModeEvening, Difficulty: 2,
			Text: "Which decision today was good enough instead of perfect, and why?",
			Tips: []string{"The decision", "What you learned"}},
		{Category: CategoryRelationship, Mode: ModeEvening, Difficulty: 2,
			Text: "Was there a small moment of real closeness today?",
			Tips: []string{"What happened", "Why it mattered"}},
		{Category: CategoryMindset, Mode: ModeEvening, Difficulty: 2,
			Text: "Where did your perspective shift today?",
			Tips: []string{"Before", "The trigger", "After"}},
		{Category: CategoryVision, Mode: ModeEvening, Difficulty: 2,
			Text: "Which thought sparked your creativity today?",
			Tips: []string{"The trigger", "Sketch the idea", "Next attempt"}},
		{Category: CategoryFuture, Mode: ModeEvening, Difficulty: 2,
			Text: "What did you do today that your future self will thank you for?",
			Tips: []string{"The step", "Its effect", "Worth repeating?"}},
		{Category: CategoryBody, Mode: ModeEvening, Difficulty: 2,
			Text: "How did you notice today that your body was well taken care of?",
			Tips: []string{"Name the signal", "The situation"}},
	}
}
