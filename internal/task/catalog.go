package task

var defaults = []Task{
	{ID: 1, Title: "Green commute today", Description: "Walk, cycle or take the bus today", Type: Daily,
		Requirement: Requirement{Type: TravelCount, Value: 1, Mode: ModeGreen}, Reward: Reward{Points: 20}},
	{ID: 2, Title: "Carbon cutter", Description: "Save 5 kg of CO2 in total", Type: Weekly,
		Requirement: Requirement{Type: CarbonSaved, Value: 5}, Reward: Reward{Points: 50, Badge: "Carbon Cutter"}},
	{ID: 3, Title: "Green streak", Description: "Travel low-carbon 3 days in a row", Type: Special,
		Requirement: Requirement{Type: Streak, Value: 3}, Reward: Reward{Points: 100, Badge: "Eco Expert"}},
	{ID: 4, Title: "Dragon Pond Road safe passage", Description: "Take the Dragon Pond Road safe route", Type: Daily,
		Requirement: Requirement{Type: SpecificRoute, Value: 1, Route: "dragon_pond_safe"}, Reward: Reward{Points: 30}},
	{ID: 5, Title: "Commute pro", Description: "Use several green modes in one day", Type: Daily,
		Requirement: Requirement{Type: TravelCount, Value: 2, Mode: ModeGreen}, Reward: Reward{Points: 30}},
	{ID: 6, Title: "Campus walker", Description: "Walk 1 km on campus", Type: Daily,
		Requirement: Requirement{Type: TravelCount, Value: 1, Mode: "walking"}, Reward: Reward{Points: 15}},
	{ID: 7, Title: "Weekly cyclist", Description: "Cycle at least 3 times this week", Type: Weekly,
		Requirement: Requirement{Type: TravelCount, Value: 3, Mode: "cycling"}, Reward: Reward{Points: 50, Badge: "Cycling Fan"}},
	{ID: 8, Title: "Public transport supporter", Description: "Ride the bus at least 5 times this week", Type: Weekly,
		Requirement: Requirement{Type: TravelCount, Value: 5, Mode: "bus"}, Reward: Reward{Points: 60, Badge: "Bus Regular"}},
	{ID: 9, Title: "Campus explorer", Description: "Visit 5 different campus buildings", Type: Special,
		Requirement: Requirement{Type: TravelCount, Value: 5, Mode: ModeExploration}, Reward: Reward{Points: 75, Badge: "Campus Adventurer"}},
	{ID: 10, Title: "Train commute challenge", Description: "Complete a trip on the station route", Type: Special,
		Requirement: Requirement{Type: SpecificRoute, Value: 1, Route: "station_route"}, Reward: Reward{Points: 40, Badge: "Rail Fan"}},
	{ID: 11, Title: "Climate warrior", Description: "Travel green on a rainy day", Type: Special,
		Requirement: Requirement{Type: TravelCount, Value: 1, Mode: ModeRainyGreen}, Reward: Reward{Points: 50, Badge: "All-Weather Eco"}},
	{ID: 12, Title: "Carbon champion", Description: "Save 10 kg of CO2 in total", Type: Special,
		Requirement: Requirement{Type: CarbonSaved, Value: 10}, Reward: Reward{Points: 100, Badge: "Earth Guardian"}},
}

// Catalog returns the default task list: every task open at zero progress.
func Catalog() []Task {
	return append([]Task(nil), defaults...)
}

// Reset rematerializes the catalog. With no cadences every task is reset;
// otherwise only tasks of the given cadences are, and the rest keep their
// state from current.
func Reset(current []Task, cadences ...Cadence) []Task {
	if len(cadences) == 0 {
		return Catalog()
	}
	reset := make(map[Cadence]bool, len(cadences))
	for _, c := range cadences {
		reset[c] = true
	}
	byID := make(map[int]Task, len(current))
	for _, t := range current {
		byID[t.ID] = t
	}

	out := Catalog()
	for i, def := range out {
		if reset[def.Type] {
			continue
		}
		if prev, ok := byID[def.ID]; ok {
			out[i].Completed = prev.Completed
			out[i].Progress = prev.Progress
		}
	}
	return out
}

// Normalize reconciles a stored task list with the catalog: definitions
// come from the catalog, runtime state from stored entries with a known id.
func Normalize(stored []Task) []Task {
	byID := make(map[int]Task, len(stored))
	for _, t := range stored {
		byID[t.ID] = t
	}
	out := Catalog()
	for i := range out {
		if prev, ok := byID[out[i].ID]; ok {
			out[i].Completed = prev.Completed
			out[i].Progress = clamp(prev.Progress)
		}
	}
	return out
}
