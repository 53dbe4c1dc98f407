package catalog

// Default returns the built-in game data: the eleven-stage evolution ladder,
// the per-stage upgrade lists, the task board, and the booster shop.
func Default() *Catalog {
	c, err := New(defaultStages(), defaultUpgrades(), defaultTasks(), defaultBoosters())
	if err != nil {
		// Built-in data is validated by tests; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return c
}

func defaultStages() []Stage {
	return []Stage{
		{Name: "Cell", Description: "A droplet in the ocean with the potential of a universe.", Threshold: 0},
		{Name: "Amoeba", Description: "You learned to move. The first step toward something greater.", Threshold: 1_000},
		{Name: "Jellyfish", Description: "You drift through the abyss. The light pulls you upward.", Threshold: 5_000},
		{Name: "Fish", Description: "You conquered the depths. What hides above the surface?", Threshold: 25_000},
		{Name: "Lizard", Description: "You crawled onto land. The world got bigger.", Threshold: 150_000},
		{Name: "Bird", Description: "Wings. Wind. Freedom.", Threshold: 1_000_000},
		{Name: "Monkey", Description: "You think. You create. You are more than flesh.", Threshold: 7_000_000},
		{Name: "Human", Description: "Civilization. Technology. Where does this path lead?", Threshold: 50_000_000},
		{Name: "Cyborg", Description: "Flesh and steel. The next step.", Threshold: 400_000_000},
		{Name: "Alien", Description: "You left your planet. The universe calls.", Threshold: 3_500_000_000},
		{Name: "Genome God", Description: "You are the creator. You are genesis.", Threshold: 50_000_000_000},
	}
}

func defaultUpgrades() map[int]StageUpgrades {
	return map[int]StageUpgrades{
		0: {
			Click: []UpgradeDef{
				{ID: "cell_membrane", Name: "Membrane Reinforcement", Effect: 1, BaseCost: 100},
				{ID: "cell_energy", Name: "Cellular Energy", Effect: 5, BaseCost: 200, Energy: true},
			},
			Passive: []UpgradeDef{
				{ID: "basic_metabolism", Name: "Basic Metabolism", Effect: 0.5, BaseCost: 300},
				{ID: "cell_division", Name: "Cell Division", Effect: 1, BaseCost: 500},
				{ID: "protein_synthesis", Name: "Protein Synthesis", Effect: 2, BaseCost: 800},
			},
		},
		1: {
			Click: []UpgradeDef{
				{ID: "pseudopod_strength", Name: "Pseudopod Strength", Effect: 2, BaseCost: 2_000},
				{ID: "amoeba_energy", Name: "Amoeba Energy", Effect: 10, BaseCost: 3_000, Energy: true},
			},
			Passive: []UpgradeDef{
				{ID: "amoeba_movement", Name: "Amoeba Movement", Effect: 3, BaseCost: 4_000},
				{ID: "phagocytosis", Name: "Phagocytosis", Effect: 5, BaseCost: 6_000},
				{ID: "cytoplasm_flow", Name: "Cytoplasm Flow", Effect: 8, BaseCost: 10_000},
			},
		},
		2: {
			Click: []UpgradeDef{
				{ID: "tentacle_strike", Name: "Tentacle Strike", Effect: 5, BaseCost: 15_000},
				{ID: "jellyfish_energy", Name: "Jellyfish Energy", Effect: 15, BaseCost: 20_000, Energy: true},
			},
			Passive: []UpgradeDef{
				{ID: "bioluminescence", Name: "Bioluminescence", Effect: 12, BaseCost: 25_000},
				{ID: "water_jet", Name: "Water Jet", Effect: 18, BaseCost: 35_000},
				{ID: "nervous_net", Name: "Nerve Net", Effect: 25, BaseCost: 50_000},
			},
		},
		3: {
			Click: []UpgradeDef{
				{ID: "fin_power", Name: "Fin Power", Effect: 10, BaseCost: 100_000},
				{ID: "fish_energy", Name: "Fish Energy", Effect: 20, BaseCost: 120_000, Energy: true},
			},
			Passive: []UpgradeDef{
				{ID: "swimming_muscles", Name: "Swimming Muscles", Effect: 40, BaseCost: 150_000},
				{ID: "gills_efficiency", Name: "Gill Efficiency", Effect: 60, BaseCost: 200_000},
				{ID: "lateral_line", Name: "Lateral Line", Effect: 80, BaseCost: 300_000},
			},
		},
		4: {
			Click: []UpgradeDef{
				{ID: "claw_strength", Name: "Claw Strength", Effect: 20, BaseCost: 800_000},
				{ID: "lizard_energy", Name: "Lizard Energy", Effect: 25, BaseCost: 1_000_000, Energy: true},
			},
			Passive: []UpgradeDef{
				{ID: "scales_protection", Name: "Scale Armor", Effect: 120, BaseCost: 1_200_000},
				{ID: "tail_balance", Name: "Tail Balance", Effect: 180, BaseCost: 1_800_000},
				{ID: "cold_blood", Name: "Cold Blood", Effect: 250, BaseCost: 2_500_000},
			},
		},
		5: {
			Click: []UpgradeDef{
				{ID: "wing_beat", Name: "Wing Beat", Effect: 50, BaseCost: 5_000_000},
				{ID: "bird_energy", Name: "Bird Energy", Effect: 30, BaseCost: 6_000_000, Energy: true},
			},
			Passive: []UpgradeDef{
				{ID: "flight_muscles", Name: "Flight Muscles", Effect: 400, BaseCost: 7_000_000},
				{ID: "hollow_bones", Name: "Hollow Bones", Effect: 600, BaseCost: 10_000_000},
				{ID: "air_sacs", Name: "Air Sacs", Effect: 800, BaseCost: 15_000_000},
			},
		},
		6: {
			Click: []UpgradeDef{
				{ID: "grip_strength", Name: "Grip Strength", Effect: 100, BaseCost: 30_000_000},
				{ID: "monkey_energy", Name: "Monkey Energy", Effect: 35, BaseCost: 35_000_000, Energy: true},
			},
			Passive: []UpgradeDef{
				{ID: "tool_use", Name: "Tool Use", Effect: 1_200, BaseCost: 40_000_000},
				{ID: "social_intelligence", Name: "Social Intelligence", Effect: 1_800, BaseCost: 60_000_000},
				{ID: "opposable_thumbs", Name: "Opposable Thumbs", Effect: 2_500, BaseCost: 80_000_000},
			},
		},
		7: {
			Click: []UpgradeDef{
				{ID: "human_intelligence", Name: "Human Intelligence", Effect: 200, BaseCost: 200_000_000},
				{ID: "human_energy", Name: "Human Energy", Effect: 40, BaseCost: 250_000_000, Energy: true},
			},
			Passive: []UpgradeDef{
				{ID: "language", Name: "Language", Effect: 4_000, BaseCost: 300_000_000},
				{ID: "agriculture", Name: "Agriculture", Effect: 6_000, BaseCost: 450_000_000},
				{ID: "technology", Name: "Technology", Effect: 8_000, BaseCost: 600_000_000},
			},
		},
		8: {
			Click: []UpgradeDef{
				{ID: "cyber_enhancement", Name: "Cyber Enhancement", Effect: 500, BaseCost: 1_500_000_000},
				{ID: "cyborg_energy", Name: "Cyborg Energy", Effect: 50, BaseCost: 1_800_000_000, Energy: true},
			},
			Passive: []UpgradeDef{
				{ID: "neural_interface", Name: "Neural Interface", Effect: 15_000, BaseCost: 2_000_000_000},
				{ID: "artificial_organs", Name: "Artificial Organs", Effect: 22_000, BaseCost: 3_000_000_000},
				{ID: "quantum_processor", Name: "Quantum Processor", Effect: 30_000, BaseCost: 4_000_000_000},
			},
		},
		9: {
			Click: []UpgradeDef{
				{ID: "alien_technology", Name: "Alien Technology", Effect: 1_000, BaseCost: 12_000_000_000},
				{ID: "alien_energy", Name: "Alien Energy", Effect: 60, BaseCost: 15_000_000_000, Energy: true},
			},
			Passive: []UpgradeDef{
				{ID: "telepathy", Name: "Telepathy", Effect: 50_000, BaseCost: 18_000_000_000},
				{ID: "dimensional_travel", Name: "Dimensional Travel", Effect: 75_000, BaseCost: 25_000_000_000},
				{ID: "cosmic_consciousness", Name: "Cosmic Consciousness", Effect: 100_000, BaseCost: 35_000_000_000},
			},
		},
		10: {
			Click: []UpgradeDef{
				{ID: "divine_power", Name: "Divine Power", Effect: 2_000, BaseCost: 100_000_000_000},
				{ID: "god_energy", Name: "God Energy", Effect: 100, BaseCost: 120_000_000_000, Energy: true},
			},
			Passive: []UpgradeDef{
				{ID: "creation_power", Name: "Creation Power", Effect: 200_000, BaseCost: 150_000_000_000},
				{ID: "universal_control", Name: "Universal Control", Effect: 300_000, BaseCost: 200_000_000_000},
				{ID: "genome_mastery", Name: "Genome Mastery", Effect: 500_000, BaseCost: 300_000_000_000},
			},
		},
	}
}

func defaultTasks() []TaskDef {
	stageArrival := func(id, title string, reward int64, stage int64, rank int) TaskDef {
		return TaskDef{
			ID:           id,
			Title:        title,
			Reward:       reward,
			UnlockRank:   rank,
			AutoComplete: true,
			Requires:     Predicate{Kind: PredStageAtLeast, Threshold: stage},
		}
	}

	return []TaskDef{
		stageArrival("reach_amoeba", "Evolve into an Amoeba", 2_000, 1, 0),
		stageArrival("reach_jellyfish", "Evolve into a Jellyfish", 10_000, 2, 1),
		stageArrival("reach_fish", "Evolve into a Fish", 50_000, 3, 2),
		stageArrival("reach_lizard", "Evolve into a Lizard", 200_000, 4, 3),
		stageArrival("reach_bird", "Evolve into a Bird", 1_000_000, 5, 4),
		stageArrival("reach_monkey", "Evolve into a Monkey", 5_000_000, 6, 5),
		stageArrival("reach_human", "Evolve into a Human", 20_000_000, 7, 6),
		stageArrival("reach_cyborg", "Evolve into a Cyborg", 100_000_000, 8, 7),
		stageArrival("reach_alien", "Evolve into an Alien", 500_000_000, 9, 8),
		stageArrival("reach_god", "Evolve into the Genome God", 2_000_000_000, 10, 9),

		{ID: "first_click", Title: "First Contact", Reward: 100, UnlockRank: 0,
			Requires: Predicate{Kind: PredClicksAtLeast, Threshold: 100}},
		{ID: "energy_master", Title: "Energy Master", Reward: 500, UnlockRank: 1,
			Requires: Predicate{Kind: PredMaxEnergyAtLeast, Threshold: 150}},
		{ID: "first_upgrade", Title: "Gene Awakening", Reward: 1_000, UnlockRank: 2,
			Requires: Predicate{Kind: PredUpgradesOwnedAtLeast, Threshold: 1}},
		{ID: "invite_friend", Title: "Gene Propagation", Reward: 10_000, UnlockRank: 4,
			Requires: Predicate{Kind: PredReferralsAtLeast, Threshold: 1}},
		{ID: "click_master", Title: "Click Master", Reward: 2_000, UnlockRank: 5,
			Requires: Predicate{Kind: PredClicksAtLeast, Threshold: 1_000}},
		{ID: "geno_collector", Title: "GENO Collector", Reward: 5_000, UnlockRank: 6,
			Requires: Predicate{Kind: PredEarnedAtLeast, Threshold: 10_000}},
		{ID: "upgrade_expert", Title: "Upgrade Expert", Reward: 3_000, UnlockRank: 7,
			Requires: Predicate{Kind: PredUpgradesOwnedAtLeast, Threshold: 5}},
		{ID: "energy_optimizer", Title: "Energy Optimizer", Reward: 4_000, UnlockRank: 8,
			Requires: Predicate{Kind: PredMaxEnergyAtLeast, Threshold: 200}},
		{ID: "evolution_master", Title: "Evolution Master", Reward: 10_000, UnlockRank: 9,
			Requires: Predicate{Kind: PredStageAtLeast, Threshold: 7}},
		{ID: "passive_income", Title: "Passive Income", Reward: 2_000, UnlockRank: 10,
			Requires: Predicate{Kind: PredPassivePoolAtLeast, Threshold: 1_000}},
		{ID: "click_power", Title: "Click Power", Reward: 5_000, UnlockRank: 11,
			Requires: Predicate{Kind: PredClickPowerAtLeast, Threshold: 100}},
		{ID: "energy_efficiency", Title: "Energy Efficiency", Reward: 3_000, UnlockRank: 12,
			Requires: Predicate{Kind: PredEnergyUpgradesAtLeast, Threshold: 3}},
		{ID: "genome_god", Title: "Genome God", Reward: 50_000, UnlockRank: 13,
			Requires: Predicate{Kind: PredStageAtLeast, Threshold: 10}},
		{ID: "referral_network", Title: "Referral Network", Reward: 15_000, UnlockRank: 14,
			Requires: Predicate{Kind: PredReferralsAtLeast, Threshold: 3}},
		{ID: "task_completer", Title: "Task Completer", Reward: 8_000, UnlockRank: 15,
			Requires: Predicate{Kind: PredTasksCompletedAtLeast, Threshold: 10}},
		{ID: "energy_overflow", Title: "Energy Overflow", Reward: 10_000, UnlockRank: 16,
			Requires: Predicate{Kind: PredMaxEnergyAtLeast, Threshold: 500}},
		{ID: "passive_master", Title: "Passive Income Master", Reward: 12_000, UnlockRank: 17,
			Requires: Predicate{Kind: PredPassivePoolAtLeast, Threshold: 10_000}},
		{ID: "click_legend", Title: "Click Legend", Reward: 20_000, UnlockRank: 18,
			Requires: Predicate{Kind: PredClicksAtLeast, Threshold: 10_000}},
		{ID: "ultimate_evolution", Title: "Ultimate Evolution", Reward: 100_000, UnlockRank: 19,
			Requires: Predicate{Kind: PredAllOf, AllOf: []Predicate{
				{Kind: PredStageAtLeast, Threshold: 10},
				{Kind: PredTasksCompletedAtLeast, Threshold: 19},
			}}},
		{ID: "genetic_engineer", Title: "Genetic Engineer", Reward: 15_000, UnlockRank: 20,
			Requires: Predicate{Kind: PredUpgradesOwnedAtLeast, Threshold: 15}},
		{ID: "energy_tycoon", Title: "Energy Tycoon", Reward: 25_000, UnlockRank: 21,
			Requires: Predicate{Kind: PredMaxEnergyAtLeast, Threshold: 1_000}},
		{ID: "click_tycoon", Title: "Click Tycoon", Reward: 30_000, UnlockRank: 22,
			Requires: Predicate{Kind: PredClicksAtLeast, Threshold: 50_000}},
		{ID: "passive_tycoon", Title: "Passive Income Tycoon", Reward: 35_000, UnlockRank: 23,
			Requires: Predicate{Kind: PredPassivePoolAtLeast, Threshold: 100_000}},
		{ID: "referral_king", Title: "Referral King", Reward: 40_000, UnlockRank: 24,
			Requires: Predicate{Kind: PredReferralsAtLeast, Threshold: 10}},
		{ID: "booster_master", Title: "Booster Master", Reward: 20_000, UnlockRank: 25,
			Requires: Predicate{Kind: PredBoostersActivatedAtLeast, Threshold: 20}},
		{ID: "genome_collector", Title: "Genome Collector", Reward: 50_000, UnlockRank: 26,
			Requires: Predicate{Kind: PredEarnedAtLeast, Threshold: 1_000_000_000}},
		{ID: "evolution_speedrun", Title: "Evolution Speedrun", Reward: 30_000, UnlockRank: 27,
			Requires: Predicate{Kind: PredStageAtLeast, Threshold: 7}},
		{ID: "perfect_efficiency", Title: "Perfect Efficiency", Reward: 25_000, UnlockRank: 28,
			Requires: Predicate{Kind: PredEnergyUpgradesAtLeast, Threshold: 5}},
	}
}

func defaultBoosters() []BoosterDef {
	const hour = int64(60 * 60 * 1000)
	return []BoosterDef{
		{ID: "energy_boost_12h", Name: "Energy Boost 12h", DurationMS: 12 * hour, Price: 10, PriceIn: CurrencyStars},
		{ID: "energy_boost_24h", Name: "Energy Boost 24h", DurationMS: 24 * hour, Price: 18, PriceIn: CurrencyStars},
		{ID: "energy_boost_48h", Name: "Energy Boost 48h", DurationMS: 48 * hour, Price: 32, PriceIn: CurrencyStars},
		{ID: "energy_boost_72h", Name: "Energy Boost 72h", DurationMS: 72 * hour, Price: 45, PriceIn: CurrencyStars},
		{ID: "click_multiplier_1h", Name: "Click Multiplier 1h", DurationMS: 1 * hour, Price: 15, PriceIn: CurrencyStars},
		{ID: "click_multiplier_3h", Name: "Click Multiplier 3h", DurationMS: 3 * hour, Price: 25, PriceIn: CurrencyStars},
		{ID: "passive_multiplier_6h", Name: "Passive Multiplier 6h", DurationMS: 6 * hour, Price: 20, PriceIn: CurrencyStars},
		{ID: "energy_refill", Name: "Full Energy Refill", DurationMS: 0, Price: 1, PriceIn: CurrencyStars},
		{ID: "genetic_accelerator", Name: "Genetic Accelerator", DurationMS: 12 * hour, Price: 35, PriceIn: CurrencyStars},
		{ID: "cosmic_harvester", Name: "Cosmic Harvester", DurationMS: 48 * hour, Price: 50, PriceIn: CurrencyStars},
	}
}
