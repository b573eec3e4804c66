package schema

import "time"

// BalancedArchetype is the fallback archetype assigned when no catalogue entry
// scores above zero.
const BalancedArchetype = "Generalist"

// DefaultStatementPool returns the shipped statement catalogue: four
// statements per dimension with hand-assigned loadings and social-desirability
// ratings. The pool is what makes the system usable before any custom
// catalogue is loaded.
func DefaultStatementPool() []Statement {
	return []Statement{
		// Drive
		{ID: "DRV-01", Text: "I push hard to finish what I start, even when momentum fades.", Dimension: DimDrive, Loading: 0.78, SocialDesirability: 0.9, Context: "work"},
		{ID: "DRV-02", Text: "I set ambitious targets for myself without being asked.", Dimension: DimDrive, Loading: 0.71, SocialDesirability: 0.6, Context: "self"},
		{ID: "DRV-03", Text: "A day without visible progress feels wasted to me.", Dimension: DimDrive, Loading: 0.62, SocialDesirability: -0.2, Context: "self"},
		{ID: "DRV-04", Text: "I volunteer for the hardest piece of a project.", Dimension: DimDrive, Loading: 0.66, SocialDesirability: 0.4, Context: "team"},

		// Strategic
		{ID: "STR-01", Text: "I map out several moves ahead before committing to a plan.", Dimension: DimStrategic, Loading: 0.80, SocialDesirability: 0.7, Context: "work"},
		{ID: "STR-02", Text: "I quickly spot which options are dead ends.", Dimension: DimStrategic, Loading: 0.73, SocialDesirability: 0.5, Context: "work"},
		{ID: "STR-03", Text: "I enjoy reducing a messy situation to its few real choices.", Dimension: DimStrategic, Loading: 0.68, SocialDesirability: 0.3, Context: "self"},
		{ID: "STR-04", Text: "Others ask me to sanity-check their plans.", Dimension: DimStrategic, Loading: 0.60, SocialDesirability: 0.8, Context: "team"},

		// Empathy
		{ID: "EMP-01", Text: "I sense how someone feels before they say a word.", Dimension: DimEmpathy, Loading: 0.77, SocialDesirability: 0.8, Context: "team"},
		{ID: "EMP-02", Text: "Colleagues bring me their problems before anyone else.", Dimension: DimEmpathy, Loading: 0.69, SocialDesirability: 0.6, Context: "team"},
		{ID: "EMP-03", Text: "I adjust my message based on the mood in the room.", Dimension: DimEmpathy, Loading: 0.64, SocialDesirability: 0.5, Context: "work"},
		{ID: "EMP-04", Text: "Other people's setbacks stay on my mind.", Dimension: DimEmpathy, Loading: 0.58, SocialDesirability: -0.3, Context: "self"},

		// Communication
		{ID: "COM-01", Text: "I can explain a complicated idea so anyone can follow it.", Dimension: DimCommunication, Loading: 0.79, SocialDesirability: 0.9, Context: "work"},
		{ID: "COM-02", Text: "I think out loud and refine ideas by talking them through.", Dimension: DimCommunication, Loading: 0.63, SocialDesirability: -0.1, Context: "self"},
		{ID: "COM-03", Text: "I enjoy presenting to groups, large or small.", Dimension: DimCommunication, Loading: 0.70, SocialDesirability: 0.2, Context: "work"},
		{ID: "COM-04", Text: "People remember the stories I use to make a point.", Dimension: DimCommunication, Loading: 0.66, SocialDesirability: 0.4, Context: "team"},

		// Analytical
		{ID: "ANA-01", Text: "I want to see the data before I accept a conclusion.", Dimension: DimAnalytical, Loading: 0.81, SocialDesirability: 0.7, Context: "work"},
		{ID: "ANA-02", Text: "I notice when numbers don't add up.", Dimension: DimAnalytical, Loading: 0.74, SocialDesirability: 0.6, Context: "work"},
		{ID: "ANA-03", Text: "I break problems into parts before attacking any of them.", Dimension: DimAnalytical, Loading: 0.68, SocialDesirability: 0.5, Context: "self"},
		{ID: "ANA-04", Text: "Gut-feel decisions make me uncomfortable.", Dimension: DimAnalytical, Loading: 0.57, SocialDesirability: -0.4, Context: "self"},

		// Adaptability
		{ID: "ADA-01", Text: "Sudden changes of plan don't rattle me.", Dimension: DimAdaptability, Loading: 0.76, SocialDesirability: 0.6, Context: "self"},
		{ID: "ADA-02", Text: "I do my best work when priorities shift quickly.", Dimension: DimAdaptability, Loading: 0.69, SocialDesirability: 0.3, Context: "work"},
		{ID: "ADA-03", Text: "I treat surprises as information, not obstacles.", Dimension: DimAdaptability, Loading: 0.64, SocialDesirability: 0.5, Context: "self"},
		{ID: "ADA-04", Text: "I'd rather improvise than over-prepare.", Dimension: DimAdaptability, Loading: 0.55, SocialDesirability: -0.5, Context: "self"},

		// Discipline
		{ID: "DIS-01", Text: "I keep routines that others find hard to sustain.", Dimension: DimDiscipline, Loading: 0.78, SocialDesirability: 0.5, Context: "self"},
		{ID: "DIS-02", Text: "My work area and my plans are organized at all times.", Dimension: DimDiscipline, Loading: 0.70, SocialDesirability: 0.4, Context: "work"},
		{ID: "DIS-03", Text: "Deadlines are promises; I don't miss them.", Dimension: DimDiscipline, Loading: 0.73, SocialDesirability: 0.9, Context: "work"},
		{ID: "DIS-04", Text: "Unstructured time makes me restless.", Dimension: DimDiscipline, Loading: 0.56, SocialDesirability: -0.6, Context: "self"},

		// Influence
		{ID: "INF-01", Text: "I can win people over to a position they started out against.", Dimension: DimInfluence, Loading: 0.80, SocialDesirability: 0.6, Context: "team"},
		{ID: "INF-02", Text: "I naturally take charge when a group stalls.", Dimension: DimInfluence, Loading: 0.72, SocialDesirability: 0.3, Context: "team"},
		{ID: "INF-03", Text: "I enjoy negotiating and rarely leave empty-handed.", Dimension: DimInfluence, Loading: 0.67, SocialDesirability: 0.2, Context: "work"},
		{ID: "INF-04", Text: "I'm comfortable asking for things others hesitate to ask for.", Dimension: DimInfluence, Loading: 0.61, SocialDesirability: -0.2, Context: "self"},

		// Collaboration
		{ID: "COL-01", Text: "I'd rather share credit than work alone.", Dimension: DimCollaboration, Loading: 0.75, SocialDesirability: 0.8, Context: "team"},
		{ID: "COL-02", Text: "I make a point of drawing quiet people into discussions.", Dimension: DimCollaboration, Loading: 0.70, SocialDesirability: 0.9, Context: "team"},
		{ID: "COL-03", Text: "Team wins feel better to me than personal wins.", Dimension: DimCollaboration, Loading: 0.65, SocialDesirability: 0.7, Context: "self"},
		{ID: "COL-04", Text: "I smooth over friction between teammates.", Dimension: DimCollaboration, Loading: 0.59, SocialDesirability: 0.6, Context: "team"},

		// Learning
		{ID: "LRN-01", Text: "I pick up new tools and methods faster than most.", Dimension: DimLearning, Loading: 0.77, SocialDesirability: 0.6, Context: "work"},
		{ID: "LRN-02", Text: "I read or practice something new almost every week.", Dimension: DimLearning, Loading: 0.71, SocialDesirability: 0.5, Context: "self"},
		{ID: "LRN-03", Text: "Being a beginner again doesn't embarrass me.", Dimension: DimLearning, Loading: 0.63, SocialDesirability: 0.3, Context: "self"},
		{ID: "LRN-04", Text: "I seek out feedback even when it stings.", Dimension: DimLearning, Loading: 0.66, SocialDesirability: 0.7, Context: "work"},

		// Resilience
		{ID: "RES-01", Text: "Setbacks don't keep me down for long.", Dimension: DimResilience, Loading: 0.79, SocialDesirability: 0.8, Context: "self"},
		{ID: "RES-02", Text: "I stay calm when everything goes wrong at once.", Dimension: DimResilience, Loading: 0.74, SocialDesirability: 0.7, Context: "work"},
		{ID: "RES-03", Text: "Criticism rarely shakes my confidence.", Dimension: DimResilience, Loading: 0.65, SocialDesirability: 0.2, Context: "self"},
		{ID: "RES-04", Text: "I recover my focus quickly after bad news.", Dimension: DimResilience, Loading: 0.68, SocialDesirability: 0.5, Context: "self"},

		// Vision
		{ID: "VIS-01", Text: "I see where things are heading long before others do.", Dimension: DimVision, Loading: 0.78, SocialDesirability: 0.4, Context: "work"},
		{ID: "VIS-02", Text: "I talk about the future more than the past.", Dimension: DimVision, Loading: 0.62, SocialDesirability: 0.1, Context: "self"},
		{ID: "VIS-03", Text: "Big possibilities energize me more than today's tasks.", Dimension: DimVision, Loading: 0.69, SocialDesirability: -0.1, Context: "self"},
		{ID: "VIS-04", Text: "I paint a picture of the destination that others rally behind.", Dimension: DimVision, Loading: 0.72, SocialDesirability: 0.6, Context: "team"},
	}
}

// DefaultItemParameters returns the shipped fallback parameter set: unit
// discrimination and zero offset for every dimension. Lower precision than a
// calibrated set, but it lets the system function the first time it runs.
func DefaultItemParameters() ItemParameters {
	dims := make(map[Dimension]DimensionParameters, NumDimensions)
	for _, d := range AllDimensions {
		dims[d] = DimensionParameters{Discrimination: DefaultDiscrimination, Offset: 0}
	}
	return ItemParameters{
		Version:    0,
		Source:     DefaultParams,
		Dimensions: dims,
		CreatedAt:  time.Time{},
	}
}

// DefaultNormTable returns the literature-default norms: theta is treated as
// standard normal on every dimension.
func DefaultNormTable() NormTable {
	dims := make(map[Dimension]NormParameters, NumDimensions)
	for _, d := range AllDimensions {
		dims[d] = NormParameters{Mean: 0, SD: 1}
	}
	return NormTable{Version: 0, Dimensions: dims}
}

// ArchetypeCatalogue returns the fixed archetype catalogue in definition
// order. Catalogue order is the final tie-breaker during archetype mapping,
// so the order here is part of the contract.
func ArchetypeCatalogue() []CareerArchetype {
	return []CareerArchetype{
		{
			Name:           "Strategist",
			Primary:        []Dimension{DimStrategic, DimVision},
			Secondary:      []Dimension{DimAnalytical, DimLearning, DimAdaptability},
			SuggestedRoles: []string{"Product strategist", "Management consultant", "Research lead"},
			Description:    "Sees the whole board and plans several moves ahead.",
		},
		{
			Name:           "Executor",
			Primary:        []Dimension{DimDrive, DimDiscipline},
			Secondary:      []Dimension{DimResilience, DimAnalytical, DimAdaptability},
			SuggestedRoles: []string{"Program manager", "Operations lead", "Founder"},
			Description:    "Turns plans into finished work, reliably and relentlessly.",
		},
		{
			Name:           "Connector",
			Primary:        []Dimension{DimEmpathy, DimCollaboration},
			Secondary:      []Dimension{DimCommunication, DimInfluence, DimLearning},
			SuggestedRoles: []string{"People manager", "Customer success lead", "Coach"},
			Description:    "Builds the relationships that make teams work.",
		},
		{
			Name:           "Catalyst",
			Primary:        []Dimension{DimInfluence, DimCommunication},
			Secondary:      []Dimension{DimVision, DimDrive, DimResilience},
			SuggestedRoles: []string{"Sales lead", "Evangelist", "Change manager"},
			Description:    "Gets people moving and keeps them moving.",
		},
	}
}

// SynergyCatalogue returns the curated combinations of dominant dimension
// pairs. Lookup only; no computation is attached to these.
func SynergyCatalogue() []SynergyPair {
	return []SynergyPair{
		{A: DimStrategic, B: DimVision, Name: "Pathfinder", Note: "Long-range direction backed by concrete routes to get there."},
		{A: DimDrive, B: DimDiscipline, Name: "Finisher", Note: "Ambition with the structure to sustain it."},
		{A: DimEmpathy, B: DimCommunication, Name: "Translator", Note: "Reads the room and says exactly what it needs to hear."},
		{A: DimInfluence, B: DimVision, Name: "Mobilizer", Note: "Sells the future convincingly enough that people build it."},
		{A: DimAnalytical, B: DimStrategic, Name: "Architect", Note: "Plans that survive contact with the data."},
		{A: DimAdaptability, B: DimResilience, Name: "Shock Absorber", Note: "Bends without breaking when conditions change."},
		{A: DimCollaboration, B: DimInfluence, Name: "Coalition Builder", Note: "Assembles allies and keeps them aligned."},
		{A: DimLearning, B: DimDrive, Name: "Compounder", Note: "Improvement that accelerates instead of plateauing."},
	}
}
