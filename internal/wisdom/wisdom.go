// Package wisdom selects daily teaching content from the static master
// corpus. The daily bundle is derived entirely from the date and the focus
// modules, so every call within one calendar day returns the same content.
package wisdom

// Teaching is the headline master teaching of the day.
type Teaching struct {
	Master    string `json:"master"`
	Expertise string `json:"expertise"`
	Teaching  string `json:"teaching"`
	Practice  string `json:"practice"`
	Module    string `json:"module"`
}

// Challenge is the skill challenge of the day.
type Challenge struct {
	Module     string `json:"module"`
	ModuleName string `json:"module_name"`
	Challenge  string `json:"challenge"`
}

// Bundle is one day's complete wisdom package.
type Bundle struct {
	Date          string       `json:"date"`
	Teaching      Teaching     `json:"master_teaching"`
	Insight       string       `json:"daily_insight"`
	Challenge     Challenge    `json:"skill_challenge"`
	PowerQuestion string       `json:"power_question"`
	MindsetShift  MindsetShift `json:"mindset_shift"`
}

const fallbackInsight = "Show up. Do the work. Repeat."

var fallbackChallenge = Challenge{
	Module:     "productivity",
	ModuleName: "Productivity & Systems",
	Challenge:  "Complete your #1 priority before noon.",
}

type Service struct {
	registry Registry
}

func NewService(r Registry) *Service {
	return &Service{registry: r}
}

// Daily returns the wisdom bundle for a date. Returns nil when none of the
// focus modules has loadable content. The draw order below is fixed: each
// selection consumes generator output, so reordering changes every
// subsequent pick for the day.
func (s *Service) Daily(focusModules []string, date string) (*Bundle, error) {
	rng := NewSeeded(date)

	teaching := s.masterTeaching(focusModules, rng)
	if teaching == nil {
		return nil, nil
	}

	return &Bundle{
		Date:          date,
		Teaching:      *teaching,
		Insight:       s.dailyInsight(focusModules, rng),
		Challenge:     s.skillChallenge(focusModules, rng),
		PowerQuestion: powerQuestion(rng),
		MindsetShift:  mindsetShifts[rng.pick(len(mindsetShifts))],
	}, nil
}

func (s *Service) masterTeaching(focusModules []string, rng *Seeded) *Teaching {
	var available []string
	for _, m := range focusModules {
		if mc, err := s.registry.LoadModule(m); err == nil && mc != nil {
			available = append(available, m)
		}
	}
	if len(available) == 0 {
		return nil
	}

	module := available[rng.pick(len(available))]
	mc, err := s.registry.LoadModule(module)
	if err != nil || mc == nil || len(mc.Masters) == 0 {
		return nil
	}

	master := mc.Masters[rng.pick(len(mc.Masters))]
	teaching := "No teaching available."
	if len(master.KeyPrinciples) > 0 {
		teaching = master.KeyPrinciples[rng.pick(len(master.KeyPrinciples))]
	}
	practices := master.DailyPractices
	if len(practices) == 0 {
		practices = []string{"Apply this today."}
	}

	return &Teaching{
		Master:    master.Name,
		Expertise: master.Expertise,
		Teaching:  teaching,
		Practice:  practices[rng.pick(len(practices))],
		Module:    module,
	}
}

func (s *Service) dailyInsight(focusModules []string, rng *Seeded) string {
	var insights []string
	for _, m := range focusModules {
		if mc, err := s.registry.LoadModule(m); err == nil && mc != nil {
			insights = append(insights, mc.DailyInsights...)
		}
	}
	if len(insights) == 0 {
		return fallbackInsight
	}
	return insights[rng.pick(len(insights))]
}

func (s *Service) skillChallenge(focusModules []string, rng *Seeded) Challenge {
	if len(focusModules) == 0 {
		return fallbackChallenge
	}

	module := focusModules[rng.pick(len(focusModules))]
	mc, err := s.registry.LoadModule(module)
	if err != nil || mc == nil || len(mc.SkillChallenges) == 0 {
		return fallbackChallenge
	}
	return Challenge{
		Module:     module,
		ModuleName: ModuleName(module),
		Challenge:  mc.SkillChallenges[rng.pick(len(mc.SkillChallenges))],
	}
}

func powerQuestion(rng *Seeded) string {
	return powerQuestions[int(rng.Next()*1000000)%len(powerQuestions)]
}
