package wisdom

import (
	"fmt"
	"math/rand"
	"strings"
)

// Ambient helpers for presentation-layer variety. These use ordinary
// randomness and are exempt from the daily determinism contract: they must
// never be called from the Daily selection path.

// RandomPowerQuestion returns a question from the pool at random.
func (s *Service) RandomPowerQuestion() string {
	return powerQuestions[rand.Intn(len(powerQuestions))]
}

const fallbackAdvice = "Take action despite uncertainty. Clarity comes from doing, not thinking."

// AdviceForSituation matches a free-text situation against module keywords
// and returns a principle and practice from one of that module's masters.
func (s *Service) AdviceForSituation(situation string) string {
	lower := strings.ToLower(situation)

	var module string
	for _, m := range situationModules {
		for _, kw := range situationKeywords[m] {
			if strings.Contains(lower, kw) {
				module = m
				break
			}
		}
		if module != "" {
			break
		}
	}
	if module == "" {
		module = situationModules[rand.Intn(len(situationModules))]
	}

	mc, err := s.registry.LoadModule(module)
	if err != nil || mc == nil || len(mc.Masters) == 0 {
		return fallbackAdvice
	}

	master := mc.Masters[rand.Intn(len(mc.Masters))]
	principle := "Keep pushing forward."
	if len(master.KeyPrinciples) > 0 {
		principle = master.KeyPrinciples[rand.Intn(len(master.KeyPrinciples))]
	}
	practice := "Take action now."
	if len(master.DailyPractices) > 0 {
		practice = master.DailyPractices[rand.Intn(len(master.DailyPractices))]
	}

	return fmt.Sprintf("%s says: %q\n\nApply it: %s", master.Name, principle, practice)
}
