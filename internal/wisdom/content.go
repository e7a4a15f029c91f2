package wisdom

import "strings"

// MindsetShift is a reframe from a limiting phrase to an empowering one.
type MindsetShift struct {
	From string `json:"from"`
	To   string `json:"to"`
	Why  string `json:"why"`
}

var powerQuestions = []string{
	"What would the best version of me do right now?",
	"What am I avoiding that I know I should do?",
	"If I only accomplished one thing today, what should it be?",
	"What would I do if I knew I couldn't fail?",
	"Am I being productive or just busy?",
	"What's the ONE thing that would make everything else easier?",
	"Who do I need to become to achieve my goals?",
	"What belief is limiting me right now?",
	"If today repeated for a year, where would I end up?",
	"What would make today a 10/10?",
	"What's the hard thing I'm pretending isn't my responsibility?",
	"Am I playing to win or playing not to lose?",
	"What's the conversation I'm avoiding?",
	"How can I provide 10x more value today?",
	"What skill, if mastered, would change everything?",
	"Is this the best use of my next hour?",
	"What would I tell my best friend to do in my situation?",
	"What am I tolerating that I shouldn't?",
	"If I had 6 months to live, would I be doing this?",
	"What's the smallest step I can take right now?",
}

var mindsetShifts = []MindsetShift{
	{From: "I don't have time", To: "It's not a priority", Why: "Own your choices. If it mattered, you'd find time."},
	{From: "I can't do this", To: "I can't do this YET", Why: "Growth mindset. Skills are built, not born."},
	{From: "I failed", To: "I learned what doesn't work", Why: "Failure is data. Collect it and adjust."},
	{From: "I'm not ready", To: "I'll figure it out as I go", Why: "Readiness is a myth. Action creates clarity."},
	{From: "What if it goes wrong?", To: "What if it goes right?", Why: "You're imagining the future anyway. Imagine the upside."},
	{From: "I'm too tired", To: "I'll do it for just 5 minutes", Why: "Energy follows action. Start small."},
	{From: "That's not fair", To: "What can I control?", Why: "Fairness is irrelevant. Adaptation is everything."},
	{From: "I need motivation", To: "I need discipline", Why: "Motivation is fleeting. Discipline is reliable."},
	{From: "I'm overwhelmed", To: "What's the ONE next step?", Why: "You can only do one thing at a time. Pick it."},
	{From: "They're better than me", To: "What can I learn from them?", Why: "Comparison kills. Learn and apply."},
	{From: "It's too hard", To: "It's supposed to be hard", Why: "Hard is what makes it valuable."},
	{From: "I'm not talented enough", To: "I haven't practiced enough", Why: "Talent is overrated. Reps are underrated."},
}

var moduleNames = map[string]string{
	"money":                  "Money & Wealth",
	"sales":                  "Sales & Persuasion",
	"finance":                "Personal Finance",
	"dating":                 "Dating & Social",
	"mindset":                "Mindset & Wisdom",
	"health":                 "Health & Fitness",
	"lifestyle":              "Lifestyle Design",
	"business":               "Business & Career",
	"productivity":           "Productivity & Systems",
	"emotional_intelligence": "Emotional Intelligence",
	"critical_thinking":      "Critical Thinking",
	"communication":          "Communication & Influence",
}

// ModuleName returns the display name for a module tag.
func ModuleName(module string) string {
	if name, ok := moduleNames[module]; ok {
		return name
	}
	if module == "" {
		return ""
	}
	return strings.ToUpper(module[:1]) + module[1:]
}

// situationKeywords maps free-text situation keywords to the module whose
// masters are most likely to have something useful to say. Order matters:
// the first module with a keyword hit wins.
var situationModules = []string{"money", "sales", "finance", "dating", "mindset", "productivity", "business", "lifestyle"}

var situationKeywords = map[string][]string{
	"money":        {"money", "income", "salary", "wealth", "earn", "rich", "broke"},
	"sales":        {"sell", "close", "pitch", "client", "deal", "reject", "cold call", "outreach"},
	"finance":      {"save", "invest", "budget", "debt", "expense", "retire"},
	"dating":       {"social", "date", "friend", "relationship", "confidence", "approach", "talk to"},
	"mindset":      {"fear", "anxiety", "stress", "doubt", "mindset", "belief", "mental", "stuck"},
	"productivity": {"focus", "distract", "procrastinate", "productive", "time", "busy", "work"},
	"business":     {"business", "startup", "idea", "launch", "customer", "product"},
	"lifestyle":    {"habit", "routine", "environment", "clutter", "phone", "social media"},
}
