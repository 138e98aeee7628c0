package insight

// #region imports
import (
	_ "embed"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// #endregion

// #region rule-table

//go:embed rules.yaml
var rulesYAML []byte

type rulesFile struct {
	Insights []Rule `yaml:"insights"`
}

// Rules returns the built-in insight table in declaration order.
func Rules() []Rule {
	return builtinRules
}

var builtinRules = mustLoadRules()

func mustLoadRules() []Rule {
	var f rulesFile
	if err := yaml.Unmarshal(rulesYAML, &f); err != nil {
		panic(fmt.Sprintf("load embedded insight rules: %v", err))
	}
	return f.Insights
}

// #endregion rule-table

// #region select

// Select evaluates the rule table against the metrics context and returns
// up to max eligible insights plus the updated shown-log. Selection is
// pure: the input log is never mutated.
//
// A rule is eligible when every condition matches and its cooldown allows
// it: cooldown 0 means once ever, otherwise the rule waits cooldown hours
// since it was last shown. Eligible rules rank by priority descending;
// ties keep declaration order.
func Select(rules []Rule, ctx Context, shown ShownLog, now time.Time, max int) ([]Rule, ShownLog) {
	var eligible []Rule
	for _, r := range rules {
		if !cooldownOpen(r, shown, now) {
			continue
		}
		if r.Matches(ctx) {
			eligible = append(eligible, r)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Priority > eligible[j].Priority
	})
	if max >= 0 && len(eligible) > max {
		eligible = eligible[:max]
	}

	updated := make(ShownLog, len(shown)+len(eligible))
	for id, t := range shown {
		updated[id] = t
	}
	for _, r := range eligible {
		updated[r.ID] = now
	}
	return eligible, updated
}

func cooldownOpen(r Rule, shown ShownLog, now time.Time) bool {
	last, ok := shown[r.ID]
	if !ok || last.IsZero() {
		return true
	}
	if r.CooldownHours == 0 {
		// Once ever: already shown, never again until the log is reset.
		return false
	}
	return now.Sub(last) >= time.Duration(r.CooldownHours)*time.Hour
}

// #endregion select
