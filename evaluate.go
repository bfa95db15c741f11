package pagemeta

import "strings"

// EvaluateRuleSet selects the value of a single field from doc.
//
// Every element matched by rule i starts with score len(rs.Rules)-i. Scorers
// run in order and each value they return replaces the running score. The
// first element to strictly exceed the best score so far provides the
// value, so ties go to the earlier rule and then to document order.
//
// When nothing matched, the rule set's Default is consulted and any error it
// returns is passed through. An invalid selector fails with ERULE. The chosen
// value is passed through the processors in order and trimmed if it is a
// string. A nil result means the field is absent.
func EvaluateRuleSet(rs *RuleSet, doc Document, ctx Context) (any, error) {
	var (
		bestScore int
		bestValue string
		found     bool
	)

	for i, rule := range rs.Rules {
		elements, err := doc.QueryAll(rule.Selector)
		if err != nil {
			return nil, Errorf(ERULE, "rule %d (%q): %v", i, rule.Selector, err)
		}

		for _, el := range elements {
			score := len(rs.Rules) - i
			for _, scorer := range rs.Scorers {
				if s, ok := scorer(el, score); ok {
					score = s
				}
			}

			if score > bestScore {
				bestScore = score
				bestValue, found = rule.Extract(el)
			}
		}
	}

	var value any
	if found {
		value = bestValue
	} else if rs.Default != nil {
		v, err := rs.Default(ctx)
		if err != nil {
			return nil, err
		}
		value = v
	}
	if value == nil {
		return nil, nil
	}

	for _, process := range rs.Processors {
		value = process(value, ctx)
	}
	if s, ok := value.(string); ok {
		value = strings.TrimSpace(s)
	}
	return value, nil
}
