package feedback

import (
	"context"
	"strings"
)

// timeAnchors are words that suggest the answer names a concrete moment.
// Their absence triggers a gentle scheduling nudge.
var timeAnchors = []string{"today", "tomorrow", "tonight", "morning", "evening", "o'clock", "at "}

// tightAnswerLen is the length below which an answer gets a nudge to
// expand the thought.
const tightAnswerLen = 40

// RuleProvider writes feedback without any model call: two short
// paragraphs and a closing impulse line, flowing prose, no lists. It
// never fails, which makes it the fallback behind the AI provider.
type RuleProvider struct{}

func NewRuleProvider() *RuleProvider { return &RuleProvider{} }

func (p *RuleProvider) Name() string { return "rules" }

func (p *RuleProvider) Generate(_ context.Context, req Request) (string, error) {
	ans := strings.TrimSpace(req.Answer)
	lower := strings.ToLower(ans)

	tight := len([]rune(ans)) < tightAnswerLen
	lacksTime := true
	for _, anchor := range timeAnchors {
		if strings.Contains(lower, anchor) {
			lacksTime = false
			break
		}
	}

	p1 := "That sounds meaningful, and you are handling it with care. Between the lines it shows what matters to you."

	var hints []string
	if tight {
		hints = append(hints, "It might help to give the thought two more sentences of room.")
	}
	if lacksTime {
		hints = append(hints, "A small time window today could loosen the knot.")
	}
	p2 := strings.Join(hints, " ")
	if p2 == "" {
		p2 = "Perhaps a quiet shift in perspective carries it further."
	}
	if strings.TrimSpace(req.Motive) != "" {
		p2 += " Your why shines through."
	}
	if outlook := strings.TrimSpace(req.Outlook); outlook != "" {
		p2 += " " + outlook + " stays within reach."
	}

	impulse := "Impulse: pause once, breathe, realign, just until it quietly clicks."
	if req.Question != nil && len(req.Question.Tips) > 0 {
		impulse = "Impulse: " + req.Question.Tips[0]
	}

	return p1 + "\n\n" + p2 + "\n\n" + impulse, nil
}
