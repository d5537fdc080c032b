package assess

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/shell-assess/internal/domain"
	"github.com/sells-group/shell-assess/internal/model"
)

// Engine computes relationship flags for customer accounts. It is safe for
// concurrent use: the classifier and config are immutable after construction.
type Engine struct {
	classifier *domain.Classifier
	cfg        Config
}

func NewEngine(classifier *domain.Classifier, cfg Config) *Engine {
	return &Engine{classifier: classifier, cfg: cfg}
}

// Evaluate produces the full flag set for one account. Flags are computed in
// a fixed order: the bad-domain gate first, then shell linkage, then the
// scoring flags. When the gate trips, every other flag is suppressed. The
// shell-relative flags are only produced for accounts that actually link to
// a shell.
func (e *Engine) Evaluate(acct model.Account, parent *model.Account) (flags model.RelationshipFlags) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("assess: recovered evaluating account",
				zap.String("account_id", acct.ID), zap.Any("panic", r))
			flags = degradedFlags(flags)
		}
	}()

	flags.BadDomain = e.classifier.Check(acct)
	if flags.BadDomain.IsBad {
		return flags
	}

	hasShell := acct.ParentID != "" && !sameID(acct.ParentID, acct.ID)
	flags.HasShell = &hasShell

	consistency := CustomerConsistency(acct)
	flags.CustomerConsistency = &consistency

	if !hasShell {
		return flags
	}

	if parent == nil {
		coherence := model.ScoreFlag{Score: 0, Explanation: "shell account record unavailable, coherence could not be computed"}
		flags.CustomerShellCoherence = &coherence
		address := model.AddressFlag{IsConsistent: false, Explanation: "shell account record unavailable, addresses could not be compared"}
		flags.AddressConsistency = &address
		return flags
	}

	coherence := ShellCoherence(acct, *parent, e.cfg)
	flags.CustomerShellCoherence = &coherence

	address := AddressConsistency(acct, *parent, e.cfg)
	flags.AddressConsistency = &address

	return flags
}

// degradedFlags keeps whatever was computed before the failure and fills the
// remaining fields with explicit failure explanations rather than leaving
// them blank. A tripped gate still suppresses everything downstream.
func degradedFlags(partial model.RelationshipFlags) model.RelationshipFlags {
	if partial.BadDomain.Explanation == "" {
		partial.BadDomain = model.BadDomainFlag{IsBad: false, Explanation: "flag computation failed, domain check not completed"}
	}
	if partial.BadDomain.IsBad {
		return partial
	}
	if partial.HasShell == nil {
		hasShell := false
		partial.HasShell = &hasShell
	}
	if partial.CustomerConsistency == nil {
		sf := model.ScoreFlag{Score: 0, Explanation: "flag computation failed before consistency scoring"}
		partial.CustomerConsistency = &sf
	}
	if *partial.HasShell {
		if partial.CustomerShellCoherence == nil {
			sf := model.ScoreFlag{Score: 0, Explanation: "flag computation failed before coherence scoring"}
			partial.CustomerShellCoherence = &sf
		}
		if partial.AddressConsistency == nil {
			af := model.AddressFlag{IsConsistent: false, Explanation: "flag computation failed before address comparison"}
			partial.AddressConsistency = &af
		}
	}
	return partial
}

// sameID compares Salesforce record IDs, tolerating the 15 and 18 character
// forms referring to the same record. The first 15 characters are shared
// between the two forms and are case-sensitive.
func sameID(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if len(a) >= 15 && len(b) >= 15 {
		return a[:15] == b[:15]
	}
	return a == b
}
