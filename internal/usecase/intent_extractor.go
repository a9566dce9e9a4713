package usecase

import (
	"fmt"

	"github.com/cafeassist/backend/internal/domain"
	log "github.com/sirupsen/logrus"
)

// IntentExtractorConfig holds configuration for the intent extractor
type IntentExtractorConfig struct {
	EnableDebugLogging bool
}

// IntentExtractor turns a raw customer utterance into an IntentRecord.
// It is immutable after construction and safe for concurrent use.
type IntentExtractor struct {
	classifier         domain.IntentClassifier
	normalizer         *TextNormalizer
	enableDebugLogging bool
}

// NewIntentExtractor creates an extractor. classifier may be nil, in which
// case only the keyword rules vote.
func NewIntentExtractor(classifier domain.IntentClassifier, config IntentExtractorConfig) *IntentExtractor {
	return &IntentExtractor{
		classifier:         classifier,
		normalizer:         NewTextNormalizer(config.EnableDebugLogging),
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Extract interprets the utterance. It never fails: classifier errors are
// treated as no vote.
func (e *IntentExtractor) Extract(utterance string) domain.IntentRecord {
	text := e.normalizer.Normalize(utterance)

	ballot := e.collectVotes(text)

	intent := domain.IntentRecord{
		Categories:    detectCategories(text),
		ExcludeLabels: domain.NewLabelSet(),
		Vegan:         ballot.Has(domain.SignalVegan),
		LowCalorie:    ballot.Has(domain.SignalLowCalorie),
		SugarFree:     ballot.Has(domain.SignalSugarFree),
	}

	if inExclusionMode(text, ballot) {
		intent.ExcludeLabels = detectExclusions(text)
	}

	if e.enableDebugLogging {
		log.WithFields(log.Fields{
			"categories": intent.Categories.Sorted(),
			"exclude":    intent.ExcludeLabels.Sorted(),
			"vegan":      intent.Vegan,
			"lowCalorie": intent.LowCalorie,
			"sugarFree":  intent.SugarFree,
		}).Debugf("[INTENT] %q", utterance)
	}

	return intent
}

// collectVotes gathers rule and classifier votes for the dietary signals
func (e *IntentExtractor) collectVotes(text NormalizedText) domain.Ballot {
	var ballot domain.Ballot

	if label := e.classify(text.Lower); label != domain.LabelNone {
		if signal, ok := label.Signal(); ok {
			ballot.Cast(domain.SourceClassifier, signal)
		}
	}

	if containsAny(text.Lower, veganKeywords) {
		ballot.Cast(domain.SourceRule, domain.SignalVegan)
	}
	if containsAny(text.Lower, lowCalorieKeywords) {
		ballot.Cast(domain.SourceRule, domain.SignalLowCalorie)
	}
	if containsAny(text.Lower, sugarFreeKeywords) || containsAny(text.Folded, sugarFreeKeywords) {
		ballot.Cast(domain.SourceRule, domain.SignalSugarFree)
	}
	if containsAny(text.Lower, allergyKeywords) || containsAny(text.Folded, allergyKeywords) {
		ballot.Cast(domain.SourceRule, domain.SignalAllergy)
	}

	return ballot
}

// classify runs the optional classifier once. Any error or panic is logged
// and becomes LabelNone.
func (e *IntentExtractor) classify(lower string) (label domain.ClassifierLabel) {
	if e.classifier == nil || lower == "" {
		return domain.LabelNone
	}

	defer func() {
		if r := recover(); r != nil {
			log.Warnf("[INTENT] classifier panicked: %v", r)
			label = domain.LabelNone
		}
	}()

	label, err := e.classifier.Predict(lower)
	if err != nil {
		log.Debugf("[INTENT] %v", fmt.Errorf("%w: %v", domain.ErrClassifierFailure, err))
		return domain.LabelNone
	}
	return label
}

// detectCategories tests the four category groups independently. No match
// means every category.
func detectCategories(text NormalizedText) domain.CategorySet {
	categories := domain.NewCategorySet()
	for _, cp := range categoryPatterns {
		if cp.pattern.MatchString(text.Lower) {
			categories[cp.category] = struct{}{}
		}
	}

	if categories.Len() == 0 {
		return domain.NewCategorySet(domain.AllCategories()...)
	}
	return categories
}

// hasNegation reports whether the text asks for something to be left out
func hasNegation(text NormalizedText) bool {
	return containsAny(text.Folded, foldedNegationMarkers) ||
		containsAny(text.Lower, textNegationMarkers) ||
		containsAny(text.Folded, textNegationMarkers)
}

// inExclusionMode gates every ingredient exclusion: a bare ingredient
// mention without negation or allergy wording excludes nothing
func inExclusionMode(text NormalizedText, ballot domain.Ballot) bool {
	return hasNegation(text) || ballot.Has(domain.SignalAllergy)
}

// detectExclusions collects canonical labels for every mentioned ingredient family
func detectExclusions(text NormalizedText) domain.LabelSet {
	exclude := domain.NewLabelSet()

	if containsAny(text.Lower, fruitKeywords) || containsAny(text.Folded, fruitKeywords) {
		for _, l := range fruitLabels {
			exclude[l] = struct{}{}
		}
	}

	for _, iw := range ingredientWords {
		if iw.pattern.MatchString(text.Folded) {
			exclude[iw.label] = struct{}{}
		}
	}

	if containsAny(text.Folded, nutKeywords) {
		for _, l := range nutLabels {
			exclude[l] = struct{}{}
		}
	}

	if containsAny(text.Folded, dairyKeywords) {
		exclude[dairyLabel] = struct{}{}
	}

	return exclude
}
