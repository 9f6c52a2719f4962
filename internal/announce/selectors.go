package announce

import (
	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/model"
)

// MatchesSelectors reports whether the webhook wants events named eventName
// whose attribute has the given value.
//
// Webhooks are preselected by event name, so a webhook without that name
// among its selectors does not match at all.
func MatchesSelectors(eventName string, webhook model.OutgoingWebhook, attribute, value string) bool {
	selector, ok := webhook.EventSelectors[eventName]
	if !ok {
		return false
	}
	return selector.Allows(attribute, value)
}

// matchesEvent applies MatchesSelectors to every attribute the event exposes.
func matchesEvent(eventName string, webhook model.OutgoingWebhook, event domain.Event) bool {
	if !webhook.SelectsEvent(eventName) {
		return false
	}

	selectable, ok := event.(domain.Selectable)
	if !ok {
		return true
	}
	for attribute, value := range selectable.SelectorAttributes() {
		if !MatchesSelectors(eventName, webhook, attribute, value) {
			return false
		}
	}
	return true
}
