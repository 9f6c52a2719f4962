package announce

import (
	"fmt"

	"github.com/The0mikkel/byceps/internal/domain"
)

// RenderText turns an event into the message announced to webhooks.
// Events that are not worth announcing return false.
func RenderText(event domain.Event) (string, bool) {
	initiator := event.Base().Initiator.DisplayName()

	switch e := event.(type) {
	// board
	case domain.BoardTopicCreatedEvent:
		return fmt.Sprintf(`%s has created topic "%s": %s`,
			e.TopicCreator.DisplayName(), e.TopicTitle, e.URL), true
	case domain.BoardPostingCreatedEvent:
		return fmt.Sprintf(`%s replied in topic "%s": %s`,
			e.PostingCreator.DisplayName(), e.TopicTitle, e.URL), true
	case domain.BoardTopicHiddenEvent:
		return topicModeration(e.Moderator, "hidden", e.BoardTopic), true
	case domain.BoardTopicUnhiddenEvent:
		return topicModeration(e.Moderator, "made visible again", e.BoardTopic), true
	case domain.BoardTopicLockedEvent:
		return topicModeration(e.Moderator, "locked", e.BoardTopic), true
	case domain.BoardTopicUnlockedEvent:
		return topicModeration(e.Moderator, "unlocked", e.BoardTopic), true
	case domain.BoardTopicPinnedEvent:
		return topicModeration(e.Moderator, "pinned", e.BoardTopic), true
	case domain.BoardTopicUnpinnedEvent:
		return topicModeration(e.Moderator, "unpinned", e.BoardTopic), true
	case domain.BoardTopicMovedEvent:
		return fmt.Sprintf(`%s has moved topic "%s" by %s from "%s" to "%s": %s`,
			e.Moderator.DisplayName(), e.TopicTitle, e.TopicCreator.DisplayName(),
			e.OldCategoryTitle, e.NewCategoryTitle, e.URL), true
	case domain.BoardPostingHiddenEvent:
		return postingModeration(e.Moderator, "hidden", e.BoardPosting), true
	case domain.BoardPostingUnhiddenEvent:
		return postingModeration(e.Moderator, "made visible again", e.BoardPosting), true

	// guest server
	case domain.GuestServerRegisteredEvent:
		return fmt.Sprintf(`%s has registered a guest server for party "%s".`,
			e.Owner.DisplayName(), e.PartyTitle), true

	// news
	case domain.NewsItemPublishedEvent:
		text := fmt.Sprintf(`The news "%s" has been published.`, e.Title)
		if e.ExternalURL != nil {
			text += " " + *e.ExternalURL
		}
		return text, true

	// pages
	case domain.PageCreatedEvent:
		return pageChange(initiator, "created", e.PageRef), true
	case domain.PageUpdatedEvent:
		return pageChange(initiator, "updated", e.PageRef), true
	case domain.PageDeletedEvent:
		return pageChange(initiator, "deleted", e.PageRef), true

	// shop
	case domain.ShopOrderPlacedEvent:
		return fmt.Sprintf(`%s has placed order %s.`, e.Orderer.DisplayName(), e.OrderNumber), true
	case domain.ShopOrderPaidEvent:
		return fmt.Sprintf(`%s has marked order %s by %s as paid.`,
			initiator, e.OrderNumber, e.Orderer.DisplayName()), true
	case domain.ShopOrderCanceledEvent:
		return fmt.Sprintf(`%s has canceled order %s by %s.`,
			initiator, e.OrderNumber, e.Orderer.DisplayName()), true

	// snippets
	case domain.SnippetCreatedEvent:
		return snippetChange(initiator, "created", e.SnippetRef), true
	case domain.SnippetUpdatedEvent:
		return snippetChange(initiator, "updated", e.SnippetRef), true
	case domain.SnippetDeletedEvent:
		return snippetChange(initiator, "deleted", e.SnippetRef), true

	// ticketing
	case domain.TicketCheckedInEvent:
		return fmt.Sprintf(`%s has checked in ticket "%s", used by %s.`,
			initiator, e.TicketCode, e.User.DisplayName()), true
	case domain.TicketsSoldEvent:
		return fmt.Sprintf(`%s has paid for %d ticket(s).`, e.Owner.DisplayName(), e.Quantity), true

	// users
	case domain.UserAccountCreatedEvent:
		if e.Initiator != nil && e.Initiator.ID != e.User.ID {
			return fmt.Sprintf(`%s has created user account "%s".`, initiator, e.User.DisplayName()), true
		}
		if e.SiteTitle != nil {
			return fmt.Sprintf(`Someone has created user account "%s" on site "%s".`,
				e.User.DisplayName(), *e.SiteTitle), true
		}
		return fmt.Sprintf(`Someone has created user account "%s".`, e.User.DisplayName()), true
	case domain.UserAccountDeletedEvent:
		return userChange(initiator, "deleted user account", e.User), true
	case domain.UserAccountSuspendedEvent:
		return userChange(initiator, "suspended user account", e.User), true
	case domain.UserAccountUnsuspendedEvent:
		return userChange(initiator, "unsuspended user account", e.User), true
	case domain.UserDetailsUpdatedEvent:
		return userChange(initiator, "updated the personal details of user account", e.User), true
	case domain.UserEmailAddressChangedEvent:
		return userChange(initiator, "changed the email address of user account", e.User), true
	case domain.UserEmailAddressInvalidatedEvent:
		return userChange(initiator, "invalidated the email address of user account", e.User), true
	case domain.UserScreenNameChangedEvent:
		return fmt.Sprintf(`%s has renamed user account "%s" to "%s".`,
			initiator, deref(e.OldScreenName), deref(e.NewScreenName)), true
	case domain.UserBadgeAwardedEvent:
		return fmt.Sprintf(`%s has awarded badge "%s" to %s.`,
			initiator, e.BadgeLabel, e.Awardee.DisplayName()), true
	}

	// user-logged-in and anything else without a text stay silent
	return "", false
}

func topicModeration(moderator domain.EventUser, verb string, topic domain.BoardTopic) string {
	return fmt.Sprintf(`%s has %s topic "%s" by %s: %s`,
		moderator.DisplayName(), verb, topic.TopicTitle, topic.TopicCreator.DisplayName(), topic.URL)
}

func postingModeration(moderator domain.EventUser, verb string, posting domain.BoardPosting) string {
	return fmt.Sprintf(`%s has %s a reply by %s in topic "%s": %s`,
		moderator.DisplayName(), verb, posting.PostingCreator.DisplayName(), posting.TopicTitle, posting.URL)
}

func pageChange(initiator, verb string, page domain.PageRef) string {
	return fmt.Sprintf(`%s has %s page "%s" (%s) of site "%s".`,
		initiator, verb, page.PageName, page.Language, page.SiteID)
}

func snippetChange(initiator, verb string, snippet domain.SnippetRef) string {
	return fmt.Sprintf(`%s has %s snippet "%s" (%s) in scope "%s".`,
		initiator, verb, snippet.SnippetName, snippet.Language, snippet.Scope)
}

func userChange(initiator, action string, user domain.EventUser) string {
	return fmt.Sprintf(`%s has %s "%s".`, initiator, action, user.DisplayName())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
