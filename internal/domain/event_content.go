package domain

// board

// BoardTopic identifies the topic a board event is about.
type BoardTopic struct {
	BoardID      string    `json:"board_id"`
	TopicID      string    `json:"topic_id"`
	TopicTitle   string    `json:"topic_title"`
	URL          string    `json:"url"`
	TopicCreator EventUser `json:"topic_creator"`
}

func (t BoardTopic) SelectorAttributes() map[string]string {
	return map[string]string{"board_id": t.BoardID}
}

// BoardPosting identifies the posting a board event is about.
type BoardPosting struct {
	BoardID        string    `json:"board_id"`
	TopicID        string    `json:"topic_id"`
	TopicTitle     string    `json:"topic_title"`
	PostingID      string    `json:"posting_id"`
	URL            string    `json:"url"`
	PostingCreator EventUser `json:"posting_creator"`
}

func (p BoardPosting) SelectorAttributes() map[string]string {
	return map[string]string{"board_id": p.BoardID}
}

type BoardPostingCreatedEvent struct {
	BaseEvent
	BoardPosting
}

type BoardPostingHiddenEvent struct {
	BaseEvent
	BoardPosting
	Moderator EventUser `json:"moderator"`
}

type BoardPostingUnhiddenEvent struct {
	BaseEvent
	BoardPosting
	Moderator EventUser `json:"moderator"`
}

type BoardTopicCreatedEvent struct {
	BaseEvent
	BoardTopic
}

type BoardTopicHiddenEvent struct {
	BaseEvent
	BoardTopic
	Moderator EventUser `json:"moderator"`
}

type BoardTopicUnhiddenEvent struct {
	BaseEvent
	BoardTopic
	Moderator EventUser `json:"moderator"`
}

type BoardTopicLockedEvent struct {
	BaseEvent
	BoardTopic
	Moderator EventUser `json:"moderator"`
}

type BoardTopicUnlockedEvent struct {
	BaseEvent
	BoardTopic
	Moderator EventUser `json:"moderator"`
}

type BoardTopicPinnedEvent struct {
	BaseEvent
	BoardTopic
	Moderator EventUser `json:"moderator"`
}

type BoardTopicUnpinnedEvent struct {
	BaseEvent
	BoardTopic
	Moderator EventUser `json:"moderator"`
}

type BoardTopicMovedEvent struct {
	BaseEvent
	BoardTopic
	OldCategoryTitle string    `json:"old_category_title"`
	NewCategoryTitle string    `json:"new_category_title"`
	Moderator        EventUser `json:"moderator"`
}

// guest server

type GuestServerRegisteredEvent struct {
	BaseEvent
	PartyID    string    `json:"party_id"`
	PartyTitle string    `json:"party_title"`
	ServerID   string    `json:"server_id"`
	Owner      EventUser `json:"owner"`
}

// news

type NewsItemPublishedEvent struct {
	BaseEvent
	ItemID      string  `json:"item_id"`
	ChannelID   string  `json:"channel_id"`
	Title       string  `json:"title"`
	ExternalURL *string `json:"external_url,omitempty"`
}

func (e NewsItemPublishedEvent) SelectorAttributes() map[string]string {
	return map[string]string{"channel_id": e.ChannelID}
}

// pages and snippets

// PageRef identifies a site page.
type PageRef struct {
	PageID   string `json:"page_id"`
	SiteID   string `json:"site_id"`
	PageName string `json:"page_name"`
	Language string `json:"language_code"`
}

type PageCreatedEvent struct {
	BaseEvent
	PageRef
}

type PageUpdatedEvent struct {
	BaseEvent
	PageRef
}

type PageDeletedEvent struct {
	BaseEvent
	PageRef
}

// SnippetRef identifies a text snippet within its scope.
type SnippetRef struct {
	SnippetID   string `json:"snippet_id"`
	Scope       string `json:"scope"`
	SnippetName string `json:"snippet_name"`
	Language    string `json:"language_code"`
}

type SnippetCreatedEvent struct {
	BaseEvent
	SnippetRef
}

type SnippetUpdatedEvent struct {
	BaseEvent
	SnippetRef
}

type SnippetDeletedEvent struct {
	BaseEvent
	SnippetRef
}
