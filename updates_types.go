// Copyright (c) 2024 RoseLoverX

package tdcache

// The closed set of update variants the engine delivers. Entity-created
// variants carry a full snapshot; every other variant carries the owning
// id plus the changed payload only.

type UpdateAuthorizationState struct {
	State AuthorizationState
}

type UpdateConnectionState struct {
	State ConnectionState
}

type UpdateOption struct {
	Name  string
	Value OptionValue
}

type UpdateNewChat struct {
	Chat *Chat
}

type UpdateChatTitle struct {
	ChatID int64
	Title  string
}

type UpdateChatPhoto struct {
	ChatID int64
	Photo  *ChatPhoto
}

type UpdateChatPermissions struct {
	ChatID      int64
	Permissions ChatPermissions
}

type UpdateChatLastMessage struct {
	ChatID      int64
	LastMessage *Message
	Positions   []*ChatPosition
}

type UpdateChatPosition struct {
	ChatID   int64
	Position *ChatPosition
}

type UpdateChatIsMarkedAsUnread struct {
	ChatID           int64
	IsMarkedAsUnread bool
}

type UpdateChatHasScheduledMessages struct {
	ChatID               int64
	HasScheduledMessages bool
}

type UpdateChatDefaultDisableNotification struct {
	ChatID                     int64
	DefaultDisableNotification bool
}

type UpdateChatReadInbox struct {
	ChatID                 int64
	LastReadInboxMessageID int64
	UnreadCount            int32
}

type UpdateChatReadOutbox struct {
	ChatID                  int64
	LastReadOutboxMessageID int64
}

type UpdateChatUnreadMentionCount struct {
	ChatID             int64
	UnreadMentionCount int32
}

type UpdateMessageMentionRead struct {
	ChatID             int64
	MessageID          int64
	UnreadMentionCount int32
}

type UpdateChatNotificationSettings struct {
	ChatID               int64
	NotificationSettings ChatNotificationSettings
}

type UpdateScopeNotificationSettings struct {
	Scope    NotificationScope
	Settings *ScopeNotificationSettings
}

type UpdateChatActionBar struct {
	ChatID    int64
	ActionBar ChatActionBar
}

type UpdateChatPinnedMessage struct {
	ChatID          int64
	PinnedMessageID int64
}

type UpdateChatReplyMarkup struct {
	ChatID               int64
	ReplyMarkupMessageID int64
}

type UpdateChatDraftMessage struct {
	ChatID       int64
	DraftMessage *DraftMessage
	Positions    []*ChatPosition
}

type UpdateChatFilters struct {
	ChatFilters []ChatFilterInfo
}

type UpdateUserChatAction struct {
	ChatID int64
	UserID int64
	Action ChatAction
}

type UpdateUser struct {
	User *User
}

type UpdateUserFullInfo struct {
	UserID   int64
	FullInfo *UserFullInfo
}

type UpdateUserStatus struct {
	UserID int64
	Status UserStatus
}

type UpdateBasicGroup struct {
	BasicGroup *BasicGroup
}

type UpdateBasicGroupFullInfo struct {
	BasicGroupID int64
	FullInfo     *BasicGroupFullInfo
}

type UpdateSupergroup struct {
	Supergroup *Supergroup
}

type UpdateSupergroupFullInfo struct {
	SupergroupID int64
	FullInfo     *SupergroupFullInfo
}

type UpdateSecretChat struct {
	SecretChat *SecretChat
}

type UpdateFile struct {
	File File
}

type UpdateUnreadChatCount struct {
	List   ChatList
	Counts UnreadChatCount
}

type UpdateUnreadMessageCount struct {
	List   ChatList
	Counts UnreadMessageCount
}

// List-replaced variants: the whole id set is replaced, never patched.

type UpdateInstalledStickerSets struct {
	IsMasks       bool
	StickerSetIDs []int64
}

type UpdateFavoriteStickers struct {
	StickerIDs []int32
}

type UpdateStickerSet struct {
	StickerSet *StickerSet
}

type UpdateDiceEmojis struct {
	Emojis []string
}

type UpdateAnimationSearchParameters struct {
	Provider string
	Emojis   []string
}

type UpdateSelectedBackground struct {
	ForDarkTheme bool
	Background   *Background
}

// Variants the cache deliberately leaves untouched. They still flow to
// subscribers after dispatch.

type UpdateNewMessage struct {
	Message *Message
}

type UpdateMessageContent struct {
	ChatID    int64
	MessageID int64
	Text      string
}

type UpdateMessageEdited struct {
	ChatID    int64
	MessageID int64
	EditDate  int32
}

type UpdateMessageSendSucceeded struct {
	Message      *Message
	OldMessageID int64
}

type UpdateDeleteMessages struct {
	ChatID      int64
	MessageIDs  []int64
	IsPermanent bool
}

type UpdateServiceNotification struct {
	Type string
	Text string
}

func (*UpdateAuthorizationState) updateName() string  { return "updateAuthorizationState" }
func (*UpdateConnectionState) updateName() string     { return "updateConnectionState" }
func (*UpdateOption) updateName() string              { return "updateOption" }
func (*UpdateNewChat) updateName() string             { return "updateNewChat" }
func (*UpdateChatTitle) updateName() string           { return "updateChatTitle" }
func (*UpdateChatPhoto) updateName() string           { return "updateChatPhoto" }
func (*UpdateChatPermissions) updateName() string     { return "updateChatPermissions" }
func (*UpdateChatLastMessage) updateName() string     { return "updateChatLastMessage" }
func (*UpdateChatPosition) updateName() string        { return "updateChatPosition" }
func (*UpdateChatIsMarkedAsUnread) updateName() string {
	return "updateChatIsMarkedAsUnread"
}
func (*UpdateChatHasScheduledMessages) updateName() string {
	return "updateChatHasScheduledMessages"
}
func (*UpdateChatDefaultDisableNotification) updateName() string {
	return "updateChatDefaultDisableNotification"
}
func (*UpdateChatReadInbox) updateName() string          { return "updateChatReadInbox" }
func (*UpdateChatReadOutbox) updateName() string         { return "updateChatReadOutbox" }
func (*UpdateChatUnreadMentionCount) updateName() string { return "updateChatUnreadMentionCount" }
func (*UpdateMessageMentionRead) updateName() string     { return "updateMessageMentionRead" }
func (*UpdateChatNotificationSettings) updateName() string {
	return "updateChatNotificationSettings"
}
func (*UpdateScopeNotificationSettings) updateName() string {
	return "updateScopeNotificationSettings"
}
func (*UpdateChatActionBar) updateName() string      { return "updateChatActionBar" }
func (*UpdateChatPinnedMessage) updateName() string  { return "updateChatPinnedMessage" }
func (*UpdateChatReplyMarkup) updateName() string    { return "updateChatReplyMarkup" }
func (*UpdateChatDraftMessage) updateName() string   { return "updateChatDraftMessage" }
func (*UpdateChatFilters) updateName() string        { return "updateChatFilters" }
func (*UpdateUserChatAction) updateName() string     { return "updateUserChatAction" }
func (*UpdateUser) updateName() string               { return "updateUser" }
func (*UpdateUserFullInfo) updateName() string       { return "updateUserFullInfo" }
func (*UpdateUserStatus) updateName() string         { return "updateUserStatus" }
func (*UpdateBasicGroup) updateName() string         { return "updateBasicGroup" }
func (*UpdateBasicGroupFullInfo) updateName() string { return "updateBasicGroupFullInfo" }
func (*UpdateSupergroup) updateName() string         { return "updateSupergroup" }
func (*UpdateSupergroupFullInfo) updateName() string { return "updateSupergroupFullInfo" }
func (*UpdateSecretChat) updateName() string         { return "updateSecretChat" }
func (*UpdateFile) updateName() string               { return "updateFile" }
func (*UpdateUnreadChatCount) updateName() string    { return "updateUnreadChatCount" }
func (*UpdateUnreadMessageCount) updateName() string { return "updateUnreadMessageCount" }
func (*UpdateInstalledStickerSets) updateName() string {
	return "updateInstalledStickerSets"
}
func (*UpdateFavoriteStickers) updateName() string { return "updateFavoriteStickers" }
func (*UpdateStickerSet) updateName() string       { return "updateStickerSet" }
func (*UpdateDiceEmojis) updateName() string       { return "updateDiceEmojis" }
func (*UpdateAnimationSearchParameters) updateName() string {
	return "updateAnimationSearchParameters"
}
func (*UpdateSelectedBackground) updateName() string   { return "updateSelectedBackground" }
func (*UpdateNewMessage) updateName() string           { return "updateNewMessage" }
func (*UpdateMessageContent) updateName() string       { return "updateMessageContent" }
func (*UpdateMessageEdited) updateName() string        { return "updateMessageEdited" }
func (*UpdateMessageSendSucceeded) updateName() string { return "updateMessageSendSucceeded" }
func (*UpdateDeleteMessages) updateName() string       { return "updateDeleteMessages" }
func (*UpdateServiceNotification) updateName() string  { return "updateServiceNotification" }
