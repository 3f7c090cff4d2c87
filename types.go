// Copyright (c) 2024 RoseLoverX

package tdcache

// ChatType is the classification of a chat. It is fixed at creation and
// never changes for the lifetime of the session.
type ChatType interface {
	isChatType()
}

type ChatTypePrivate struct {
	UserID int64
}

type ChatTypeBasicGroup struct {
	BasicGroupID int64
}

type ChatTypeSupergroup struct {
	SupergroupID int64
	IsChannel    bool
}

type ChatTypeSecret struct {
	SecretChatID int32
	UserID       int64
}

func (*ChatTypePrivate) isChatType()    {}
func (*ChatTypeBasicGroup) isChatType() {}
func (*ChatTypeSupergroup) isChatType() {}
func (*ChatTypeSecret) isChatType()     {}

// Chat is the always-resident record for a conversation. All fields except
// ID and Type are patched in place by individual update variants.
type Chat struct {
	ID                         int64
	Type                       ChatType
	Title                      string
	Photo                      *ChatPhoto
	Permissions                ChatPermissions
	LastMessage                *Message
	Positions                  []*ChatPosition
	IsMarkedAsUnread           bool
	HasScheduledMessages       bool
	DefaultDisableNotification bool
	UnreadCount                int32
	LastReadInboxMessageID     int64
	LastReadOutboxMessageID    int64
	UnreadMentionCount         int32
	NotificationSettings       ChatNotificationSettings
	ActionBar                  ChatActionBar
	PinnedMessageID            int64
	ReplyMarkupMessageID       int64
	DraftMessage               *DraftMessage
}

// position returns the chat's position entry for the given list, if any.
func (c *Chat) position(list ChatList) *ChatPosition {
	for _, p := range c.Positions {
		if chatListKey(p.List) == chatListKey(list) {
			return p
		}
	}
	return nil
}

// updateFile refreshes the photo copies embedding the given file. The
// photo is cloned first; earlier snapshots of the chat share the pointer.
func (c *Chat) updateFile(file File) {
	if c.Photo == nil {
		return
	}
	photo := *c.Photo
	changed := false
	if photo.Small.ID == file.ID {
		photo.Small = file
		changed = true
	}
	if photo.Big.ID == file.ID {
		photo.Big = file
		changed = true
	}
	if changed {
		c.Photo = &photo
	}
}

type ChatPhoto struct {
	Small File
	Big   File
}

type ChatPosition struct {
	List     ChatList
	Order    int64
	IsPinned bool
}

type ChatPermissions struct {
	CanSendMessages       bool
	CanSendMediaMessages  bool
	CanSendOtherMessages  bool
	CanAddWebPagePreviews bool
	CanChangeInfo         bool
	CanInviteUsers        bool
	CanPinMessages        bool
}

// ChatActionBar is the suggested action strip above a chat, if any.
type ChatActionBar interface {
	isChatActionBar()
}

type ChatActionBarReportSpam struct {
	CanUnarchive bool
}

type ChatActionBarAddContact struct{}

type ChatActionBarReportAddBlock struct {
	CanUnarchive bool
}

func (*ChatActionBarReportSpam) isChatActionBar()     {}
func (*ChatActionBarAddContact) isChatActionBar()     {}
func (*ChatActionBarReportAddBlock) isChatActionBar() {}

type Message struct {
	ID           int64
	ChatID       int64
	SenderUserID int64
	Date         int32
	IsOutgoing   bool
	Text         string
}

type DraftMessage struct {
	ReplyToMessageID int64
	Date             int32
	Text             string
}

// File is an in-flight or resolved resource transfer. A file is fully
// resolved once the local download and the remote upload both report
// completion.
type File struct {
	ID     int32
	Size   int64
	Local  LocalFile
	Remote RemoteFile
}

func (f File) isResolved() bool {
	return f.Local.IsDownloadingCompleted && f.Remote.IsUploadingCompleted
}

type LocalFile struct {
	Path                   string
	IsDownloadingActive    bool
	IsDownloadingCompleted bool
	DownloadedSize         int64
}

type RemoteFile struct {
	ID                   string
	IsUploadingActive    bool
	IsUploadingCompleted bool
	UploadedSize         int64
}

// User is the lightweight always-resident user record. Detailed fields
// live in UserFullInfo, fetched lazily and keyed by the same id.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Username     string
	PhoneNumber  string
	Status       UserStatus
	ProfilePhoto *ProfilePhoto
	IsContact    bool
	IsVerified   bool
	Type         UserType
}

func (u *User) updateFile(file File) {
	if u.ProfilePhoto == nil {
		return
	}
	photo := *u.ProfilePhoto
	changed := false
	if photo.Small.ID == file.ID {
		photo.Small = file
		changed = true
	}
	if photo.Big.ID == file.ID {
		photo.Big = file
		changed = true
	}
	if changed {
		u.ProfilePhoto = &photo
	}
}

type ProfilePhoto struct {
	ID    int64
	Small File
	Big   File
}

type UserType interface {
	isUserType()
}

type UserTypeRegular struct{}

type UserTypeDeleted struct{}

type UserTypeBot struct {
	CanJoinGroups           bool
	CanReadAllGroupMessages bool
	IsInline                bool
}

func (*UserTypeRegular) isUserType() {}
func (*UserTypeDeleted) isUserType() {}
func (*UserTypeBot) isUserType()     {}

type UserStatus interface {
	isUserStatus()
}

type UserStatusEmpty struct{}

type UserStatusOnline struct {
	Expires int32
}

type UserStatusOffline struct {
	WasOnline int32
}

type UserStatusRecently struct{}

func (*UserStatusEmpty) isUserStatus()    {}
func (*UserStatusOnline) isUserStatus()   {}
func (*UserStatusOffline) isUserStatus()  {}
func (*UserStatusRecently) isUserStatus() {}

type UserFullInfo struct {
	Bio                string
	ShareText          string
	IsBlocked          bool
	CanBeCalled        bool
	GroupInCommonCount int32
}

type BasicGroup struct {
	ID                     int64
	MemberCount            int32
	Status                 ChatMemberStatus
	IsActive               bool
	UpgradedToSupergroupID int64
}

// CanPostMessages reports whether the logged-in user may post to the group.
func (g *BasicGroup) CanPostMessages() bool {
	return statusCanPost(g.Status)
}

type BasicGroupFullInfo struct {
	Description   string
	CreatorUserID int64
	MemberUserIDs []int64
}

type Supergroup struct {
	ID           int64
	Username     string
	MemberCount  int32
	IsChannel    bool
	SignMessages bool
	Status       ChatMemberStatus
}

func (s *Supergroup) CanPostMessages() bool {
	if s.IsChannel {
		switch s.Status.(type) {
		case *ChatMemberStatusCreator, *ChatMemberStatusAdministrator:
			return true
		}
		return false
	}
	return statusCanPost(s.Status)
}

type SupergroupFullInfo struct {
	Description        string
	MemberCount        int32
	AdministratorCount int32
	RestrictedCount    int32
	CanGetMembers      bool
	LinkedChatID       int64
}

type ChatMemberStatus interface {
	isChatMemberStatus()
}

type ChatMemberStatusCreator struct {
	IsMember bool
}

type ChatMemberStatusAdministrator struct {
	CanPostMessages bool
}

type ChatMemberStatusMember struct{}

type ChatMemberStatusRestricted struct {
	IsMember    bool
	Permissions ChatPermissions
}

type ChatMemberStatusLeft struct{}

type ChatMemberStatusBanned struct{}

func (*ChatMemberStatusCreator) isChatMemberStatus()       {}
func (*ChatMemberStatusAdministrator) isChatMemberStatus() {}
func (*ChatMemberStatusMember) isChatMemberStatus()        {}
func (*ChatMemberStatusRestricted) isChatMemberStatus()    {}
func (*ChatMemberStatusLeft) isChatMemberStatus()          {}
func (*ChatMemberStatusBanned) isChatMemberStatus()        {}

func statusCanPost(status ChatMemberStatus) bool {
	switch s := status.(type) {
	case *ChatMemberStatusCreator:
		return true
	case *ChatMemberStatusAdministrator:
		return true
	case *ChatMemberStatusMember:
		return true
	case *ChatMemberStatusRestricted:
		return s.IsMember && s.Permissions.CanSendMessages
	}
	return false
}

type SecretChat struct {
	ID         int32
	UserID     int64
	State      SecretChatState
	IsOutbound bool
	Layer      int32
}

type SecretChatState interface {
	isSecretChatState()
}

type SecretChatStatePending struct{}
type SecretChatStateReady struct{}
type SecretChatStateClosed struct{}

func (*SecretChatStatePending) isSecretChatState() {}
func (*SecretChatStateReady) isSecretChatState()   {}
func (*SecretChatStateClosed) isSecretChatState()  {}

// ChatAction is a transient "typing"-class signal, keyed by chat and user.
// Actions are never persisted; a ChatActionCancel removes the entry.
type ChatAction interface {
	isChatAction()
}

type ChatActionTyping struct{}

type ChatActionRecordingVoiceNote struct{}

type ChatActionUploadingPhoto struct {
	Progress int32
}

type ChatActionChoosingSticker struct{}

type ChatActionCancel struct{}

func (*ChatActionTyping) isChatAction()             {}
func (*ChatActionRecordingVoiceNote) isChatAction() {}
func (*ChatActionUploadingPhoto) isChatAction()     {}
func (*ChatActionChoosingSticker) isChatAction()    {}
func (*ChatActionCancel) isChatAction()             {}

type ChatNotificationSettings struct {
	UseDefaultMuteFor     bool
	MuteFor               int32
	UseDefaultSound       bool
	Sound                 string
	UseDefaultShowPreview bool
	ShowPreview           bool
}

type ScopeNotificationSettings struct {
	MuteFor     int32
	Sound       string
	ShowPreview bool
}

// NotificationScope is the closed set of notification-setting fallbacks a
// chat resolves through when its own settings say "use default".
type NotificationScope int32

const (
	ScopePrivateChats NotificationScope = iota
	ScopeGroupChats
	ScopeChannelChats
)

// scopeForChat classifies a chat into its notification scope.
func scopeForChat(chat *Chat) (NotificationScope, bool) {
	switch t := chat.Type.(type) {
	case *ChatTypePrivate, *ChatTypeSecret:
		return ScopePrivateChats, true
	case *ChatTypeBasicGroup:
		return ScopeGroupChats, true
	case *ChatTypeSupergroup:
		if t.IsChannel {
			return ScopeChannelChats, true
		}
		return ScopeGroupChats, true
	}
	return 0, false
}

// ChatList is a named partition of chats with its own unread aggregate.
type ChatList interface {
	isChatList()
}

type ChatListMain struct{}

type ChatListArchive struct{}

type ChatListFilter struct {
	ChatFilterID int32
}

func (*ChatListMain) isChatList()    {}
func (*ChatListArchive) isChatList() {}
func (*ChatListFilter) isChatList()  {}

// chatListKey maps a chat list to its stable cache key. A nil list means
// the main list.
func chatListKey(list ChatList) int32 {
	switch l := list.(type) {
	case nil, *ChatListMain:
		return 0
	case *ChatListArchive:
		return 1
	case *ChatListFilter:
		return l.ChatFilterID
	}
	return -1
}

type ChatFilterInfo struct {
	ID       int32
	Title    string
	IconName string
}

type UnreadChatCount struct {
	Total                 int32
	Unread                int32
	UnreadUnmuted         int32
	MarkedAsUnread        int32
	MarkedAsUnreadUnmuted int32
}

type UnreadMessageCount struct {
	Unread        int32
	UnreadUnmuted int32
}

// ChatListUnreadCount aggregates the unread totals of one chat list. The
// chat and message components are updated independently.
type ChatListUnreadCount struct {
	List     ChatList
	Chats    UnreadChatCount
	Messages UnreadMessageCount
}

type StickerSet struct {
	ID          int64
	Title       string
	Name        string
	IsAnimated  bool
	IsInstalled bool
}

type Background struct {
	ID        int64
	Name      string
	IsDefault bool
	IsDark    bool
}

// AuthorizationState is the process-wide login state machine. The cache
// reacts only to Ready, LoggingOut and Closed; the intermediate login-flow
// states pass through to subscribers unhandled.
type AuthorizationState interface {
	isAuthorizationState()
}

type AuthorizationStateWaitParameters struct{}

type AuthorizationStateWaitEncryptionKey struct {
	IsEncrypted bool
}

type AuthorizationStateWaitPhoneNumber struct{}

type AuthorizationStateWaitCode struct{}

type AuthorizationStateWaitPassword struct {
	PasswordHint string
}

type AuthorizationStateReady struct{}

type AuthorizationStateLoggingOut struct{}

type AuthorizationStateClosing struct{}

type AuthorizationStateClosed struct{}

func (*AuthorizationStateWaitParameters) isAuthorizationState()    {}
func (*AuthorizationStateWaitEncryptionKey) isAuthorizationState() {}
func (*AuthorizationStateWaitPhoneNumber) isAuthorizationState()   {}
func (*AuthorizationStateWaitCode) isAuthorizationState()          {}
func (*AuthorizationStateWaitPassword) isAuthorizationState()      {}
func (*AuthorizationStateReady) isAuthorizationState()             {}
func (*AuthorizationStateLoggingOut) isAuthorizationState()        {}
func (*AuthorizationStateClosing) isAuthorizationState()           {}
func (*AuthorizationStateClosed) isAuthorizationState()            {}

type ConnectionState interface {
	isConnectionState()
}

type ConnectionStateWaitingForNetwork struct{}
type ConnectionStateConnecting struct{}
type ConnectionStateConnectingToProxy struct{}
type ConnectionStateUpdating struct{}
type ConnectionStateReady struct{}

func (*ConnectionStateWaitingForNetwork) isConnectionState() {}
func (*ConnectionStateConnecting) isConnectionState()        {}
func (*ConnectionStateConnectingToProxy) isConnectionState() {}
func (*ConnectionStateUpdating) isConnectionState()          {}
func (*ConnectionStateReady) isConnectionState()             {}

// OptionValue is a session-scoped engine option.
type OptionValue interface {
	isOptionValue()
}

type OptionValueEmpty struct{}

type OptionValueString struct {
	Value string
}

type OptionValueInteger struct {
	Value int64
}

type OptionValueBoolean struct {
	Value bool
}

func (*OptionValueEmpty) isOptionValue()   {}
func (*OptionValueString) isOptionValue()  {}
func (*OptionValueInteger) isOptionValue() {}
func (*OptionValueBoolean) isOptionValue() {}
