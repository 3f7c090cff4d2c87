// Copyright (c) 2024 RoseLoverX

package tdcache

import (
	"strings"
	"sync"

	"github.com/roseloverx/tdcache/internal/utils"
)

// Cache is the session-scoped canonical store of every entity received
// from the engine. It has exactly one mutator, the update dispatcher, and
// unrestricted concurrent readers.
//
// Field-level patches replace the stored entity with a shallow copy, so a
// pointer handed to a reader is a stable snapshot; lookups always observe
// the latest state. The transient chat-action table lives on its own
// synchronized map because it is read from caller goroutines and written
// from the delivery goroutine without the store lock.
type Cache struct {
	mu sync.RWMutex

	chats       map[int64]*Chat
	secretChats map[int32]*SecretChat

	users     map[int64]*User
	usersFull map[int64]*UserFullInfo

	basicGroups     map[int64]*BasicGroup
	basicGroupsFull map[int64]*BasicGroupFullInfo

	supergroups     map[int64]*Supergroup
	supergroupsFull map[int64]*SupergroupFullInfo

	scopeSettings map[NotificationScope]*ScopeNotificationSettings
	unreadCounts  map[int32]*ChatListUnreadCount

	// Reverse lookup from a file id to the entity whose photo embeds it.
	// An entry lives only while the transfer is incomplete in at least one
	// direction.
	fileToChat map[int32]int64
	fileToUser map[int32]int64

	chatFilters []ChatFilterInfo

	favoriteStickers  []int32
	installedSets     []int64
	installedMaskSets []int64
	diceEmojis        []string

	animationSearchProvider string
	animationSearchEmojis   []string

	selectedBackground     *Background
	selectedBackgroundDark *Background

	chatActions *utils.SyncMap[int64, map[int64]ChatAction]
}

func NewCache() *Cache {
	return &Cache{
		chats:           make(map[int64]*Chat),
		secretChats:     make(map[int32]*SecretChat),
		users:           make(map[int64]*User),
		usersFull:       make(map[int64]*UserFullInfo),
		basicGroups:     make(map[int64]*BasicGroup),
		basicGroupsFull: make(map[int64]*BasicGroupFullInfo),
		supergroups:     make(map[int64]*Supergroup),
		supergroupsFull: make(map[int64]*SupergroupFullInfo),
		scopeSettings:   make(map[NotificationScope]*ScopeNotificationSettings),
		unreadCounts:    make(map[int32]*ChatListUnreadCount),
		fileToChat:      make(map[int32]int64),
		fileToUser:      make(map[int32]int64),
		chatActions:     utils.NewSyncMap[int64, map[int64]ChatAction](),
	}
}

// Clear drops every entity, index and derived cache. Called on session
// teardown; the cache is safe to reuse for a fresh login afterwards.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.chats = make(map[int64]*Chat)
	c.secretChats = make(map[int32]*SecretChat)
	c.users = make(map[int64]*User)
	c.usersFull = make(map[int64]*UserFullInfo)
	c.basicGroups = make(map[int64]*BasicGroup)
	c.basicGroupsFull = make(map[int64]*BasicGroupFullInfo)
	c.supergroups = make(map[int64]*Supergroup)
	c.supergroupsFull = make(map[int64]*SupergroupFullInfo)
	c.scopeSettings = make(map[NotificationScope]*ScopeNotificationSettings)
	c.unreadCounts = make(map[int32]*ChatListUnreadCount)
	c.fileToChat = make(map[int32]int64)
	c.fileToUser = make(map[int32]int64)
	c.chatFilters = nil
	c.favoriteStickers = nil
	c.installedSets = nil
	c.installedMaskSets = nil
	c.diceEmojis = nil
	c.animationSearchProvider = ""
	c.animationSearchEmojis = nil
	c.selectedBackground = nil
	c.selectedBackgroundDark = nil

	c.chatActions.Reset()
}

// Size reports the number of cached chats and users.
func (c *Cache) Size() (chats, users int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.chats), len(c.users)
}

// ---------------------------------------------------------------- chats

// GetChat returns the cached chat or nil. A miss means "not yet received",
// never an error.
func (c *Cache) GetChat(id int64) *Chat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.chats[id]
}

// GetChats returns the cached chats for the given ids, in order, skipping
// unknown ids.
func (c *Cache) GetChats(ids []int64) []*Chat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*Chat, 0, len(ids))
	for _, id := range ids {
		if chat, ok := c.chats[id]; ok {
			result = append(result, chat)
		}
	}
	return result
}

// TryGetChatFromUser finds the private chat owned by the given user.
func (c *Cache) TryGetChatFromUser(userID int64) (*Chat, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, chat := range c.chats {
		if p, ok := chat.Type.(*ChatTypePrivate); ok && p.UserID == userID {
			return chat, true
		}
	}
	return nil, false
}

// TryGetChatFromSecret finds the chat wrapping the given secret chat.
func (c *Cache) TryGetChatFromSecret(secretChatID int32) (*Chat, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, chat := range c.chats {
		if s, ok := chat.Type.(*ChatTypeSecret); ok && s.SecretChatID == secretChatID {
			return chat, true
		}
	}
	return nil, false
}

// GetChatActions returns the transient action table for a chat. The
// returned map is an immutable snapshot; the dispatcher replaces the whole
// table on every change.
func (c *Cache) GetChatActions(chatID int64) map[int64]ChatAction {
	actions, _ := c.chatActions.Get(chatID)
	return actions
}

func (c *Cache) putChat(chat *Chat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.chats[chat.ID] = chat
	if chat.Photo != nil {
		c.indexChatFileLocked(chat.Photo.Small, chat.ID)
		c.indexChatFileLocked(chat.Photo.Big, chat.ID)
	}
}

// patchChat applies a field-level patch to a shallow copy of the chat and
// swaps it in. Unknown ids are ignored, the entity-created update for them
// simply has not arrived yet.
func (c *Cache) patchChat(id int64, patch func(*Chat)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.patchChatLocked(id, patch)
}

func (c *Cache) patchChatLocked(id int64, patch func(*Chat)) {
	chat, ok := c.chats[id]
	if !ok {
		return
	}
	next := *chat
	patch(&next)
	c.chats[id] = &next
}

// setChatPhoto replaces the chat photo and indexes any still-unresolved
// file it embeds. Indexing happens even when the chat itself has not been
// received yet, the file update may well arrive first.
func (c *Cache) setChatPhoto(chatID int64, photo *ChatPhoto) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.patchChatLocked(chatID, func(chat *Chat) {
		chat.Photo = photo
	})
	if photo != nil {
		c.indexChatFileLocked(photo.Small, chatID)
		c.indexChatFileLocked(photo.Big, chatID)
	}
}

func (c *Cache) indexChatFileLocked(file File, chatID int64) {
	if !file.isResolved() {
		c.fileToChat[file.ID] = chatID
	}
}

func (c *Cache) indexUserFileLocked(file File, userID int64) {
	if !file.isResolved() {
		c.fileToUser[file.ID] = userID
	}
}

// ---------------------------------------------------------------- users

func (c *Cache) GetUser(id int64) *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.users[id]
}

func (c *Cache) TryGetUser(id int64) (*User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[id]
	return u, ok
}

func (c *Cache) GetUsers(ids []int64) []*User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*User, 0, len(ids))
	for _, id := range ids {
		if user, ok := c.users[id]; ok {
			result = append(result, user)
		}
	}
	return result
}

// UserByChat resolves the counterpart user of a private or secret chat.
func (c *Cache) UserByChat(chat *Chat) *User {
	if chat == nil {
		return nil
	}
	switch t := chat.Type.(type) {
	case *ChatTypePrivate:
		return c.GetUser(t.UserID)
	case *ChatTypeSecret:
		return c.GetUser(t.UserID)
	}
	return nil
}

func (c *Cache) GetUserFull(id int64) *UserFullInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.usersFull[id]
}

func (c *Cache) UserFullByChat(chat *Chat) *UserFullInfo {
	if chat == nil {
		return nil
	}
	switch t := chat.Type.(type) {
	case *ChatTypePrivate:
		return c.GetUserFull(t.UserID)
	case *ChatTypeSecret:
		return c.GetUserFull(t.UserID)
	}
	return nil
}

func (c *Cache) putUser(user *User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.users[user.ID] = user
	if user.ProfilePhoto != nil {
		c.indexUserFileLocked(user.ProfilePhoto.Small, user.ID)
		c.indexUserFileLocked(user.ProfilePhoto.Big, user.ID)
	}
}

func (c *Cache) patchUser(id int64, patch func(*User)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, ok := c.users[id]
	if !ok {
		return
	}
	next := *user
	patch(&next)
	c.users[id] = &next
}

func (c *Cache) putUserFull(id int64, info *UserFullInfo) {
	c.mu.Lock()
	c.usersFull[id] = info
	c.mu.Unlock()
}

// ---------------------------------------------------------------- groups

func (c *Cache) GetBasicGroup(id int64) *BasicGroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.basicGroups[id]
}

func (c *Cache) TryGetBasicGroup(id int64) (*BasicGroup, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	g, ok := c.basicGroups[id]
	return g, ok
}

func (c *Cache) BasicGroupByChat(chat *Chat) *BasicGroup {
	if chat == nil {
		return nil
	}
	if t, ok := chat.Type.(*ChatTypeBasicGroup); ok {
		return c.GetBasicGroup(t.BasicGroupID)
	}
	return nil
}

func (c *Cache) GetBasicGroupFull(id int64) *BasicGroupFullInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.basicGroupsFull[id]
}

func (c *Cache) GetSupergroup(id int64) *Supergroup {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.supergroups[id]
}

func (c *Cache) TryGetSupergroup(id int64) (*Supergroup, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.supergroups[id]
	return s, ok
}

func (c *Cache) SupergroupByChat(chat *Chat) *Supergroup {
	if chat == nil {
		return nil
	}
	if t, ok := chat.Type.(*ChatTypeSupergroup); ok {
		return c.GetSupergroup(t.SupergroupID)
	}
	return nil
}

func (c *Cache) GetSupergroupFull(id int64) *SupergroupFullInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.supergroupsFull[id]
}

func (c *Cache) putBasicGroup(group *BasicGroup) {
	c.mu.Lock()
	c.basicGroups[group.ID] = group
	c.mu.Unlock()
}

func (c *Cache) putBasicGroupFull(id int64, info *BasicGroupFullInfo) {
	c.mu.Lock()
	c.basicGroupsFull[id] = info
	c.mu.Unlock()
}

func (c *Cache) putSupergroup(group *Supergroup) {
	c.mu.Lock()
	c.supergroups[group.ID] = group
	c.mu.Unlock()
}

func (c *Cache) putSupergroupFull(id int64, info *SupergroupFullInfo) {
	c.mu.Lock()
	c.supergroupsFull[id] = info
	c.mu.Unlock()
}

// CanPostMessages reports whether the logged-in user may post to the chat.
// Chats of unknown groups default to not postable; private and secret
// chats are always postable.
func (c *Cache) CanPostMessages(chat *Chat) bool {
	if chat == nil {
		return false
	}
	switch t := chat.Type.(type) {
	case *ChatTypeSupergroup:
		if super := c.GetSupergroup(t.SupergroupID); super != nil {
			return super.CanPostMessages()
		}
		return false
	case *ChatTypeBasicGroup:
		if group := c.GetBasicGroup(t.BasicGroupID); group != nil {
			return group.CanPostMessages()
		}
		return false
	}
	return true
}

// ---------------------------------------------------------------- secret chats

func (c *Cache) GetSecretChat(id int32) *SecretChat {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.secretChats[id]
}

func (c *Cache) SecretChatByChat(chat *Chat) *SecretChat {
	if chat == nil {
		return nil
	}
	if t, ok := chat.Type.(*ChatTypeSecret); ok {
		return c.GetSecretChat(t.SecretChatID)
	}
	return nil
}

// GetSecretChatForUser returns any secret chat owned by the user.
func (c *Cache) GetSecretChatForUser(userID int64) *SecretChat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, sc := range c.secretChats {
		if sc.UserID == userID {
			return sc
		}
	}
	return nil
}

func (c *Cache) putSecretChat(sc *SecretChat) {
	c.mu.Lock()
	c.secretChats[sc.ID] = sc
	c.mu.Unlock()
}

// ---------------------------------------------------------------- files

// applyFileUpdate routes a resource-state update back to whichever cached
// entity owns the file, refreshes the embedded copy, and drops the reverse
// entry once both transfer directions report completion.
func (c *Cache) applyFileUpdate(file File) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if chatID, ok := c.fileToChat[file.ID]; ok {
		c.patchChatLocked(chatID, func(chat *Chat) {
			chat.updateFile(file)
		})
		if file.isResolved() {
			delete(c.fileToChat, file.ID)
		}
	}

	if userID, ok := c.fileToUser[file.ID]; ok {
		if user, found := c.users[userID]; found {
			next := *user
			next.updateFile(file)
			c.users[userID] = &next
		}
		if file.isResolved() {
			delete(c.fileToUser, file.ID)
		}
	}
}

// ---------------------------------------------------------------- notification scopes

// MuteFor resolves the effective mute duration of a chat. A chat marked
// "use default" resolves through its scope's settings; when the scope entry
// has not arrived yet the chat's own value is returned. That fallback order
// matches the behavior the rest of the app was built against, do not
// reorder it.
func (c *Cache) MuteFor(chat *Chat) int32 {
	if chat == nil {
		return 0
	}
	if chat.NotificationSettings.UseDefaultMuteFor {
		if scope, ok := scopeForChat(chat); ok {
			c.mu.RLock()
			settings, found := c.scopeSettings[scope]
			c.mu.RUnlock()
			if found {
				return settings.MuteFor
			}
		}
	}
	return chat.NotificationSettings.MuteFor
}

// GetScopeNotificationSettings returns the cached settings for the chat's
// scope, or nil before they arrive.
func (c *Cache) GetScopeNotificationSettings(chat *Chat) *ScopeNotificationSettings {
	if chat == nil {
		return nil
	}
	scope, ok := scopeForChat(chat)
	if !ok {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scopeSettings[scope]
}

func (c *Cache) setScopeSettings(scope NotificationScope, settings *ScopeNotificationSettings) {
	c.mu.Lock()
	c.scopeSettings[scope] = settings
	c.mu.Unlock()
}

// ---------------------------------------------------------------- unread counters

// UnreadCount returns the aggregate for a chat list, lazily creating a
// zeroed entry on first access.
func (c *Cache) UnreadCount(list ChatList) ChatListUnreadCount {
	key := chatListKey(list)

	c.mu.Lock()
	defer c.mu.Unlock()

	if value, ok := c.unreadCounts[key]; ok {
		return *value
	}

	if list == nil {
		list = &ChatListMain{}
	}
	value := &ChatListUnreadCount{List: list}
	c.unreadCounts[key] = value
	return *value
}

// SetUnreadCount overwrites only the supplied components of a list's
// aggregate; nil components are left as-is, or zeroed for a fresh entry.
func (c *Cache) SetUnreadCount(list ChatList, chats *UnreadChatCount, messages *UnreadMessageCount) {
	key := chatListKey(list)

	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.unreadCounts[key]
	if !ok {
		if list == nil {
			list = &ChatListMain{}
		}
		value = &ChatListUnreadCount{List: list}
		c.unreadCounts[key] = value
	}

	if chats != nil {
		value.Chats = *chats
	}
	if messages != nil {
		value.Messages = *messages
	}
}

func (c *Cache) unreadCountEntries() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.unreadCounts)
}

// ---------------------------------------------------------------- replaced lists

func (c *Cache) ChatFilters() []ChatFilterInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.chatFilters
}

func (c *Cache) IsStickerFavorite(id int32) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, fav := range c.favoriteStickers {
		if fav == id {
			return true
		}
	}
	return false
}

func (c *Cache) IsStickerSetInstalled(id int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, set := range c.installedSets {
		if set == id {
			return true
		}
	}
	return false
}

// IsDiceEmoji reports whether the trimmed text is one of the emojis the
// engine renders as an animated dice.
func (c *Cache) IsDiceEmoji(text string) (string, bool) {
	text = strings.TrimSpace(text)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.diceEmojis == nil {
		return "", false
	}
	for _, e := range c.diceEmojis {
		if e == text {
			return text, true
		}
	}
	return text, false
}

func (c *Cache) AnimationSearchProvider() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.animationSearchProvider
}

func (c *Cache) AnimationSearchEmojis() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.animationSearchEmojis
}

func (c *Cache) SelectedBackground(forDarkTheme bool) *Background {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if forDarkTheme {
		return c.selectedBackgroundDark
	}
	return c.selectedBackground
}

func (c *Cache) setChatFilters(filters []ChatFilterInfo) {
	c.mu.Lock()
	c.chatFilters = filters
	c.mu.Unlock()
}

func (c *Cache) setFavoriteStickers(ids []int32) {
	c.mu.Lock()
	c.favoriteStickers = ids
	c.mu.Unlock()
}

func (c *Cache) setInstalledStickerSets(isMasks bool, ids []int64) {
	c.mu.Lock()
	if isMasks {
		c.installedMaskSets = ids
	} else {
		c.installedSets = ids
	}
	c.mu.Unlock()
}

func (c *Cache) setDiceEmojis(emojis []string) {
	c.mu.Lock()
	c.diceEmojis = emojis
	c.mu.Unlock()
}

func (c *Cache) setAnimationSearchParameters(provider string, emojis []string) {
	c.mu.Lock()
	c.animationSearchProvider = provider
	c.animationSearchEmojis = emojis
	c.mu.Unlock()
}

func (c *Cache) setSelectedBackground(forDarkTheme bool, background *Background) {
	c.mu.Lock()
	if forDarkTheme {
		c.selectedBackgroundDark = background
	} else {
		c.selectedBackground = background
	}
	c.mu.Unlock()
}

// ---------------------------------------------------------------- chat actions

// setChatAction records or cancels a transient action. The per-chat table
// is replaced wholesale so snapshots handed out earlier stay untouched.
func (c *Cache) setChatAction(chatID, userID int64, action ChatAction) {
	current, _ := c.chatActions.Get(chatID)

	next := make(map[int64]ChatAction, len(current)+1)
	for k, v := range current {
		next[k] = v
	}

	if _, cancel := action.(*ChatActionCancel); cancel {
		delete(next, userID)
	} else {
		next[userID] = action
	}

	c.chatActions.Add(chatID, next)
}
