// Copyright (c) 2024 RoseLoverX

package tdcache

import "go.uber.org/zap"

// UpdateHandler observes the raw update stream. Handlers run on the
// engine's delivery goroutine, after the cache mutation for the update has
// completed; they must not mutate the event.
type UpdateHandler func(u Update)

type handlerEntry struct {
	id int64
	fn UpdateHandler
}

// AddUpdateHandler subscribes to the post-mutate update stream and returns
// a function that removes the subscription.
func (c *Client) AddUpdateHandler(h UpdateHandler) (remove func()) {
	c.handlersMu.Lock()
	c.handlerSeq++
	id := c.handlerSeq
	c.handlers = append(c.handlers, handlerEntry{id: id, fn: h})
	c.handlersMu.Unlock()

	return func() {
		c.handlersMu.Lock()
		defer c.handlersMu.Unlock()
		for i, e := range c.handlers {
			if e.id == id {
				// publish hands out the slice as an immutable snapshot, so
				// removal must build a fresh one instead of shifting in place
				next := make([]handlerEntry, 0, len(c.handlers)-1)
				next = append(next, c.handlers[:i]...)
				next = append(next, c.handlers[i+1:]...)
				c.handlers = next
				return
			}
		}
	}
}

func (c *Client) publish(u Update) {
	c.handlersMu.RLock()
	handlers := c.handlers
	c.handlersMu.RUnlock()

	for _, e := range handlers {
		e.fn(u)
	}
}

// processUpdate applies one update to the cache, then forwards the event
// verbatim to subscribers. It runs on the engine's delivery goroutine, one
// update at a time; nothing here blocks or suspends.
func (c *Client) processUpdate(u Update) {
	switch upd := u.(type) {
	case *UpdateAuthorizationState:
		c.handleAuthorizationState(upd.State)

	case *UpdateConnectionState:
		c.setConnectionState(upd.State)

	case *UpdateOption:
		c.handleOption(upd)

	case *UpdateNewChat:
		c.Cache.putChat(upd.Chat)

	case *UpdateChatTitle:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.Title = upd.Title
		})

	case *UpdateChatPhoto:
		c.Cache.setChatPhoto(upd.ChatID, upd.Photo)

	case *UpdateChatPermissions:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.Permissions = upd.Permissions
		})

	case *UpdateChatLastMessage:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.Positions = upd.Positions
			chat.LastMessage = upd.LastMessage
		})

	case *UpdateChatPosition:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			replacePosition(chat, upd.Position)
		})

	case *UpdateChatIsMarkedAsUnread:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.IsMarkedAsUnread = upd.IsMarkedAsUnread
		})

	case *UpdateChatHasScheduledMessages:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.HasScheduledMessages = upd.HasScheduledMessages
		})

	case *UpdateChatDefaultDisableNotification:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.DefaultDisableNotification = upd.DefaultDisableNotification
		})

	case *UpdateChatReadInbox:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.UnreadCount = upd.UnreadCount
			chat.LastReadInboxMessageID = upd.LastReadInboxMessageID
		})

	case *UpdateChatReadOutbox:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.LastReadOutboxMessageID = upd.LastReadOutboxMessageID
		})

	case *UpdateChatUnreadMentionCount:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.UnreadMentionCount = upd.UnreadMentionCount
		})

	case *UpdateMessageMentionRead:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.UnreadMentionCount = upd.UnreadMentionCount
		})

	case *UpdateChatNotificationSettings:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.NotificationSettings = upd.NotificationSettings
		})

	case *UpdateScopeNotificationSettings:
		c.Cache.setScopeSettings(upd.Scope, upd.Settings)

	case *UpdateChatActionBar:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.ActionBar = upd.ActionBar
		})

	case *UpdateChatPinnedMessage:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.PinnedMessageID = upd.PinnedMessageID
		})

	case *UpdateChatReplyMarkup:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.ReplyMarkupMessageID = upd.ReplyMarkupMessageID
		})

	case *UpdateChatDraftMessage:
		c.Cache.patchChat(upd.ChatID, func(chat *Chat) {
			chat.Positions = upd.Positions
			chat.DraftMessage = upd.DraftMessage
		})

	case *UpdateChatFilters:
		c.Cache.setChatFilters(upd.ChatFilters)

	case *UpdateUserChatAction:
		c.Cache.setChatAction(upd.ChatID, upd.UserID, upd.Action)

	case *UpdateUser:
		c.Cache.putUser(upd.User)

	case *UpdateUserFullInfo:
		c.Cache.putUserFull(upd.UserID, upd.FullInfo)

	case *UpdateUserStatus:
		c.Cache.patchUser(upd.UserID, func(user *User) {
			user.Status = upd.Status
		})

	case *UpdateBasicGroup:
		c.Cache.putBasicGroup(upd.BasicGroup)

	case *UpdateBasicGroupFullInfo:
		c.Cache.putBasicGroupFull(upd.BasicGroupID, upd.FullInfo)

	case *UpdateSupergroup:
		c.Cache.putSupergroup(upd.Supergroup)

	case *UpdateSupergroupFullInfo:
		c.Cache.putSupergroupFull(upd.SupergroupID, upd.FullInfo)

	case *UpdateSecretChat:
		c.Cache.putSecretChat(upd.SecretChat)

	case *UpdateFile:
		c.Cache.applyFileUpdate(upd.File)

	case *UpdateUnreadChatCount:
		counts := upd.Counts
		c.Cache.SetUnreadCount(upd.List, &counts, nil)

	case *UpdateUnreadMessageCount:
		counts := upd.Counts
		c.Cache.SetUnreadCount(upd.List, nil, &counts)

	case *UpdateInstalledStickerSets:
		c.Cache.setInstalledStickerSets(upd.IsMasks, upd.StickerSetIDs)

	case *UpdateFavoriteStickers:
		c.Cache.setFavoriteStickers(upd.StickerIDs)

	case *UpdateStickerSet:
		c.handleStickerSet(upd.StickerSet)

	case *UpdateDiceEmojis:
		c.Cache.setDiceEmojis(upd.Emojis)

	case *UpdateAnimationSearchParameters:
		c.Cache.setAnimationSearchParameters(upd.Provider, upd.Emojis)

	case *UpdateSelectedBackground:
		c.Cache.setSelectedBackground(upd.ForDarkTheme, upd.Background)

	case *UpdateNewMessage, *UpdateMessageContent, *UpdateMessageEdited,
		*UpdateMessageSendSucceeded, *UpdateDeleteMessages,
		*UpdateServiceNotification:
		// Message-level state is not cached here.

	default:
		// Unknown variants are a deliberate no-op so that new engine
		// versions stay forward compatible. They still reach subscribers.
		c.log.Debug("unhandled update variant", zap.String("update", u.updateName()))
	}

	c.publish(u)
}

// replacePosition swaps the chat's entry for the position's list, or
// appends it. The slice is rebuilt so earlier snapshots stay untouched.
func replacePosition(chat *Chat, position *ChatPosition) {
	positions := make([]*ChatPosition, 0, len(chat.Positions)+1)
	replaced := false
	for _, p := range chat.Positions {
		if chatListKey(p.List) == chatListKey(position.List) {
			positions = append(positions, position)
			replaced = true
		} else {
			positions = append(positions, p)
		}
	}
	if !replaced {
		positions = append(positions, position)
	}
	chat.Positions = positions
}
