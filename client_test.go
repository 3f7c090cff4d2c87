// Copyright (c) 2024 RoseLoverX

package tdcache

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roseloverx/tdcache/internal/session"
)

func TestClientInitializationSequence(t *testing.T) {
	c, eng := newTestClient(t)

	names := eng.sentNames()
	require.Equal(t, []string{
		"setOption",
		"setOption",
		"setOption",
		"setParameters",
		"checkDatabaseEncryptionKey",
		"getApplicationConfig",
	}, names)

	eng.mu.Lock()
	params := eng.calls[3].fn.(*SetParameters).Parameters
	eng.mu.Unlock()

	assert.Equal(t, c.config.APIID, params.APIID)
	assert.Equal(t, c.config.APIHash, params.APIHash)
	assert.Equal(t, "en", params.SystemLanguageCode)
	assert.True(t, params.UseSecretChats)
	assert.True(t, params.UseMessageDatabase)
}

func TestClientAppConfigStored(t *testing.T) {
	c, eng := newTestClient(t)
	require.Nil(t, c.AppConfig())

	eng.mu.Lock()
	var configID int64
	for _, call := range eng.calls {
		if _, ok := call.fn.(*GetApplicationConfig); ok {
			configID = call.id
		}
	}
	eng.mu.Unlock()
	require.NotZero(t, configID)

	c.OnResult(configID, &Ok{})
	assert.NotNil(t, c.AppConfig())
}

func TestClientReadySequence(t *testing.T) {
	c, eng := newTestClient(t)
	eng.reply = func(fn Function) Object {
		if _, ok := fn.(*CreatePrivateChat); ok {
			return &Chat{ID: 100, Type: &ChatTypePrivate{UserID: serviceNotificationsUserID}}
		}
		return &Ok{}
	}
	eng.resetCalls()

	eng.deliver(&UpdateOption{Name: "my_id", Value: &OptionValueInteger{Value: 4321}})
	eng.deliver(&UpdateAuthorizationState{State: &AuthorizationStateReady{}})

	assert.IsType(t, &AuthorizationStateReady{}, c.GetAuthorizationState())
	assert.Equal(t, 1, eng.sentCount("getChats"))

	// version bookkeeping runs off the delivery goroutine
	require.Eventually(t, func() bool {
		sess, err := session.NewFromFile(c.session.Path()).Load()
		return err == nil && sess.Version == Version && sess.UserID == 4321
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return eng.sentCount("addLocalMessage") == 1
	}, 2*time.Second, 10*time.Millisecond)

	eng.mu.Lock()
	defer eng.mu.Unlock()
	for _, call := range eng.calls {
		if msg, ok := call.fn.(*AddLocalMessage); ok {
			assert.Equal(t, int64(100), msg.ChatID)
			assert.Equal(t, int64(serviceNotificationsUserID), msg.SenderUserID)
			assert.True(t, strings.Contains(msg.Text, Version))
		}
	}
}

func TestClientReadySameVersionSkipsChangelog(t *testing.T) {
	c, eng := newTestClient(t)
	eng.reply = func(fn Function) Object { return &Ok{} }

	require.NoError(t, c.session.Store(&session.Session{Version: Version, UserID: 4321}))
	eng.resetCalls()

	eng.deliver(&UpdateAuthorizationState{State: &AuthorizationStateReady{}})

	require.Eventually(t, func() bool {
		return eng.sentCount("getChats") == 1
	}, 2*time.Second, 10*time.Millisecond)

	// give the bookkeeping goroutine a beat; no changelog may appear
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, eng.sentCount("createPrivateChat"))
	assert.Zero(t, eng.sentCount("addLocalMessage"))
}

func TestClientLoggingOutDeletesSessionOnly(t *testing.T) {
	c, eng := newTestClient(t)
	require.NoError(t, c.session.Store(&session.Session{Version: Version, UserID: 1}))

	eng.deliver(&UpdateNewChat{Chat: testChat(5, "A")})
	eng.deliver(&UpdateAuthorizationState{State: &AuthorizationStateLoggingOut{}})

	_, err := os.Stat(c.session.Path())
	assert.True(t, os.IsNotExist(err))

	// the cache survives until the Closed state arrives
	chats, _ := c.Cache.Size()
	assert.Equal(t, 1, chats)
	assert.IsType(t, &AuthorizationStateLoggingOut{}, c.GetAuthorizationState())
}

func TestClientTryInitialize(t *testing.T) {
	c, eng := newTestClient(t)

	eng.deliver(&UpdateAuthorizationState{State: &AuthorizationStateReady{}})
	assert.False(t, c.TryInitialize(), "a live session is not reinitialized")

	eng.deliver(&UpdateAuthorizationState{State: &AuthorizationStateClosed{}})
	assert.Nil(t, c.GetConnectionState())

	eng.resetCalls()
	assert.True(t, c.TryInitialize())
	assert.Equal(t, 3, eng.sentCount("setOption"))
	assert.Equal(t, 1, eng.sentCount("setParameters"))
}

func TestClientSessionUserIDRestored(t *testing.T) {
	eng := &fakeEngine{}
	dir := t.TempDir()
	cfg := &Config{APIID: 1, APIHash: "h", DatabaseDirectory: dir}

	require.NoError(t, session.NewFromFile(dir+"/session.json").Store(
		&session.Session{Version: Version, UserID: 555}))

	c, err := NewClient(cfg, func(handler ResultHandler) Engine {
		eng.handler = handler
		return eng
	})
	require.NoError(t, err)
	assert.Equal(t, int64(555), c.MyID())
}

func TestClientOptions(t *testing.T) {
	c, eng := newTestClient(t)

	eng.deliver(&UpdateOption{Name: "my_id", Value: &OptionValueInteger{Value: 4321}})
	eng.deliver(&UpdateOption{Name: "version", Value: &OptionValueString{Value: "1.7.9"}})
	eng.deliver(&UpdateOption{Name: "test_mode", Value: &OptionValueBoolean{Value: true}})

	assert.Equal(t, int64(4321), c.MyID())
	assert.Equal(t, int64(4321), c.OptionInteger("my_id"))
	assert.Equal(t, "1.7.9", c.OptionString("version"))
	assert.True(t, c.OptionBool("test_mode"))

	assert.Equal(t, "", c.OptionString("missing"))
	assert.Zero(t, c.OptionInteger("missing"))
	assert.False(t, c.OptionBool("missing"))

	_, ok := c.Option("my_id")
	assert.True(t, ok)
}

func TestClientTitle(t *testing.T) {
	c, eng := newTestClient(t)
	eng.deliver(&UpdateOption{Name: "my_id", Value: &OptionValueInteger{Value: 4321}})

	eng.deliver(&UpdateUser{User: &User{ID: 9, FirstName: "Eve", LastName: "Green", Type: &UserTypeRegular{}}})
	eng.deliver(&UpdateNewChat{Chat: &Chat{ID: 1, Type: &ChatTypePrivate{UserID: 9}, Title: "Eve Green"}})

	chat := c.Cache.GetChat(1)
	assert.Equal(t, "Eve Green", c.Title(chat, false))
	assert.Equal(t, "Eve", c.Title(chat, true))

	eng.deliver(&UpdateUser{User: &User{ID: 10, FirstName: "Gone", Type: &UserTypeDeleted{}}})
	eng.deliver(&UpdateNewChat{Chat: &Chat{ID: 2, Type: &ChatTypePrivate{UserID: 10}, Title: "Gone"}})
	assert.Equal(t, "Deleted Account", c.Title(c.Cache.GetChat(2), false))

	eng.deliver(&UpdateUser{User: &User{ID: 4321, FirstName: "Me", Type: &UserTypeRegular{}}})
	eng.deliver(&UpdateNewChat{Chat: &Chat{ID: 3, Type: &ChatTypePrivate{UserID: 4321}, Title: "Me"}})
	assert.Equal(t, "Saved Messages", c.Title(c.Cache.GetChat(3), false))
	assert.True(t, c.IsSavedMessages(c.Cache.GetChat(3)))
	assert.False(t, c.IsSavedMessages(chat))
}

func TestClientDownloadCancellation(t *testing.T) {
	c, eng := newTestClient(t)
	eng.resetCalls()

	c.DownloadFile(77, 32, 0, 0, false)
	assert.False(t, c.IsDownloadFileCanceled(77))

	c.CancelDownloadFile(77, true)
	assert.True(t, c.IsDownloadFileCanceled(77))
	assert.Equal(t, []string{"downloadFile", "cancelDownloadFile"}, eng.sentNames())

	// the flag clears with the session
	eng.deliver(&UpdateAuthorizationState{State: &AuthorizationStateClosed{}})
	assert.False(t, c.IsDownloadFileCanceled(77))
}

func TestClientClose(t *testing.T) {
	c, eng := newTestClient(t)
	eng.resetCalls()

	c.Close()

	assert.Equal(t, []string{"closeSession"}, eng.sentNames())
	eng.mu.Lock()
	defer eng.mu.Unlock()
	assert.True(t, eng.closed)
}

func TestClientLogOut(t *testing.T) {
	c, eng := newTestClient(t)
	eng.resetCalls()

	c.LogOut()
	assert.Equal(t, []string{"logOut"}, eng.sentNames())
}
