// Copyright (c) 2024 RoseLoverX

package tdcache

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/roseloverx/tdcache/internal/session"
	"github.com/roseloverx/tdcache/internal/utils"
)

// Version of the library; a changed version triggers the post-login
// changelog message and session re-bookkeeping.
const Version = "1.4.0"

// The id the engine uses for service notifications; also the sender of
// the local changelog message.
const serviceNotificationsUserID = 777000

// Client owns one session of the state cache: the engine connection, the
// entity store, the request/response broker and the update dispatcher.
// Everything it caches is rebuilt from the update stream each session.
type Client struct {
	config  *Config
	factory EngineFactory

	// Session-wide singletons, swapped on session boundaries.
	mu              sync.RWMutex
	engine          Engine
	authState       AuthorizationState
	connectionState ConnectionState
	appConfig       Object

	Cache *Cache

	reqID   atomic.Int64
	pending *utils.SyncMap[int64, func(Object)]

	handlersMu sync.RWMutex
	handlers   []handlerEntry
	handlerSeq int64

	options *utils.SyncMap[string, OptionValue]
	myID    atomic.Int64

	// Read from caller goroutines, written wherever CancelDownloadFile is
	// invoked; tracked purely for local idempotency checks.
	canceledDownloads *utils.SyncSet[int32]

	animatedEmojiSet asyncLookup[*StickerSet]

	session session.Storage
	log     *zap.Logger
}

// NewClient creates a session cache over a fresh engine and kicks off the
// initialization sequence.
func NewClient(cfg *Config, factory EngineFactory) (*Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if factory == nil {
		return nil, errors.New("engine factory is required")
	}
	if cfg.APIID == 0 || cfg.APIHash == "" {
		return nil, errors.New("your API ID or Hash cannot be empty; get your own from https://my.telegram.org/apps")
	}

	cfg.DatabaseDirectory = getStr(cfg.DatabaseDirectory, "tdlib-db")
	cfg.FilesDirectory = getStr(cfg.FilesDirectory, cfg.DatabaseDirectory)
	cfg.SessionFile = getStr(cfg.SessionFile, filepath.Join(cfg.DatabaseDirectory, "session.json"))
	cfg.SystemLanguageCode = getStr(cfg.SystemLanguageCode, "en")
	cfg.DeviceModel = getStr(cfg.DeviceModel, "Desktop")
	cfg.SystemVersion = getStr(cfg.SystemVersion, runtime.GOOS+" "+runtime.GOARCH)
	cfg.ApplicationVersion = getStr(cfg.ApplicationVersion, Version)

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	c := &Client{
		config:            cfg,
		factory:           factory,
		Cache:             NewCache(),
		pending:           utils.NewSyncMap[int64, func(Object)](),
		options:           utils.NewSyncMap[string, OptionValue](),
		canceledDownloads: utils.NewSyncSet[int32](),
		session:           session.NewFromFile(cfg.SessionFile),
		log:               log,
	}

	if sess, err := c.session.Load(); err == nil {
		c.myID.Store(sess.UserID)
	}

	c.initialize()
	return c, nil
}

// TryInitialize rebuilds the session from scratch when there is none: the
// authorization state is nil (never initialized or torn down) or Closed.
// Returns whether a re-initialization happened.
func (c *Client) TryInitialize() bool {
	c.mu.RLock()
	state := c.authState
	c.mu.RUnlock()

	switch state.(type) {
	case nil, *AuthorizationStateClosed:
		c.initialize()
		return true
	}
	return false
}

func (c *Client) initialize() {
	c.mu.Lock()
	c.engine = c.factory(c)
	c.mu.Unlock()

	c.Send(&SetOption{Name: "online", Value: &OptionValueBoolean{Value: false}}, nil)
	c.Send(&SetOption{Name: "localization_target", Value: &OptionValueString{Value: "android"}}, nil)
	c.Send(&SetOption{Name: "language_pack_id", Value: &OptionValueString{Value: c.config.SystemLanguageCode}}, nil)
	c.Send(&SetParameters{Parameters: Parameters{
		DatabaseDirectory:  c.config.DatabaseDirectory,
		FilesDirectory:     c.config.FilesDirectory,
		APIID:              c.config.APIID,
		APIHash:            c.config.APIHash,
		SystemLanguageCode: c.config.SystemLanguageCode,
		DeviceModel:        c.config.DeviceModel,
		SystemVersion:      c.config.SystemVersion,
		ApplicationVersion: c.config.ApplicationVersion,
		UseSecretChats:     true,
		UseMessageDatabase: true,
		UseTestDC:          c.config.UseTestDC,
	}}, nil)
	c.Send(&CheckDatabaseEncryptionKey{Key: []byte{}}, nil)
	c.Send(&GetApplicationConfig{}, func(obj Object) {
		c.mu.Lock()
		c.appConfig = obj
		c.mu.Unlock()
	})
}

// handleAuthorizationState drives the cache side of the login state
// machine. Intermediate login-flow states pass through untouched; only
// Ready, LoggingOut and Closed matter here.
func (c *Client) handleAuthorizationState(state AuthorizationState) {
	switch state.(type) {
	case *AuthorizationStateLoggingOut:
		// Credentials only; the cache survives until Closed.
		if err := c.session.Delete(); err != nil {
			c.log.Warn("clearing session on logout", zap.Error(err))
		}
	case *AuthorizationStateClosed:
		c.cleanUp()
	case *AuthorizationStateReady:
		c.initializeReady()
	}

	c.mu.Lock()
	c.authState = state
	c.mu.Unlock()

	c.log.Debug("authorization state changed", zap.String("state", fmt.Sprintf("%T", state)))
}

// initializeReady runs the one-time post-login sequence.
func (c *Client) initializeReady() {
	c.Send(&GetChats{List: &ChatListMain{}, Limit: 20}, nil)

	// Version bookkeeping issues awaitable calls; it must not block the
	// delivery goroutine this runs on.
	go c.updateVersion()
}

// updateVersion posts a local changelog message on the first run after an
// upgrade and records the new session version.
func (c *Client) updateVersion() {
	sess, err := c.session.Load()
	if err != nil {
		sess = &session.Session{}
	}

	if sess.Version != Version {
		resp := c.Invoke(&CreatePrivateChat{UserID: serviceNotificationsUserID})
		if chat, ok := resp.(*Chat); ok {
			c.Send(&AddLocalMessage{
				ChatID:       chat.ID,
				SenderUserID: serviceNotificationsUserID,
				Text:         fmt.Sprintf("Version %s\n\nWhat's new: https://github.com/roseloverx/tdcache/releases", Version),
			}, nil)
		}
	}

	if err := c.session.Store(&session.Session{Version: Version, UserID: c.MyID()}); err != nil {
		c.log.Warn("recording session version", zap.Error(err))
	}
}

// cleanUp tears down every session-scoped structure. The cache is safe to
// reuse for a fresh login afterwards; TryInitialize does exactly that.
func (c *Client) cleanUp() {
	c.Cache.Clear()
	c.options.Reset()
	c.canceledDownloads.Clear()
	c.animatedEmojiSet.reset()
	c.drainPending()

	c.mu.Lock()
	c.authState = nil
	c.connectionState = nil
	c.appConfig = nil
	c.mu.Unlock()
}

func (c *Client) handleOption(upd *UpdateOption) {
	c.options.Add(upd.Name, upd.Value)

	if upd.Name == "my_id" {
		if v, ok := upd.Value.(*OptionValueInteger); ok {
			c.myID.Store(v.Value)
		}
	}
}

// ---------------------------------------------------------------- accessors

func (c *Client) GetAuthorizationState() AuthorizationState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authState
}

func (c *Client) GetConnectionState() ConnectionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connectionState
}

func (c *Client) setConnectionState(state ConnectionState) {
	c.mu.Lock()
	c.connectionState = state
	c.mu.Unlock()
}

// AppConfig returns the application config blob fetched at initialization,
// or nil before the reply arrives.
func (c *Client) AppConfig() Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.appConfig
}

// MyID is the id of the logged-in user, 0 before it is known.
func (c *Client) MyID() int64 {
	return c.myID.Load()
}

func (c *Client) Option(name string) (OptionValue, bool) {
	return c.options.Get(name)
}

func (c *Client) OptionString(name string) string {
	if v, ok := c.options.Get(name); ok {
		if s, ok := v.(*OptionValueString); ok {
			return s.Value
		}
	}
	return ""
}

func (c *Client) OptionInteger(name string) int64 {
	if v, ok := c.options.Get(name); ok {
		if i, ok := v.(*OptionValueInteger); ok {
			return i.Value
		}
	}
	return 0
}

func (c *Client) OptionBool(name string) bool {
	if v, ok := c.options.Get(name); ok {
		if b, ok := v.(*OptionValueBoolean); ok {
			return b.Value
		}
	}
	return false
}

// Title resolves the display title of a chat: hidden for deleted accounts,
// "Saved Messages" for the chat with oneself, the first name when tiny.
func (c *Client) Title(chat *Chat, tiny bool) string {
	if chat == nil {
		return ""
	}

	if user := c.Cache.UserByChat(chat); user != nil {
		if _, deleted := user.Type.(*UserTypeDeleted); deleted {
			return "Deleted Account"
		}
		if user.ID == c.MyID() {
			return "Saved Messages"
		}
		if tiny {
			return user.FirstName
		}
	}

	return chat.Title
}

func (c *Client) IsSavedMessages(chat *Chat) bool {
	if chat == nil {
		return false
	}
	if p, ok := chat.Type.(*ChatTypePrivate); ok {
		return p.UserID == c.MyID()
	}
	return false
}

// ---------------------------------------------------------------- downloads

func (c *Client) DownloadFile(fileID, priority int32, offset, limit int64, synchronous bool) {
	c.Send(&DownloadFile{
		FileID:      fileID,
		Priority:    priority,
		Offset:      offset,
		Limit:       limit,
		Synchronous: synchronous,
	}, nil)
}

// CancelDownloadFile marks the download canceled locally and delegates the
// actual cancellation to the engine; the outcome is not re-verified.
func (c *Client) CancelDownloadFile(fileID int32, onlyIfPending bool) {
	c.canceledDownloads.Add(fileID)
	c.Send(&CancelDownloadFile{FileID: fileID, OnlyIfPending: onlyIfPending}, nil)
}

func (c *Client) IsDownloadFileCanceled(fileID int32) bool {
	return c.canceledDownloads.Has(fileID)
}

// ---------------------------------------------------------------- lifecycle

// LogOut asks the engine to terminate the authorization. The cache reacts
// to the resulting authorization-state updates, not to the reply.
func (c *Client) LogOut() {
	c.Send(&LogOut{}, nil)
}

// Close shuts the engine down. The engine answers with the Closing and
// Closed authorization states, which tear the cache down.
func (c *Client) Close() {
	c.Send(&CloseSession{}, nil)
	c.eng().Close()
}

func (c *Client) eng() Engine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.engine
}

func getStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
