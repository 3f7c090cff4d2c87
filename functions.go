// Copyright (c) 2024 RoseLoverX

package tdcache

// The function calls this module issues against the engine. The set is
// open-ended for callers: anything implementing Function can be sent.

// Parameters configures a fresh engine at session start.
type Parameters struct {
	DatabaseDirectory  string
	FilesDirectory     string
	APIID              int32
	APIHash            string
	SystemLanguageCode string
	DeviceModel        string
	SystemVersion      string
	ApplicationVersion string
	UseSecretChats     bool
	UseMessageDatabase bool
	UseTestDC          bool
}

type SetParameters struct {
	Parameters Parameters
}

type SetOption struct {
	Name  string
	Value OptionValue
}

type CheckDatabaseEncryptionKey struct {
	Key []byte
}

type GetApplicationConfig struct{}

type GetAuthorizationState struct{}

type GetChats struct {
	List  ChatList
	Limit int32
}

type CreatePrivateChat struct {
	UserID int64
	Force  bool
}

type AddLocalMessage struct {
	ChatID       int64
	SenderUserID int64
	Text         string
}

type SearchStickerSet struct {
	Name string
}

type DownloadFile struct {
	FileID      int32
	Priority    int32
	Offset      int64
	Limit       int64
	Synchronous bool
}

type CancelDownloadFile struct {
	FileID        int32
	OnlyIfPending bool
}

type LogOut struct{}

type CloseSession struct{}

func (*SetParameters) functionName() string              { return "setParameters" }
func (*SetOption) functionName() string                  { return "setOption" }
func (*CheckDatabaseEncryptionKey) functionName() string { return "checkDatabaseEncryptionKey" }
func (*GetApplicationConfig) functionName() string       { return "getApplicationConfig" }
func (*GetAuthorizationState) functionName() string      { return "getAuthorizationState" }
func (*GetChats) functionName() string                   { return "getChats" }
func (*CreatePrivateChat) functionName() string          { return "createPrivateChat" }
func (*AddLocalMessage) functionName() string            { return "addLocalMessage" }
func (*SearchStickerSet) functionName() string           { return "searchStickerSet" }
func (*DownloadFile) functionName() string               { return "downloadFile" }
func (*CancelDownloadFile) functionName() string         { return "cancelDownloadFile" }
func (*LogOut) functionName() string                     { return "logOut" }
func (*CloseSession) functionName() string               { return "closeSession" }
