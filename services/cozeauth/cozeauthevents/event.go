package cozeauthevents

const (
	TopicName                 = "cozeauth"
	sessionSetupStartedName   = TopicName + ".sessionSetup.started"
	sessionSetupCompletedName = TopicName + ".sessionSetup.completed"
	tokenRefreshCompletedName = TopicName + ".tokenRefresh.completed"
	sessionRevokedName        = TopicName + ".session.revoked"
)

type SessionSetupStarted struct {
	SessionUID string
}

func (e SessionSetupStarted) GetEventTypeName() string {
	return sessionSetupStartedName
}

func (e SessionSetupStarted) GetAggregateName() string {
	return e.SessionUID
}

type SessionSetupCompleted struct {
	SessionUID   string
	UserID       string
	Success      bool
	ErrorMessage string
}

func (e SessionSetupCompleted) GetEventTypeName() string {
	return sessionSetupCompletedName
}

func (e SessionSetupCompleted) GetAggregateName() string {
	return e.SessionUID
}

type TokenRefreshCompleted struct {
	UID     string
	Success bool
}

func (e TokenRefreshCompleted) GetEventTypeName() string {
	return tokenRefreshCompletedName
}

func (e TokenRefreshCompleted) GetAggregateName() string {
	return e.UID
}

type SessionRevoked struct {
	UID string
}

func (e SessionRevoked) GetEventTypeName() string {
	return sessionRevokedName
}

func (e SessionRevoked) GetAggregateName() string {
	return e.UID
}
