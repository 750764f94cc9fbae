package domain

// LoginStatus is the coarse state of the authentication flow.
type LoginStatus string

const (
	LoginIdle    LoginStatus = "idle"
	LoginLoading LoginStatus = "loading"
	LoginSuccess LoginStatus = "success"
	LoginError   LoginStatus = "error"
)

// LoginState pairs the status with the message shown for LoginError.
type LoginState struct {
	Status  LoginStatus
	Message string
}

func IdleLogin() LoginState    { return LoginState{Status: LoginIdle} }
func LoadingLogin() LoginState { return LoginState{Status: LoginLoading} }
func SuccessLogin() LoginState { return LoginState{Status: LoginSuccess} }

func FailedLogin(msg string) LoginState {
	return LoginState{Status: LoginError, Message: msg}
}
