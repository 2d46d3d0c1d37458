package email

const (
	subjectOTP     = "Your DesignHub verification code"
	subjectWelcome = "Welcome to DesignHub"
)
