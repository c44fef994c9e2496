package constant

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// LoginPolicy selects how a password login is completed.
type LoginPolicy int

const (
	// LoginDirect issues a token right away for verified accounts.
	LoginDirect LoginPolicy = iota
	// LoginSecondFactor always requires a login OTP before a token is issued.
	LoginSecondFactor
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// OTP purposes, used for metrics labels and delivery messages.
const (
	OtpPurposeVerification = "verification"
	OtpPurposeLogin        = "login"
)

type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	RoleKey      contextKey = "role"
)
