package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type PollShareMailData struct {
	FullName  string `json:"fullName"`
	PollTitle string `json:"pollTitle"`
	ShareLink string `json:"shareLink"`
}

type PollResponseMailData struct {
	FullName     string `json:"fullName"`
	PollTitle    string `json:"pollTitle"`
	ResponderKey string `json:"responderKey"`
}
