package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ConflictDigestMailData struct {
	FullName  string               `json:"fullName"`
	Date      string               `json:"date"`
	Conflicts []DigestConflictItem `json:"conflicts"`
}

type DigestConflictItem struct {
	ChildName    string `json:"childName"`
	ActivityName string `json:"activityName"`
	Description  string `json:"description"`
}
