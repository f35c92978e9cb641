package handler

type ContextKey string

var (
	RoleCtxKey      ContextKey = "role"
	SubCtxKey       ContextKey = "sub"
	RequestIDCtxKey ContextKey = "requestID"
	MyInfoCtx       ContextKey = "myInfo"
	UserInfoCtx     ContextKey = "userInfo"
	ChildCtx        ContextKey = "child"
	ActivityCtx     ContextKey = "activity"
	BookingCtx      ContextKey = "booking"
)
