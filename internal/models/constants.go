package models

// Роли сотрудников админ-панели
const (
	RoleSuperAdmin = "superadmin"
	RoleStaff      = "staff"
)

// FlowType — ветка клиентского пути, по которой прошёл отзыв
const (
	FlowHighRatingGamification = "high_rating_gamification"
	FlowLowRating              = "low_rating"
	FlowStandard               = "standard"
)

// SubscriptionStatus — статусы подписок из внешнего биллинга
const (
	SubscriptionTrialing = "trialing"
	SubscriptionActive   = "active"
	SubscriptionPastDue  = "past_due"
	SubscriptionCanceled = "canceled"
)

// CommunicationChannel — каналы исходящих сообщений
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// CommunicationStatus — статусы в журнале отправки
const (
	CommunicationQueued = "queued"
	CommunicationSent   = "sent"
	CommunicationFailed = "failed"
)

// ValidFlowTypes — допустимые ветки клиентского пути
var ValidFlowTypes = map[string]struct{}{
	FlowHighRatingGamification: {},
	FlowLowRating:              {},
	FlowStandard:               {},
}

// ValidSubscriptionStatuses — допустимые статусы подписок
var ValidSubscriptionStatuses = map[string]struct{}{
	SubscriptionTrialing: {},
	SubscriptionActive:   {},
	SubscriptionPastDue:  {},
	SubscriptionCanceled: {},
}

// ValidChannels — допустимые каналы исходящих сообщений
var ValidChannels = map[string]struct{}{
	ChannelEmail: {},
	ChannelSMS:   {},
}
