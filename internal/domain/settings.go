package domain

type NotificationSettings struct {
	// Webhook 設定 (相容 Slack/Teams/Discord)
	WebhookEnabled bool   `bson:"webhook_enabled" json:"webhook_enabled"`
	WebhookURL     string `bson:"webhook_url" json:"webhook_url"`

	// 到期告警開關
	NotifyOnExpiry bool `bson:"notify_on_expiry" json:"notify_on_expiry"`

	// 每日評估排程 (cron 表達式)
	EvaluateEnabled  bool   `bson:"evaluate_enabled" json:"evaluate_enabled"`
	EvaluateSchedule string `bson:"evaluate_schedule" json:"evaluate_schedule"`
}
