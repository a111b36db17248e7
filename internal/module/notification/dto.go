package notification

// ListQuery represents notification list query parameters.
type ListQuery struct {
	Unread bool `form:"unread"`
}

// ListResponse is a page of notifications.
type ListResponse struct {
	Notifications []*Notification `json:"notifications"`
}

// UnreadCountResponse carries the unread badge count.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// MarkAllReadResponse reports how many notifications were updated.
type MarkAllReadResponse struct {
	Success bool  `json:"success"`
	Updated int64 `json:"updated"`
}
