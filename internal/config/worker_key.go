package config

type WorkerKeyStruct struct {
	NotificationsQueue string
}

var WorkerKey = &WorkerKeyStruct{
	NotificationsQueue: "persist_notifications_queue",
}
