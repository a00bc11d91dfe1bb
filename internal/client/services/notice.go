package services

// NoticeKind tells a success notice from a failure one.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeFailure
)

// Notice is a short user-facing message about a finished Gateway call.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Notifier receives notices. Implementations must not block for long.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notice)

func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notice) {}

func savedNotice(entity string) Notice {
	return Notice{Kind: NoticeSuccess, Message: entity + " saved successfully"}
}

func saveFailedNotice(entity string) Notice {
	return Notice{Kind: NoticeFailure, Message: "Failed to save " + entity + ". Please try again."}
}

func deletedNotice(entity string) Notice {
	return Notice{Kind: NoticeSuccess, Message: entity + " deleted successfully"}
}

func deleteFailedNotice(entity string) Notice {
	return Notice{Kind: NoticeFailure, Message: "Failed to delete " + entity + ". Please try again."}
}

func updatedNotice(entity string) Notice {
	return Notice{Kind: NoticeSuccess, Message: entity + " updated successfully"}
}

func updateFailedNotice(entity string) Notice {
	return Notice{Kind: NoticeFailure, Message: "Failed to update " + entity + ". Please try again."}
}
