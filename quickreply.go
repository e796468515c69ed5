package locallink

// QuickReply is a shortcut that submits a canned question about a topic.
type QuickReply struct {
	Label string
	Topic string
}

// QuickReplies returns the fixed shortcuts in display order.
func QuickReplies() []QuickReply {
	return []QuickReply{
		{Label: "Tutoring", Topic: "tutoring"},
		{Label: "Events", Topic: "campus events"},
		{Label: "Food", Topic: "food services"},
		{Label: "Study", Topic: "study groups"},
	}
}

// QuickReplyUtterance returns the text submitted for topic.
func QuickReplyUtterance(topic string) string {
	return "Tell me about " + topic
}
